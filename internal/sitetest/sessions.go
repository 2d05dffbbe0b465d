package sitetest

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
)

// CookieName is the cookie the site keeps its session in.
const CookieName = "session"

var errNoSession = errors.New("no session")

// sessionStore manages user sessions in SQLite.
type sessionStore struct {
	db *sql.DB
}

// create stores a new session for userID and returns its ID.
func (s *sessionStore) create(userID int64) (string, error) {
	id, err := generateSessionID()
	if err != nil {
		return "", fmt.Errorf("generating session ID: %w", err)
	}
	if _, err := s.db.Exec("INSERT INTO sessions (id, user_id) VALUES (?, ?)", id, userID); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return id, nil
}

// validate returns the user of the request's session.
func (s *sessionStore) validate(r *http.Request) (int64, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return 0, errNoSession
	}

	var userID int64
	err = s.db.QueryRow("SELECT user_id FROM sessions WHERE id = ?", cookie.Value).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errNoSession
	}
	if err != nil {
		return 0, fmt.Errorf("querying session: %w", err)
	}
	return userID, nil
}

// destroy removes the request's session and clears the cookie.
func (s *sessionStore) destroy(w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	if _, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", cookie.Value); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return nil
}

func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
