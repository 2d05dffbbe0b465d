// Package sitetest runs an in-process copy of the movie site's comment
// pages for tests: user login, profile and comment pages with delete
// controls, and the delete endpoint with its ownership check.
package sitetest

import (
	"database/sql"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	// sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/evcraddock/delc/internal/comment"
)

//go:embed templates/*.html
var templateFS embed.FS

// Password is the password every site user logs in with.
const Password = "user"

// DeniedMsg is the message the site sends when a delete is refused.
const DeniedMsg = "无权删除"

const schema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY
);

CREATE TABLE sessions (
	id TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id)
);

CREATE TABLE comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	movie_id INTEGER NOT NULL,
	user_id INTEGER NOT NULL,
	content TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// override is a canned delete response.
type override struct {
	status int
	body   string
}

// Server is a running test site.
type Server struct {
	db        *sql.DB
	comments  *commentRepo
	sessions  *sessionStore
	templates *template.Template
	mux       *http.ServeMux
	srv       *httptest.Server

	mu        sync.Mutex
	deletes   []string
	logouts   int
	overrides map[string]override
}

// New starts a site backed by a fresh database. It is shut down when the
// test ends.
func New(tb testing.TB) *Server {
	tb.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(tb.TempDir(), "site.db"))
	if err != nil {
		tb.Fatalf("opening site database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		tb.Fatalf("creating site schema: %v", err)
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		tb.Fatalf("parsing templates: %v", err)
	}

	s := &Server{
		db:        db,
		comments:  &commentRepo{db: db},
		sessions:  &sessionStore{db: db},
		templates: tmpl,
		mux:       http.NewServeMux(),
		overrides: make(map[string]override),
	}

	s.mux.HandleFunc("GET /login", s.handleLoginPage)
	s.mux.HandleFunc("POST /login", s.handleLogin)
	s.mux.HandleFunc("GET /logout", s.handleLogout)
	s.mux.HandleFunc("GET /profile", s.handleProfile)
	s.mux.HandleFunc("GET /comments", s.handleComments)
	s.mux.HandleFunc("POST /comments", s.handleCommentPost)
	s.mux.HandleFunc("POST /delete_comment/{id}", s.handleDelete)

	s.srv = httptest.NewServer(s)
	tb.Cleanup(func() {
		s.srv.Close()
		if err := db.Close(); err != nil {
			tb.Errorf("closing site database: %v", err)
		}
	})
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// URL returns the site's base URL.
func (s *Server) URL() string {
	return s.srv.URL
}

// AddUser registers a user that can log in.
func (s *Server) AddUser(tb testing.TB, userID int64) {
	tb.Helper()
	if _, err := s.db.Exec("INSERT OR IGNORE INTO users (id) VALUES (?)", userID); err != nil {
		tb.Fatalf("adding user %d: %v", userID, err)
	}
}

// Login registers userID and returns a session cookie value for it,
// without going through the login form.
func (s *Server) Login(tb testing.TB, userID int64) string {
	tb.Helper()
	s.AddUser(tb, userID)
	id, err := s.sessions.create(userID)
	if err != nil {
		tb.Fatalf("creating session: %v", err)
	}
	return id
}

// AddComment posts a comment as userID and returns its ID.
func (s *Server) AddComment(tb testing.TB, movieID, userID int64, content string) comment.ID {
	tb.Helper()
	id, err := s.comments.add(movieID, userID, content)
	if err != nil {
		tb.Fatalf("adding comment: %v", err)
	}
	return comment.FromInt(id)
}

// Has reports whether comment id still exists.
func (s *Server) Has(tb testing.TB, id comment.ID) bool {
	tb.Helper()
	n, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil {
		return false
	}
	_, ok, err := s.comments.owner(n)
	if err != nil {
		tb.Fatalf("looking up comment %s: %v", id, err)
	}
	return ok
}

// Override makes delete requests for id answer with status and body
// instead of the normal outcome.
func (s *Server) Override(id string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[id] = override{status: status, body: body}
}

// DeleteRequests returns the comment IDs of every delete request received,
// in order.
func (s *Server) DeleteRequests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deletes...)
}

// Logouts returns how many times /logout was requested.
func (s *Server) Logouts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logouts
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
	}
}
