package sitetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type loginData struct {
	Error string
}

type pageData struct {
	Title    string
	UserID   int64
	MovieID  int64
	Comments []*siteComment
}

type deleteOutcome struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg,omitempty"`
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login.html", loginData{})
}

// handleLogin accepts the user role with a numeric, registered user ID.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if r.PostForm.Get("role") != "user" || r.PostForm.Get("password") != Password {
		s.render(w, "login.html", loginData{Error: "账号或密码错误"})
		return
	}
	userID, err := strconv.ParseInt(r.PostForm.Get("username"), 10, 64)
	if err != nil {
		s.render(w, "login.html", loginData{Error: "用户ID格式错误"})
		return
	}

	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)", userID).Scan(&exists); err != nil {
		http.Error(w, fmt.Sprintf("Error checking user: %v", err), http.StatusInternalServerError)
		return
	}
	if !exists {
		s.render(w, "login.html", loginData{Error: "用户ID不存在"})
		return
	}

	id, err := s.sessions.create(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: id, Path: "/", HttpOnly: true})
	http.Redirect(w, r, "/profile", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.logouts++
	s.mu.Unlock()

	if err := s.sessions.destroy(w, r); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// requireUser returns the logged-in user, or redirects to the login page.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := s.sessions.validate(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return 0, false
	}
	return userID, true
}

// handleProfile lists the user's own comments.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	comments, err := s.comments.listByUser(userID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading comments: %v", err), http.StatusInternalServerError)
		return
	}
	s.render(w, "page.html", pageData{
		Title:    fmt.Sprintf("User %d", userID),
		UserID:   userID,
		Comments: comments,
	})
}

// handleComments lists a movie's comments. Only the viewer's own comments
// get a delete control.
func (s *Server) handleComments(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	data := pageData{Title: "Comments", UserID: userID}
	if raw := r.URL.Query().Get("movie_id"); raw != "" {
		movieID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		comments, err := s.comments.listByMovie(movieID)
		if err != nil {
			http.Error(w, fmt.Sprintf("Error loading comments: %v", err), http.StatusInternalServerError)
			return
		}
		data.Title = fmt.Sprintf("Movie %d", movieID)
		data.MovieID = movieID
		data.Comments = comments
	}
	s.render(w, "page.html", data)
}

func (s *Server) handleCommentPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	movieID, err := strconv.ParseInt(r.URL.Query().Get("movie_id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	content := strings.TrimSpace(r.PostForm.Get("content"))
	if content != "" {
		if _, err := s.comments.add(movieID, userID, content); err != nil {
			http.Error(w, fmt.Sprintf("Error adding comment: %v", err), http.StatusInternalServerError)
			return
		}
	}
	http.Redirect(w, r, "/comments?movie_id="+strconv.FormatInt(movieID, 10), http.StatusFound)
}

// handleDelete deletes a comment if it belongs to the session's user.
// The endpoint itself does not require a login; anonymous requests are
// refused like any other non-owner.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")

	s.mu.Lock()
	s.deletes = append(s.deletes, raw)
	o, overridden := s.overrides[raw]
	s.mu.Unlock()

	if overridden {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(o.status)
		fmt.Fprint(w, o.body)
		return
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	userID, sessErr := s.sessions.validate(r)
	owner, found, err := s.comments.owner(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := deleteOutcome{Msg: DeniedMsg}
	if sessErr == nil && found && owner == userID {
		if err := s.comments.delete(id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out = deleteOutcome{Success: true}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
