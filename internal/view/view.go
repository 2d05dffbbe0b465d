// Package view toggles the login box and the app content of a page based
// on the persisted login flag.
package view

import (
	"log/slog"

	"github.com/evcraddock/delc/internal/page"
)

// Element IDs of the two sections.
const (
	LoginBoxID   = "login_box"
	AppContentID = "app_content"
)

// Display values used for the sections.
const (
	Shown  = "block"
	Hidden = "none"
)

// Sections is the display state of the two sections.
type Sections struct {
	LoginBox   string `json:"login_box"`
	AppContent string `json:"app_content"`
}

// ForLogin returns which section is shown for the given login flag.
func ForLogin(loggedIn bool) Sections {
	if loggedIn {
		return Sections{LoginBox: Hidden, AppContent: Shown}
	}
	return Sections{LoginBox: Shown, AppContent: Hidden}
}

// Apply sets the sections' display on p and returns how many of the two
// elements were present.
func Apply(p *page.Page, s Sections) int {
	n := 0
	if p.SetDisplay(LoginBoxID, s.LoginBox) {
		n++
	}
	if p.SetDisplay(AppContentID, s.AppContent) {
		n++
	}
	return n
}

// Toggle returns a page load listener that applies ForLogin(loggedIn).
func Toggle(loggedIn bool) func(*page.Page) {
	s := ForLogin(loggedIn)
	return func(p *page.Page) {
		if n := Apply(p, s); n < 2 {
			slog.Debug("login toggle: section missing", "path", p.Path(), "found", n)
		}
	}
}

// Current reads back the sections' display from p. Missing elements
// report an empty string.
func Current(p *page.Page) Sections {
	login, _ := p.Display(LoginBoxID)
	app, _ := p.Display(AppContentID)
	return Sections{LoginBox: login, AppContent: app}
}
