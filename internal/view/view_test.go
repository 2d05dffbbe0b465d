package view

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/evcraddock/delc/internal/page"
)

const layout = `<body><div id="login_box">login</div><div id="app_content">app</div></body>`

func TestForLogin(t *testing.T) {
	if diff := cmp.Diff(Sections{LoginBox: "none", AppContent: "block"}, ForLogin(true)); diff != "" {
		t.Errorf("logged in (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Sections{LoginBox: "block", AppContent: "none"}, ForLogin(false)); diff != "" {
		t.Errorf("logged out (-want +got):\n%s", diff)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		loggedIn bool
		found    int
		want     Sections
	}{
		{"logged in", layout, true, 2, Sections{LoginBox: "none", AppContent: "block"}},
		{"logged out", layout, false, 2, Sections{LoginBox: "block", AppContent: "none"}},
		{"missing app content", `<body><div id="login_box"></div></body>`, false, 1, Sections{LoginBox: "block"}},
		{"no sections", `<body></body>`, true, 0, Sections{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := page.Parse(strings.NewReader(tt.src), "/")
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if n := Apply(p, ForLogin(tt.loggedIn)); n != tt.found {
				t.Errorf("found = %d, want %d", n, tt.found)
			}
			if diff := cmp.Diff(tt.want, Current(p)); diff != "" {
				t.Errorf("sections (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToggleOnLoad(t *testing.T) {
	p, err := page.Parse(strings.NewReader(layout), "/")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	w := page.NewStaticWindow(p)
	w.OnLoad(Toggle(true))

	if err := w.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := Current(p); got.AppContent != "block" || got.LoginBox != "none" {
		t.Errorf("sections = %+v", got)
	}
}
