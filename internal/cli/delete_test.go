package cli

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/evcraddock/delc/internal/sitetest"
)

func TestDeleteStandalone(t *testing.T) {
	site := serveSiteLoggedIn(t)
	id := site.AddComment(t, 3, testUser, "great film")

	out, err := executeCommand("delete", id.String(), "--yes")
	if err != nil {
		t.Fatalf("delete: %v\n%s", err, out)
	}
	if !strings.Contains(out, "✓ Comment #"+id.String()+" deleted.") {
		t.Errorf("output = %q, want deleted message", out)
	}
	if got := site.DeleteRequests(); len(got) != 1 || got[0] != id.String() {
		t.Errorf("deletes = %v, want [%s]", got, id)
	}
	if site.Has(t, id) {
		t.Errorf("comment %s still on the site", id)
	}
}

func TestDeleteRejected(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		locale  string
		wantMsg string
	}{
		{"server message", "", "", sitetest.DeniedMsg},
		{"fallback", `{"success": false}`, "", "Delete failed"},
		{"fallback zh", `{"success": false}`, "zh", "删除失败"},
		{"empty message", `{"success": false, "msg": ""}`, "", "Delete failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := serveSiteLoggedIn(t)
			// Written by someone else, so the site refuses it.
			id := site.AddComment(t, 3, testUser+1, "not mine")
			if tt.body != "" {
				site.Override(id.String(), http.StatusOK, tt.body)
			}

			args := []string{"delete", id.String(), "--yes"}
			if tt.locale != "" {
				args = append(args, "--locale", tt.locale)
			}
			out, err := executeCommand(args...)
			if err == nil {
				t.Fatal("expected error for rejected delete")
			}
			if !strings.Contains(out, tt.wantMsg) {
				t.Errorf("output = %q, want %q", out, tt.wantMsg)
			}
			if strings.Contains(out, "deleted.") {
				t.Errorf("output = %q, should not report a delete", out)
			}
			if !site.Has(t, id) {
				t.Error("refused comment was deleted")
			}
		})
	}
}

func TestDeleteFromPage(t *testing.T) {
	site := serveSiteLoggedIn(t)
	id := site.AddComment(t, 3, testUser, "great film")
	site.AddComment(t, 3, testUser, "meh")

	out, err := executeCommand("delete", id.String(), "--yes", "--page", "/profile")
	if err != nil {
		t.Fatalf("delete: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 deletable comments remain on /profile.") {
		t.Errorf("output = %q, want remaining count after reload", out)
	}
}

func TestDeleteFromPageJSON(t *testing.T) {
	site := serveSiteLoggedIn(t)
	site.AddComment(t, 3, testUser, "great film")
	id := site.AddComment(t, 3, testUser, "meh")
	site.AddComment(t, 3, testUser, "ok")
	site.AddComment(t, 3, testUser+1, "someone else")

	out, err := executeCommand("delete", id.String(), "--yes", "--movie", "3", "--format", "json")
	if err != nil {
		t.Fatalf("delete: %v\n%s", err, out)
	}

	var res resultJSON
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if res.CommentID != id.String() || res.Result != "deleted" {
		t.Errorf("result = %+v", res)
	}
	if res.Remaining == nil || *res.Remaining != 2 {
		t.Errorf("remaining = %v, want 2", res.Remaining)
	}
}

func TestDeleteWithoutTriggerSendsNothing(t *testing.T) {
	site := serveSiteLoggedIn(t)
	site.AddComment(t, 3, testUser, "great film")
	// Listed on the movie page, but without a delete control.
	theirs := site.AddComment(t, 3, testUser+1, "not mine")

	_, err := executeCommand("delete", theirs.String(), "--yes", "--movie", "3")
	if err == nil || !strings.Contains(err.Error(), "no delete control") {
		t.Fatalf("err = %v, want missing trigger error", err)
	}
	if got := site.DeleteRequests(); len(got) != 0 {
		t.Errorf("deletes = %v, want none", got)
	}
}

func TestDeleteMalformedResponse(t *testing.T) {
	site := serveSiteLoggedIn(t)
	id := site.AddComment(t, 3, testUser, "great film")
	site.Override(id.String(), http.StatusOK, "<html>oops</html>")

	out, err := executeCommand("delete", id.String(), "--yes", "--format", "json")
	if err == nil {
		t.Fatal("expected error for malformed response")
	}

	var res resultJSON
	if jerr := json.Unmarshal([]byte(out[strings.Index(out, "{"):]), &res); jerr != nil {
		t.Fatalf("decoding %q: %v", out, jerr)
	}
	if res.Result != "failed" || res.Error == "" {
		t.Errorf("result = %+v, want failed with error", res)
	}
}

func TestDeleteServerUnreachable(t *testing.T) {
	isolate(t)
	t.Setenv("DELC_SERVER_URL", "http://127.0.0.1:1")

	out, err := executeCommand("delete", "5", "--yes")
	if err == nil {
		t.Fatal("expected error when the server is unreachable")
	}
	if !strings.Contains(out, "could not reach the server") {
		t.Errorf("output = %q, want network alert", out)
	}
}

func TestDeletePageAndMovieExclusive(t *testing.T) {
	isolate(t)

	_, err := executeCommand("delete", "5", "--yes", "--page", "/profile", "--movie", "3")
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("err = %v, want mutually exclusive error", err)
	}
}

func TestDeleteArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no id", []string{"delete"}},
		{"two ids", []string{"delete", "1", "2"}},
		{"blank id", []string{"delete", "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if _, err := executeCommand(tt.args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
