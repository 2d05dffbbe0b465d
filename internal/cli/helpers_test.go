package cli

import (
	"testing"

	"github.com/evcraddock/delc/internal/sitetest"
)

const testUser = 1

// isolate gives the test its own home directory and a clean environment.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DELC_SERVER_URL", "")
	t.Setenv("DELC_SESSION", "")
	t.Setenv("DELC_LOCALE", "")
}

// serveSite starts a test site and points the CLI at it.
func serveSite(t *testing.T) *sitetest.Server {
	t.Helper()
	isolate(t)
	site := sitetest.New(t)
	t.Setenv("DELC_SERVER_URL", site.URL())
	return site
}

// serveSiteLoggedIn is serveSite with a session for testUser in the
// environment.
func serveSiteLoggedIn(t *testing.T) *sitetest.Server {
	t.Helper()
	site := serveSite(t)
	t.Setenv("DELC_SESSION", site.Login(t, testUser))
	return site
}
