package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/delc/internal/client"
	"github.com/evcraddock/delc/internal/deletion"
	"github.com/evcraddock/delc/internal/page"
	"github.com/evcraddock/delc/internal/prompt"
	"github.com/evcraddock/delc/internal/storage"
	"github.com/evcraddock/delc/internal/view"
)

const defaultPagePath = "/profile"

// pageFlags selects which page a command loads.
type pageFlags struct {
	path  string
	movie int64
}

func (f *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "page", "", "page path to load (default: "+defaultPagePath+")")
	cmd.Flags().Int64Var(&f.movie, "movie", 0, "load the comment page of this movie")
}

// set reports whether a page was chosen explicitly.
func (f *pageFlags) set() bool {
	return f.path != "" || f.movie > 0
}

// resolve returns the page path to load.
func (f *pageFlags) resolve() (string, error) {
	if f.path != "" && f.movie > 0 {
		return "", fmt.Errorf("--page and --movie are mutually exclusive")
	}
	if f.movie > 0 {
		return client.CommentsPath(f.movie), nil
	}
	if f.path != "" {
		return f.path, nil
	}
	return defaultPagePath, nil
}

// newAPIClient creates an HTTP client for the site, carrying the saved session.
func newAPIClient() (*client.Client, error) {
	return client.New(getServerURL(), client.WithSession(getSession()))
}

// origin returns scheme://host of a server URL, the key local storage is
// scoped by.
func origin(serverURL string) string {
	u, err := url.Parse(serverURL)
	if err != nil || u.Host == "" {
		return serverURL
	}
	return u.Scheme + "://" + u.Host
}

// openStore opens local storage for the configured server.
func openStore() (*storage.Store, *sql.DB, error) {
	database, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	return storage.NewStore(database, origin(getServerURL())), database, nil
}

// newPrompter returns the dialog implementation for cmd: auto-confirm
// with --yes, otherwise an interactive terminal.
func newPrompter(cmd *cobra.Command) deletion.Prompter {
	if flagYes {
		return prompt.NewAuto(true, cmd.ErrOrStderr())
	}
	return newTerminal(cmd)
}

func newTerminal(cmd *cobra.Command) *prompt.Terminal {
	return prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout(), os.Getenv("ACCESSIBLE") != "")
}

// session is a loaded page with the delete handler and login toggle bound
// to it.
type session struct {
	client  *client.Client
	store   *storage.Store
	db      *sql.DB
	window  *page.Window
	handler *deletion.Handler
}

// openSession wires a client, local storage, window, and handler. The
// window is not loaded yet; call load.
func openSession(cmd *cobra.Command, win func(*client.Client) *page.Window) (*session, error) {
	c, err := newAPIClient()
	if err != nil {
		return nil, err
	}

	store, database, err := openStore()
	if err != nil {
		return nil, err
	}

	loggedIn, err := store.LoggedIn()
	if err != nil {
		closeDB(database)
		return nil, err
	}

	w := win(c)
	h := deletion.NewHandler(c, newPrompter(cmd), w,
		deletion.WithMessages(deletion.MessagesFor(getLocale())))
	h.Attach(w)
	w.OnLoad(view.Toggle(loggedIn))

	return &session{client: c, store: store, db: database, window: w, handler: h}, nil
}

// openPageSession opens a session on a server page.
func openPageSession(cmd *cobra.Command, path string) (*session, error) {
	return openSession(cmd, func(c *client.Client) *page.Window {
		return page.NewWindow(c, path)
	})
}

func (s *session) load(ctx context.Context) error {
	return s.window.Load(ctx)
}

// boundTriggers returns the triggers of the current page the handler has bound.
func (s *session) boundTriggers() []page.Trigger {
	p := s.window.Page()
	if p == nil {
		return nil
	}
	var bound []page.Trigger
	for _, t := range p.Triggers() {
		if s.handler.Bound(t) {
			bound = append(bound, t)
		}
	}
	return bound
}

func (s *session) close() {
	s.client.CloseIdleConnections()
	closeDB(s.db)
}

// out returns where command output goes.
func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
