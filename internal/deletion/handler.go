// Package deletion implements the confirm-then-delete flow behind a page's
// delete-comment triggers.
//
// A Handler binds the triggers present on a page when Bind is called.
// Activating a bound trigger asks the user to confirm, sends one delete
// request for the trigger's comment, and then either reloads the page
// (success) or notifies the user of the failure. Triggers that appear
// later are not covered until Bind runs again.
package deletion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/evcraddock/delc/internal/comment"
	"github.com/evcraddock/delc/internal/page"
)

// ErrUnbound is returned by Require when a trigger has not been bound.
var ErrUnbound = errors.New("trigger is not bound")

// Deleter sends a delete request for a comment.
type Deleter interface {
	DeleteComment(ctx context.Context, id comment.ID) (*comment.Outcome, error)
}

// Prompter is the host's dialog capability. Confirm blocks until the user
// answers; Notify shows a message.
type Prompter interface {
	Confirm(message string) bool
	Notify(message string)
}

// Reloader reloads the whole view.
type Reloader interface {
	Reload(ctx context.Context) error
}

// LoadNotifier runs listeners each time a page loads and reports the page
// currently loaded.
type LoadNotifier interface {
	OnLoad(fn func(*page.Page))
	Page() *page.Page
}

// TriggerSource lists the delete triggers currently in a container.
type TriggerSource interface {
	Triggers() []page.Trigger
}

// Result is what one activation did.
type Result int

const (
	// ResultUnbound means the trigger was never bound; nothing happened.
	ResultUnbound Result = iota
	// ResultDeclined means the user declined the confirmation.
	ResultDeclined
	// ResultReloaded means the comment was deleted and the view reloaded.
	ResultReloaded
	// ResultRejected means the server reported failure and the user was notified.
	ResultRejected
	// ResultFailed means the request or its response failed and the user was notified.
	ResultFailed
)

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case ResultUnbound:
		return "unbound"
	case ResultDeclined:
		return "declined"
	case ResultReloaded:
		return "deleted"
	case ResultRejected:
		return "rejected"
	case ResultFailed:
		return "failed"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Handler runs delete activations. It is safe for concurrent use.
type Handler struct {
	deleter  Deleter
	prompt   Prompter
	reloader Reloader
	msgs     Messages
	logger   *slog.Logger

	mu    sync.Mutex
	bound map[page.Trigger]struct{}
}

// Option configures a Handler.
type Option func(*Handler)

// WithMessages sets the user-facing strings.
func WithMessages(m Messages) Option {
	return func(h *Handler) { h.msgs = m }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

// NewHandler creates a handler with no triggers bound.
func NewHandler(d Deleter, p Prompter, r Reloader, opts ...Option) *Handler {
	h := &Handler{
		deleter:  d,
		prompt:   p,
		reloader: r,
		msgs:     MessagesFor(DefaultLocale),
		logger:   slog.Default(),
		bound:    make(map[page.Trigger]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Bind binds every trigger src holds right now and returns how many were
// not already bound. Calling it again only picks up new triggers.
func (h *Handler) Bind(src TriggerSource) int {
	triggers := src.Triggers()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bindLocked(triggers)
}

func (h *Handler) bindLocked(triggers []page.Trigger) int {
	added := 0
	for _, t := range triggers {
		if _, ok := h.bound[t]; ok {
			continue
		}
		h.bound[t] = struct{}{}
		added++
	}
	h.logger.Debug("bound delete triggers", "new", added, "total", len(h.bound))
	return added
}

// Reset drops every binding.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bound = make(map[page.Trigger]struct{})
}

// Attach binds the triggers of each page w loads, replacing the bindings
// of the previous page. It is the load-time binding of a page. A page that
// w has already replaced is not bound, so overlapping reloads leave the
// bindings of the page w shows.
func (h *Handler) Attach(w LoadNotifier) {
	w.OnLoad(func(p *page.Page) {
		h.mu.Lock()
		defer h.mu.Unlock()

		if w.Page() != p {
			h.logger.Debug("skipping bind of a replaced page", "path", p.Path())
			return
		}
		h.bound = make(map[page.Trigger]struct{})
		h.bindLocked(p.Triggers())
	})
}

// Bound reports whether t is bound.
func (h *Handler) Bound(t page.Trigger) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.bound[t]
	return ok
}

// Require returns ErrUnbound if t is not bound.
func (h *Handler) Require(t page.Trigger) error {
	if !h.Bound(t) {
		return fmt.Errorf("comment %s: %w", t.CommentID, ErrUnbound)
	}
	return nil
}

// Activate runs the delete flow for t. The returned error is non-nil only
// for ResultFailed, or when the reload after a successful delete fails.
func (h *Handler) Activate(ctx context.Context, t page.Trigger) (Result, error) {
	log := h.logger.With("comment_id", t.CommentID.String())

	if !h.Bound(t) {
		log.Debug("activation on unbound trigger ignored")
		return ResultUnbound, nil
	}

	if !h.prompt.Confirm(h.msgs.Confirm) {
		log.Debug("delete declined")
		return ResultDeclined, nil
	}

	out, err := h.deleter.DeleteComment(ctx, t.CommentID)
	if err != nil {
		log.Warn("delete request failed", "error", err)
		h.prompt.Notify(h.msgs.NetworkError)
		return ResultFailed, fmt.Errorf("deleting comment %s: %w", t.CommentID, err)
	}

	if !out.Success {
		msg := out.Message(h.msgs.Failed)
		log.Debug("delete rejected", "msg", msg)
		h.prompt.Notify(msg)
		return ResultRejected, nil
	}

	log.Debug("comment deleted")
	if err := h.reloader.Reload(ctx); err != nil {
		return ResultReloaded, fmt.Errorf("reloading after delete: %w", err)
	}
	return ResultReloaded, nil
}
