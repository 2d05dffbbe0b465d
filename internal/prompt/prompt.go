// Package prompt provides the dialog primitives the delete flow runs on:
// a terminal confirm/alert pair built on huh, and a non-interactive
// variant for scripts.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/evcraddock/delc/internal/page"
)

// Terminal asks on an interactive terminal.
type Terminal struct {
	in         io.Reader
	out        io.Writer
	accessible bool
}

// NewTerminal creates a terminal prompter reading from in and drawing to
// out. Accessible mode replaces the TUI with plain line prompts.
func NewTerminal(in io.Reader, out io.Writer, accessible bool) *Terminal {
	return &Terminal{in: in, out: out, accessible: accessible}
}

func (t *Terminal) run(field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithInput(t.in).
		WithOutput(t.out).
		WithAccessible(t.accessible).
		WithShowHelp(false).
		Run()
}

// Confirm asks a yes/no question. Aborting or any prompt error counts
// as no.
func (t *Terminal) Confirm(message string) bool {
	var ok bool
	err := t.run(huh.NewConfirm().
		Title(message).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok))
	if err != nil {
		if !errors.Is(err, huh.ErrUserAborted) {
			slog.Warn("confirm prompt failed", "error", err)
		}
		return false
	}
	return ok
}

// Notify shows message as an alert.
func (t *Terminal) Notify(message string) {
	if _, err := fmt.Fprintln(t.out, renderAlert(message)); err != nil {
		slog.Warn("writing alert", "error", err)
	}
}

// Password asks for a secret without echoing it.
func (t *Terminal) Password(title string) (string, error) {
	var pw string
	err := t.run(huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&pw))
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return pw, nil
}

// Choose lets the user pick one of triggers. It returns false when the
// user quits or there is nothing to pick.
func (t *Terminal) Choose(title string, triggers []page.Trigger) (page.Trigger, bool, error) {
	if len(triggers) == 0 {
		return page.Trigger{}, false, nil
	}

	opts := make([]huh.Option[string], 0, len(triggers)+1)
	for i, tr := range triggers {
		opts = append(opts, huh.NewOption(TriggerLabel(tr), strconv.Itoa(i)))
	}
	opts = append(opts, huh.NewOption(mutedStyle.Render("Quit"), ""))

	var choice string
	err := t.run(huh.NewSelect[string]().
		Title(title).
		Options(opts...).
		Value(&choice))
	if errors.Is(err, huh.ErrUserAborted) {
		return page.Trigger{}, false, nil
	}
	if err != nil {
		return page.Trigger{}, false, fmt.Errorf("choosing comment: %w", err)
	}
	if choice == "" {
		return page.Trigger{}, false, nil
	}

	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 0 || idx >= len(triggers) {
		return page.Trigger{}, false, fmt.Errorf("invalid choice %q", choice)
	}
	return triggers[idx], true, nil
}

// TriggerLabel formats a trigger for listing.
func TriggerLabel(tr page.Trigger) string {
	label := tr.Label()
	if label == "" {
		return "#" + tr.CommentID.String()
	}
	return fmt.Sprintf("#%s  %s", tr.CommentID, truncate(label, 60))
}

// Auto answers every confirmation with a fixed value and writes alerts
// as plain lines. It is used with --yes and in scripts.
type Auto struct {
	answer bool
	out    io.Writer
}

// NewAuto creates a non-interactive prompter.
func NewAuto(answer bool, out io.Writer) *Auto {
	return &Auto{answer: answer, out: out}
}

// Confirm implements deletion.Prompter.
func (a *Auto) Confirm(message string) bool {
	slog.Debug("auto-answering confirm", "message", message, "answer", a.answer)
	return a.answer
}

// Notify implements deletion.Prompter.
func (a *Auto) Notify(message string) {
	if _, err := fmt.Fprintln(a.out, message); err != nil {
		slog.Warn("writing alert", "error", err)
	}
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
