package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/evcraddock/delc/internal/deletion"
	"github.com/evcraddock/delc/internal/page"
)

// triggerJSON is the JSON shape of a delete trigger.
type triggerJSON struct {
	CommentID string `json:"comment_id"`
	Label     string `json:"label"`
}

// resultJSON is the JSON shape of a delete activation.
type resultJSON struct {
	CommentID string `json:"comment_id"`
	Result    string `json:"result"`
	Remaining *int   `json:"remaining,omitempty"`
	Error     string `json:"error,omitempty"`
}

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func toTriggerJSON(triggers []page.Trigger) []triggerJSON {
	out := make([]triggerJSON, 0, len(triggers))
	for _, t := range triggers {
		out = append(out, triggerJSON{CommentID: t.CommentID.String(), Label: t.Label()})
	}
	return out
}

// printTriggerTable prints delete triggers as a formatted table.
func printTriggerTable(w io.Writer, triggers []page.Trigger) error {
	if len(triggers) == 0 {
		_, err := fmt.Fprintln(w, "No deletable comments.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tCOMMENT"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}
	for _, t := range triggers {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", t.CommentID, truncate(t.Label(), 60)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\nTotal: %d comments\n", len(triggers))
	return err
}

// printResult prints the outcome of one delete activation in text format.
func printResult(w io.Writer, t page.Trigger, res deletion.Result) error {
	var err error
	switch res {
	case deletion.ResultReloaded:
		_, err = fmt.Fprintf(w, "✓ Comment #%s deleted.\n", t.CommentID)
	case deletion.ResultDeclined:
		_, err = fmt.Fprintln(w, "Cancelled.")
	case deletion.ResultUnbound:
		_, err = fmt.Fprintf(w, "Comment #%s has no delete control on this page.\n", t.CommentID)
	}
	return err
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
