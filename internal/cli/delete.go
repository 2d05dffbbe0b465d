package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/delc/internal/client"
	"github.com/evcraddock/delc/internal/comment"
	"github.com/evcraddock/delc/internal/deletion"
	"github.com/evcraddock/delc/internal/page"
)

func newDeleteCmd() *cobra.Command {
	var pf pageFlags

	cmd := &cobra.Command{
		Use:   "delete <comment-id>",
		Short: "Delete one of your comments",
		Long: "Ask for confirmation, then delete a comment.\n\n" +
			"With --page or --movie the page is loaded first, the comment must have a delete " +
			"control on it, and the page is reloaded after a successful delete.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args[0], pf)
		},
	}
	pf.register(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, rawID string, pf pageFlags) error {
	id := comment.ID(strings.TrimSpace(rawID))
	if id == "" {
		return fmt.Errorf("comment ID is required")
	}

	var (
		s    *session
		path string
		err  error
	)
	if pf.set() {
		path, err = pf.resolve()
		if err != nil {
			return err
		}
		s, err = openPageSession(cmd, path)
	} else {
		s, err = openSession(cmd, func(*client.Client) *page.Window {
			return page.NewStaticWindow(page.Standalone(id))
		})
	}
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	if err := s.load(ctx); err != nil {
		return err
	}

	var target *page.Trigger
	for _, t := range s.boundTriggers() {
		if t.CommentID == id {
			target = &t
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no delete control for comment %s on %s", id, path)
	}

	res, actErr := s.handler.Activate(ctx, *target)
	return reportResult(cmd, s, *target, res, actErr, pf.set())
}

// reportResult prints an activation result and turns failures into the
// command's error.
func reportResult(cmd *cobra.Command, s *session, t page.Trigger, res deletion.Result, actErr error, fromServer bool) error {
	if isJSON() {
		r := resultJSON{CommentID: t.CommentID.String(), Result: res.String()}
		if res == deletion.ResultReloaded && fromServer {
			n := len(s.boundTriggers())
			r.Remaining = &n
		}
		if actErr != nil {
			r.Error = actErr.Error()
		}
		if err := printJSON(out(cmd), r); err != nil {
			return err
		}
	} else {
		if err := printResult(out(cmd), t, res); err != nil {
			return err
		}
		if res == deletion.ResultReloaded && fromServer && actErr == nil {
			if _, err := fmt.Fprintf(out(cmd), "%d deletable comments remain on %s.\n",
				len(s.boundTriggers()), s.window.Page().Path()); err != nil {
				return err
			}
		}
	}

	if actErr != nil {
		return actErr
	}
	if res == deletion.ResultRejected {
		return fmt.Errorf("comment %s was not deleted", t.CommentID)
	}
	return nil
}
