package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	var pf pageFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick comments to delete interactively",
		Long:  "Load a page, pick a comment to delete, confirm, and repeat on the reloaded page until you quit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, pf)
		},
	}
	pf.register(cmd)

	return cmd
}

func runBrowse(cmd *cobra.Command, pf pageFlags) error {
	path, err := pf.resolve()
	if err != nil {
		return err
	}

	s, err := openPageSession(cmd, path)
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	if err := s.load(ctx); err != nil {
		return err
	}

	term := newTerminal(cmd)
	for {
		triggers := s.boundTriggers()
		if len(triggers) == 0 {
			_, err := fmt.Fprintln(out(cmd), "No deletable comments.")
			return err
		}

		t, ok, err := term.Choose(fmt.Sprintf("Delete which comment? (%d on %s)", len(triggers), path), triggers)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		res, actErr := s.handler.Activate(ctx, t)
		if actErr != nil {
			return actErr
		}
		if err := printResult(out(cmd), t, res); err != nil {
			return err
		}
	}
}
