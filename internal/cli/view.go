package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/delc/internal/view"
)

func newViewCmd() *cobra.Command {
	var (
		pf     pageFlags
		render bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show which sections of a page are visible",
		Long: "Load a page, apply the login flag to its login box and app content, and show " +
			"which of the two is visible. With --render the resulting HTML is printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, pf, render)
		},
	}
	pf.register(cmd)
	cmd.Flags().BoolVar(&render, "render", false, "print the page HTML after the toggle")

	return cmd
}

func runView(cmd *cobra.Command, pf pageFlags, render bool) error {
	path, err := pf.resolve()
	if err != nil {
		return err
	}

	s, err := openPageSession(cmd, path)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.load(cmd.Context()); err != nil {
		return err
	}

	p := s.window.Page()
	if render {
		return p.Render(out(cmd))
	}

	sections := view.Current(p)
	if isJSON() {
		return printJSON(out(cmd), sections)
	}
	_, err = fmt.Fprintf(out(cmd), "%s:  %s\n%s:  %s\n",
		view.LoginBoxID, displayOrMissing(sections.LoginBox),
		view.AppContentID, displayOrMissing(sections.AppContent))
	return err
}

func displayOrMissing(display string) string {
	if display == "" {
		return "(missing)"
	}
	return display
}
