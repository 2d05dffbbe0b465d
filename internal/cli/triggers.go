package cli

import (
	"github.com/spf13/cobra"
)

func newTriggersCmd() *cobra.Command {
	var pf pageFlags

	cmd := &cobra.Command{
		Use:   "triggers",
		Short: "List the comments you can delete on a page",
		Long:  "Load a page and list every comment that has a delete control on it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTriggers(cmd, pf)
		},
	}
	pf.register(cmd)

	return cmd
}

func runTriggers(cmd *cobra.Command, pf pageFlags) error {
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

	triggers := s.boundTriggers()
	if isJSON() {
		return printJSON(out(cmd), toTriggerJSON(triggers))
	}
	return printTriggerTable(out(cmd), triggers)
}
