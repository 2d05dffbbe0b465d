package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Long:  "Ends the server session, removes the stored session cookie, and clears the login flag.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd)
		},
	}
}

func runLogout(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	serverURL := getServerURL()
	if err := setLoginFlag(serverURL, false); err != nil {
		return err
	}

	if cfg.Session == "" {
		_, err := fmt.Fprintln(out(cmd), "Not logged in.")
		return err
	}

	c, err := newAPIClient()
	if err != nil {
		return err
	}
	defer c.CloseIdleConnections()

	// The local session is dropped even if the server can't be reached.
	if err := c.Logout(cmd.Context()); err != nil {
		slog.Warn("server logout failed", "error", err)
	}

	cfg.Session = ""
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	_, err = fmt.Fprintln(out(cmd), "✓ Logged out.")
	return err
}
