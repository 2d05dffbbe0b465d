package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/delc/internal/client"
	"github.com/evcraddock/delc/internal/storage"
)

func newLoginCmd() *cobra.Command {
	var server, user, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Long: "Log in with the site's user form, save the session cookie to the config file, " +
			"and set the login flag in local storage.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, server, user, password)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "server URL (default: from config or "+defaultServerURL+")")
	cmd.Flags().StringVar(&user, "user", "", "user ID (required)")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted for when omitted)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runLogin(cmd *cobra.Command, serverFlag, user, password string) error {
	user = strings.TrimSpace(user)
	if user == "" {
		return fmt.Errorf("user ID is required")
	}

	serverURL := serverFlag
	if serverURL == "" {
		serverURL = getServerURL()
	}

	if password == "" {
		pw, err := newTerminal(cmd).Password("Password for " + user)
		if err != nil {
			return err
		}
		password = pw
	}

	c, err := client.New(serverURL)
	if err != nil {
		return err
	}
	defer c.CloseIdleConnections()

	if err := c.Login(cmd.Context(), user, password); err != nil {
		if errors.Is(err, client.ErrLoginFailed) {
			return fmt.Errorf("login failed for %s: check your user ID and password", user)
		}
		return fmt.Errorf("logging in: %w", err)
	}

	// Load existing config to preserve other fields
	cfg, err := loadConfig()
	if err != nil {
		cfg = CLIConfig{}
	}
	cfg.Session = c.SessionCookie()
	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if err := setLoginFlag(serverURL, true); err != nil {
		return err
	}

	_, err = fmt.Fprintf(out(cmd), "✓ Logged in as %s.\n", user)
	return err
}

// setLoginFlag writes the login flag for serverURL's origin.
func setLoginFlag(serverURL string, loggedIn bool) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	if err := storage.NewStore(database, origin(serverURL)).SetLoggedIn(loggedIn); err != nil {
		return fmt.Errorf("saving login flag: %w", err)
	}
	return nil
}
