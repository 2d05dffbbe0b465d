package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/delc/internal/client"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connection and login status",
		Long:  "Shows the server, the stored session and login flag, and checks whether the session is still accepted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd)
		},
	}
}

func runStatus(cmd *cobra.Command) error {
	w := out(cmd)
	serverURL := getServerURL()
	session := getSession()

	store, database, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB(database)

	loggedIn, err := store.LoggedIn()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Server:     %s\n", serverURL)
	fmt.Fprintf(w, "Login flag: %t\n", loggedIn)

	if session == "" {
		fmt.Fprintln(w, "Session:    not configured")
		fmt.Fprintln(w, "\nRun 'delc login' to authenticate.")
		return nil
	}
	fmt.Fprintln(w, "Session:    stored")

	c, err := client.New(serverURL, client.WithSession(session), client.WithTimeout(5*time.Second))
	if err != nil {
		return err
	}
	defer c.CloseIdleConnections()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	_, err = c.FetchPage(ctx, defaultPagePath)
	switch {
	case err == nil:
		fmt.Fprintln(w, "Status:     ✓ connected and logged in")
	case errors.Is(err, client.ErrNotLoggedIn):
		fmt.Fprintln(w, "Status:     ✗ session expired")
		fmt.Fprintln(w, "\nRun 'delc login' to re-authenticate.")
	case errors.Is(err, client.ErrStatus):
		fmt.Fprintf(w, "Status:     ✗ unexpected response (%v)\n", err)
	default:
		fmt.Fprintf(w, "Status:     ✗ cannot reach server (%v)\n", err)
	}

	return nil
}
