// Package cli defines the cobra command tree for delc.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/delc/internal/db"
	"github.com/evcraddock/delc/internal/logging"
)

var (
	flagFormat  string
	flagState   string
	flagYes     bool
	flagLocale  string
	flagVerbose bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "delc",
		Short:         "Manage your comments on the movie site",
		Long:          "A client for the movie site's comment pages. List the comments you can delete, delete them with confirmation, and manage your session.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(flagVerbose)
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagState, "state", "", "local storage path (default: ~/.config/delc/storage.db)")
	root.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "confirm deletes without asking")
	root.PersistentFlags().StringVar(&flagLocale, "locale", "", "message language (en|zh)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newDeleteCmd(),
		newTriggersCmd(),
		newBrowseCmd(),
		newCommentCmd(),
		newViewCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the local storage database using the --state flag or default path.
func openDB() (*sql.DB, error) {
	path := flagState
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
