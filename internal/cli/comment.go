package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCommentCmd() *cobra.Command {
	var movie int64

	cmd := &cobra.Command{
		Use:   `comment --movie <id> "text"`,
		Short: "Post a comment on a movie",
		Long:  "Post a text comment on a movie's comment page. Requires a logged-in session.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComment(cmd, movie, strings.Join(args, " "))
		},
	}

	cmd.Flags().Int64Var(&movie, "movie", 0, "movie to comment on (required)")
	_ = cmd.MarkFlagRequired("movie")

	return cmd
}

func runComment(cmd *cobra.Command, movie int64, text string) error {
	if movie <= 0 {
		return fmt.Errorf("invalid movie ID: %d", movie)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("comment text is required")
	}

	c, err := newAPIClient()
	if err != nil {
		return err
	}
	defer c.CloseIdleConnections()

	if err := c.PostComment(cmd.Context(), movie, text); err != nil {
		return fmt.Errorf("posting comment: %w", err)
	}

	if isJSON() {
		return printJSON(out(cmd), map[string]interface{}{"movie_id": movie, "posted": true})
	}
	_, err = fmt.Fprintf(out(cmd), "✓ Comment posted on movie %d.\n", movie)
	return err
}
