package cmd

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"linkedinctl/internal/linkedin"

	"github.com/spf13/cobra"
)

// newGetPostCmd creates the command that reads a post back for verification.
// Reading posts needs the restricted r_member_social scope, so a rejected
// read degrades informationally instead of failing.
func newGetPostCmd() *cobra.Command {
	var postID string

	cmd := &cobra.Command{
		Use:   "get-post",
		Short: "Retrieve a post to verify its content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			post, err := client.GetPost(cmd.Context(), postID)
			if err != nil {
				var apiErr *linkedin.APIError
				if errors.As(err, &apiErr) {
					fmt.Fprintf(cmd.ErrOrStderr(), "VERIFY_FAILED=GET /posts requires additional API permissions (r_member_social).\n")
					fmt.Fprintf(cmd.ErrOrStderr(), "VERIFY_FAILED=Cannot read post back to verify. Check manually on LinkedIn.\n")
					return nil
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "COMMENTARY_LENGTH=%d\n", utf8.RuneCountInString(post.Commentary))
			fmt.Fprintf(out, "COMMENTARY_START=%s\n", commentaryHead(post.Commentary, 100))
			fmt.Fprintf(out, "COMMENTARY_END=%s\n", commentaryTail(post.Commentary, 100))
			fmt.Fprintf(out, "FULL_COMMENTARY=%s\n", post.Commentary)
			return nil
		},
	}

	cmd.Flags().StringVar(&postID, "post-id", "", "Post URN (e.g. urn:li:ugcPost:123)")
	cmd.MarkFlagRequired("post-id")

	return cmd
}

func commentaryHead(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func commentaryTail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
