package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newPostTextCmd creates the command for text-only posts.
func newPostTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post-text",
		Short: "Create a text-only post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			text, err := resolveText(cmd)
			if err != nil {
				return err
			}
			visibility, err := resolveVisibility(cmd)
			if err != nil {
				return err
			}
			client.ValidateTextLength(text)

			if preview, _ := cmd.Flags().GetBool("preview"); preview {
				fmt.Fprintf(cmd.OutOrStdout(), "PREVIEW=Text-only post (no media to upload)\n")
				printTextPreview(cmd, text)
				return nil
			}

			postID, err := client.CreatePost(cmd.Context(), text, nil, visibility)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "SUCCESS=Post created\n")
			fmt.Fprintf(cmd.OutOrStdout(), "POST_ID=%s\n", postID)
			return nil
		},
	}

	addPostFlags(cmd)
	return cmd
}
