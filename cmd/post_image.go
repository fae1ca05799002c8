package cmd

import (
	"fmt"

	"linkedinctl/internal/linkedin"

	"github.com/spf13/cobra"
)

// newPostImageCmd creates the command for single-image posts.
func newPostImageCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "post-image",
		Short: "Create a post with one image",
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

			imagePath, _ := cmd.Flags().GetString("image")
			imageURN, err := uploadImage(cmd.Context(), client, imagePath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "IMAGE_URN=%s\n", imageURN)

			if preview, _ := cmd.Flags().GetBool("preview"); preview {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "PREVIEW=Single image post\n")
				fmt.Fprintf(out, "IMAGE_URN=%s\n", imageURN)
				printTextPreview(cmd, text)
				fmt.Fprintf(out, "NOTE=Image uploaded. Paste text and attach uploaded image via LinkedIn web UI.\n")
				return nil
			}

			content := &linkedin.PostContent{
				Media: &linkedin.Media{ID: imageURN, Title: title},
			}
			postID, err := client.CreatePost(cmd.Context(), text, content, visibility)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "SUCCESS=Post with image created\n")
			fmt.Fprintf(cmd.OutOrStdout(), "POST_ID=%s\n", postID)
			return nil
		},
	}

	addPostFlags(cmd)
	cmd.Flags().String("image", "", "Path to image file")
	cmd.Flags().StringVar(&title, "title", "", "Image title")
	cmd.MarkFlagRequired("image")

	return cmd
}
