package cmd

import (
	"fmt"

	"linkedinctl/internal/linkedin"

	"github.com/spf13/cobra"
)

// newPostMultiImageCmd creates the command for multi-image posts.
func newPostMultiImageCmd() *cobra.Command {
	var images []string
	var altTexts []string

	cmd := &cobra.Command{
		Use:   "post-multi-image",
		Short: "Create a post with multiple images",
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

			// Validated before any upload happens.
			if len(images) < 2 {
				return fmt.Errorf("multi-image posts require at least 2 images")
			}

			imageURNs := make([]string, 0, len(images))
			for i, path := range images {
				fmt.Fprintf(cmd.ErrOrStderr(), "UPLOADING=%d/%d %s\n", i+1, len(images), path)
				urn, err := uploadImage(cmd.Context(), client, path)
				if err != nil {
					return err
				}
				imageURNs = append(imageURNs, urn)
			}

			if preview, _ := cmd.Flags().GetBool("preview"); preview {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "PREVIEW=Multi-image post (%d images uploaded)\n", len(imageURNs))
				for i, urn := range imageURNs {
					fmt.Fprintf(out, "IMAGE_%d_URN=%s\n", i+1, urn)
				}
				printTextPreview(cmd, text)
				fmt.Fprintf(out, "NOTE=Images uploaded to LinkedIn. To use them: compose a new post in LinkedIn's web UI, paste your text, and the uploaded images will be available in your media library.\n")
				return nil
			}

			entries := make([]linkedin.MultiImageEntry, len(imageURNs))
			for i, urn := range imageURNs {
				entries[i] = linkedin.MultiImageEntry{ID: urn}
				if i < len(altTexts) {
					entries[i].AltText = altTexts[i]
				}
			}
			content := &linkedin.PostContent{
				MultiImage: &linkedin.MultiImage{Images: entries},
			}

			postID, err := client.CreatePost(cmd.Context(), text, content, visibility)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "SUCCESS=Post with %d images created\n", len(imageURNs))
			fmt.Fprintf(cmd.OutOrStdout(), "POST_ID=%s\n", postID)
			return nil
		},
	}

	addPostFlags(cmd)
	cmd.Flags().StringSliceVar(&images, "images", nil, "Paths to image files (2-20)")
	cmd.Flags().StringSliceVar(&altTexts, "alt-texts", nil, "Alt text for each image, in order")
	cmd.MarkFlagRequired("images")

	return cmd
}
