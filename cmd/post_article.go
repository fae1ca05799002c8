package cmd

import (
	"fmt"

	"linkedinctl/internal/linkedin"

	"github.com/spf13/cobra"
)

// newPostArticleCmd creates the command for article-link posts.
func newPostArticleCmd() *cobra.Command {
	var articleURL, title, description, thumbnail string

	cmd := &cobra.Command{
		Use:   "post-article",
		Short: "Create a post with an article link",
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

			// The thumbnail, when given, is uploaded in both preview and
			// posting mode.
			var thumbnailURN string
			if thumbnail != "" {
				thumbnailURN, err = uploadImage(cmd.Context(), client, thumbnail)
				if err != nil {
					return err
				}
			}

			if preview, _ := cmd.Flags().GetBool("preview"); preview {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "PREVIEW=Article post\n")
				fmt.Fprintf(out, "ARTICLE_URL=%s\n", articleURL)
				if title != "" {
					fmt.Fprintf(out, "ARTICLE_TITLE=%s\n", title)
				}
				if thumbnailURN != "" {
					fmt.Fprintf(out, "THUMBNAIL_URN=%s\n", thumbnailURN)
				}
				printTextPreview(cmd, text)
				return nil
			}

			content := &linkedin.PostContent{
				Article: &linkedin.Article{
					Source:      articleURL,
					Title:       title,
					Description: description,
					Thumbnail:   thumbnailURN,
				},
			}

			postID, err := client.CreatePost(cmd.Context(), text, content, visibility)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "SUCCESS=Article post created\n")
			fmt.Fprintf(cmd.OutOrStdout(), "POST_ID=%s\n", postID)
			return nil
		},
	}

	addPostFlags(cmd)
	cmd.Flags().StringVar(&articleURL, "url", "", "Article URL")
	cmd.Flags().StringVar(&title, "title", "", "Article title")
	cmd.Flags().StringVar(&description, "description", "", "Article description")
	cmd.Flags().StringVar(&thumbnail, "thumbnail", "", "Path to thumbnail image")
	cmd.MarkFlagRequired("url")

	return cmd
}
