package cmd

import (
	"fmt"
	"time"

	"linkedinctl/internal/linkedin"

	"github.com/spf13/cobra"
)

// newListCommentsCmd creates the command that lists a post's comments.
// The read scope (r_member_social) is restricted to select API partners;
// without it the command reports the limitation and exits cleanly, since
// comment writing still works.
func newListCommentsCmd() *cobra.Command {
	var postURN string
	var start, count int

	cmd := &cobra.Command{
		Use:   "list-comments",
		Short: "List comments on a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			comments, err := client.ListComments(cmd.Context(), postURN, start, count)
			if err != nil {
				if linkedin.IsPermissionDenied(err) {
					fmt.Fprintf(cmd.ErrOrStderr(), "LIST_FAILED=Reading comments requires r_member_social scope (restricted).\n")
					fmt.Fprintf(cmd.ErrOrStderr(), "LIST_FAILED=This scope is only available to select LinkedIn API partners.\n")
					fmt.Fprintf(cmd.ErrOrStderr(), "LIST_FAILED=View comments on LinkedIn's website instead. Writing comments (create-comment, reply-comment) still works with w_member_social.\n")
					return nil
				}
				return err
			}

			out := cmd.OutOrStdout()
			if len(comments) == 0 {
				fmt.Fprintf(out, "NO_COMMENTS=No comments found on this post\n")
				return nil
			}

			fmt.Fprintf(out, "COMMENT_COUNT=%d\n", len(comments))
			for i, comment := range comments {
				created := "unknown"
				if comment.Created.Time != 0 {
					created = time.UnixMilli(comment.Created.Time).Format("2006-01-02 15:04:05")
				}

				fmt.Fprintf(out, "---COMMENT_%d/%d---\n", i+1, len(comments))
				fmt.Fprintf(out, "ACTOR=%s\n", comment.Actor)
				fmt.Fprintf(out, "COMMENT_URN=%s\n", comment.CommentURN)
				fmt.Fprintf(out, "COMMENT_ID=%s\n", comment.ID)
				fmt.Fprintf(out, "CREATED=%s\n", created)
				fmt.Fprintf(out, "LIKES=%d\n", comment.LikesSummary.TotalLikes)
				fmt.Fprintf(out, "TEXT=%s\n", comment.Message.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&postURN, "post-urn", "", "Post URN (e.g. urn:li:ugcPost:123)")
	cmd.Flags().IntVar(&start, "start", 0, "Pagination start index")
	cmd.Flags().IntVar(&count, "count", 20, "Number of comments to return")
	cmd.MarkFlagRequired("post-urn")

	return cmd
}

// newCreateCommentCmd creates the command that comments on a post.
func newCreateCommentCmd() *cobra.Command {
	var postURN string

	cmd := &cobra.Command{
		Use:   "create-comment",
		Short: "Create a comment on a post",
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

			ref, err := client.CreateComment(cmd.Context(), postURN, text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SUCCESS=Comment created\n")
			fmt.Fprintf(out, "COMMENT_ID=%s\n", ref.ID)
			if ref.URN != "" {
				fmt.Fprintf(out, "COMMENT_URN=%s\n", ref.URN)
			}
			return nil
		},
	}

	addTextFlags(cmd)
	cmd.Flags().StringVar(&postURN, "post-urn", "", "Post URN to comment on")
	cmd.MarkFlagRequired("post-urn")

	return cmd
}

// newReplyCommentCmd creates the command that replies to an existing comment.
func newReplyCommentCmd() *cobra.Command {
	var postURN, commentURN string

	cmd := &cobra.Command{
		Use:   "reply-comment",
		Short: "Reply to a comment",
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

			ref, err := client.ReplyComment(cmd.Context(), postURN, commentURN, text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SUCCESS=Reply created\n")
			fmt.Fprintf(out, "REPLY_ID=%s\n", ref.ID)
			if ref.URN != "" {
				fmt.Fprintf(out, "REPLY_URN=%s\n", ref.URN)
			}
			return nil
		},
	}

	addTextFlags(cmd)
	cmd.Flags().StringVar(&commentURN, "comment-urn", "", "Comment URN to reply to (e.g. urn:li:comment:(urn:li:activity:xxx,yyy))")
	cmd.Flags().StringVar(&postURN, "post-urn", "", "Original post URN")
	cmd.MarkFlagRequired("comment-urn")
	cmd.MarkFlagRequired("post-urn")

	return cmd
}
