package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newUploadImageCmd creates the command that uploads an image without
// creating a post, printing the URN for later use.
func newUploadImageCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "upload-image",
		Short: "Upload an image and get its URN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			imageURN, err := uploadImage(cmd.Context(), client, file)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "IMAGE_URN=%s\n", imageURN)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to image file")
	cmd.MarkFlagRequired("file")

	return cmd
}
