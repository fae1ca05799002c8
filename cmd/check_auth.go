package cmd

import (
	"fmt"

	"linkedinctl/internal/settings"

	"github.com/spf13/cobra"
)

// newCheckAuthCmd creates the command that reports the stored authentication
// state. Missing or expired credentials surface as load errors (exit code 2).
func newCheckAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-auth",
		Short: "Check authentication status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := settings.Load()
			if err != nil {
				return err
			}

			daysLeft := int64(rec.ExpiresIn().Hours()) / 24

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "AUTHENTICATED=true\n")
			fmt.Fprintf(out, "PERSON_URN=%s\n", rec.PersonURN)
			fmt.Fprintf(out, "DISPLAY_NAME=%s\n", rec.DisplayName)
			fmt.Fprintf(out, "TOKEN_DAYS_LEFT=%d\n", daysLeft)
			return nil
		},
	}
}
