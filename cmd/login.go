package cmd

import (
	"errors"
	"fmt"
	"os"

	"linkedinctl/internal/oauth"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// newLoginCmd creates the command that runs the browser-based OAuth flow and
// persists the resulting credentials.
func newLoginCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "login <client-id> <client-secret>",
		Short: "Authenticate with LinkedIn via the browser",
		Long: `Runs the OAuth 2.0 authorization code flow: opens the LinkedIn consent
page in your browser, waits for the redirect on a local loopback port, then
exchanges the code and stores the credentials.

The flow waits at most 10 minutes for the browser authorization. Create the
client id and secret in the LinkedIn developer portal with the redirect URL
http://localhost:9876/callback registered.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flow := oauth.NewFlow(oauth.FlowConfig{
				ClientID:     args[0],
				ClientSecret: args[1],
				Port:         port,
				Out:          cmd.OutOrStdout(),
			})

			rec, err := flow.Run(cmd.Context())
			if err != nil {
				return classifyFlowError(err)
			}

			fmt.Fprintf(os.Stderr, "%s Logged in as %s\n", text.FgGreen.Sprint("✓"), rec.DisplayName)
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", oauth.DefaultCallbackPort, "Local callback port (must match the registered redirect URL)")

	return cmd
}

// classifyFlowError keeps the classified callback outcomes as they are and
// wraps everything else, so every login failure maps to exit code 3.
func classifyFlowError(err error) error {
	var denied *oauth.DeniedError
	var mismatch *oauth.StateMismatchError
	var timeout *oauth.TimeoutError
	if errors.As(err, &denied) || errors.As(err, &mismatch) || errors.As(err, &timeout) {
		return err
	}
	return &oauth.FlowFailedError{Err: err}
}
