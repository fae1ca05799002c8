package cmd

import (
	"errors"
	"os"

	"linkedinctl/internal/oauth"
	"linkedinctl/internal/settings"
	"linkedinctl/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
// These follow common conventions and are stable for scripting.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeAuthRequired indicates authentication is required but not available.
	ExitCodeAuthRequired = 2
	// ExitCodeAuthFailed indicates the OAuth flow failed.
	ExitCodeAuthFailed = 3
)

var debugFlag bool

// rootCmd represents the base command for the linkedinctl application.
var rootCmd = &cobra.Command{
	Use:   "linkedinctl",
	Short: "Post to LinkedIn from the command line",
	Long: `linkedinctl authenticates against LinkedIn's OAuth 2.0 member flow and
publishes posts, images, articles and comments through the versioned REST API.

Output is line-oriented KEY=value on stdout; warnings and progress go to
stderr. Run 'linkedinctl login <client-id> <client-secret>' first.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelWarn
		if debugFlag {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, os.Stderr)
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the
// application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "linkedinctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	// Missing, unparseable or expired credentials all mean the operator
	// has to (re-)authenticate.
	var settingsMissing *settings.MissingError
	if errors.As(err, &settingsMissing) {
		return ExitCodeAuthRequired
	}

	var settingsInvalid *settings.InvalidError
	if errors.As(err, &settingsInvalid) {
		return ExitCodeAuthRequired
	}

	var tokenExpired *settings.ExpiredError
	if errors.As(err, &tokenExpired) {
		return ExitCodeAuthRequired
	}

	// OAuth flow failures: denial, forged callback, nobody showed up, or a
	// post-callback step (exchange, profile fetch, persistence) broke.
	var denied *oauth.DeniedError
	if errors.As(err, &denied) {
		return ExitCodeAuthFailed
	}

	var mismatch *oauth.StateMismatchError
	if errors.As(err, &mismatch) {
		return ExitCodeAuthFailed
	}

	var timeout *oauth.TimeoutError
	if errors.As(err, &timeout) {
		return ExitCodeAuthFailed
	}

	var flowFailed *oauth.FlowFailedError
	if errors.As(err, &flowFailed) {
		return ExitCodeAuthFailed
	}

	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newCheckAuthCmd())
	rootCmd.AddCommand(newPostTextCmd())
	rootCmd.AddCommand(newPostImageCmd())
	rootCmd.AddCommand(newPostMultiImageCmd())
	rootCmd.AddCommand(newPostArticleCmd())
	rootCmd.AddCommand(newUploadImageCmd())
	rootCmd.AddCommand(newGetPostCmd())
	rootCmd.AddCommand(newListCommentsCmd())
	rootCmd.AddCommand(newCreateCommentCmd())
	rootCmd.AddCommand(newReplyCommentCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
