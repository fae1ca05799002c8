package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"linkedinctl/internal/linkedin"
	"linkedinctl/internal/settings"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// composeURL is LinkedIn's web composer, surfaced in previews so the
// operator can finish a post manually.
const composeURL = "https://www.linkedin.com/feed/?shareActive=true"

// newAPIClient loads the stored credentials and builds a client from them.
// Load failures carry the typed settings errors that map to exit code 2.
func newAPIClient() (*linkedin.Client, error) {
	rec, err := settings.Load()
	if err != nil {
		return nil, err
	}
	return linkedin.NewClient(linkedin.Config{Settings: rec}), nil
}

// addTextFlags registers the mutually exclusive --text / --text-file pair;
// exactly one must be given.
func addTextFlags(cmd *cobra.Command) {
	cmd.Flags().String("text", "", "Post text content")
	cmd.Flags().String("text-file", "", "Path to file containing post text")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")
	cmd.MarkFlagsOneRequired("text", "text-file")
}

// addPostFlags registers the flags shared by every posting command.
func addPostFlags(cmd *cobra.Command) {
	addTextFlags(cmd)
	cmd.Flags().String("visibility", linkedin.VisibilityPublic, "Post visibility: PUBLIC or CONNECTIONS")
	cmd.Flags().Bool("preview", false, "Validate and upload media without creating the post")
}

// resolveText returns the post text from --text or the trimmed contents of
// --text-file. A missing text file is fatal.
func resolveText(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("text-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("text file not found: %s", path)
			}
			return "", fmt.Errorf("reading text file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	text, _ := cmd.Flags().GetString("text")
	return text, nil
}

// resolveVisibility validates the --visibility flag value.
func resolveVisibility(cmd *cobra.Command) (string, error) {
	visibility, _ := cmd.Flags().GetString("visibility")
	switch visibility {
	case linkedin.VisibilityPublic, linkedin.VisibilityConnections:
		return visibility, nil
	default:
		return "", fmt.Errorf("invalid visibility %q: must be PUBLIC or CONNECTIONS", visibility)
	}
}

// textStart returns the first 120 characters of s for preview lines.
func textStart(s string) string {
	runes := []rune(s)
	if len(runes) <= 120 {
		return s
	}
	return string(runes[:120])
}

// printTextPreview emits the preview lines shared by all posting commands.
func printTextPreview(cmd *cobra.Command, text string) {
	fmt.Fprintf(cmd.OutOrStdout(), "TEXT_LENGTH=%d chars\n", utf8.RuneCountInString(text))
	fmt.Fprintf(cmd.OutOrStdout(), "TEXT_START=%s...\n", textStart(text))
	fmt.Fprintf(cmd.OutOrStdout(), "COMPOSE_URL=%s\n", composeURL)
}

// uploadImage uploads one local file with a progress spinner on stderr.
func uploadImage(ctx context.Context, client *linkedin.Client, path string) (string, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = fmt.Sprintf(" Uploading %s...", path)
	s.Start()
	defer s.Stop()

	return client.UploadImage(ctx, path)
}
