package cmd

import (
	"bytes"
	"testing"
	"time"

	"linkedinctl/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMultiImage_RequiresTwoImages(t *testing.T) {
	seedCredentials(t, settings.Record{
		AccessToken:    "token",
		PersonURN:      "urn:li:person:xyz",
		TokenExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
	})

	cmd := newPostMultiImageCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	// One image path: fails before any upload or network call. The path
	// does not even need to exist.
	cmd.SetArgs([]string{"--text", "results", "--images", "/tmp/only-one.png"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 images")
	assert.Equal(t, ExitCodeError, getExitCode(err))
}
