package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "image.png")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

// uploadFixture wires an initializeUpload endpoint and a separate binary
// upload endpoint, the way the real API hands out a one-time upload URL.
func uploadFixture(t *testing.T, initBody func(uploadURL string) string) (*Client, *[]byte, *http.Header) {
	t.Helper()

	var uploaded []byte
	var uploadHeaders http.Header
	uploadServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		uploadHeaders = r.Header.Clone()
		uploaded, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(uploadServer.Close)

	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/images", r.URL.Path)
		require.Equal(t, "action=initializeUpload", r.URL.RawQuery)

		var envelope map[string]map[string]string
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &envelope))
		require.Equal(t, "urn:li:person:AbC123", envelope["initializeUploadRequest"]["owner"])

		fmt.Fprint(w, initBody(uploadServer.URL+"/upload"))
	}))

	return client, &uploaded, &uploadHeaders
}

func TestUploadImage_WrappedResponse(t *testing.T) {
	imageContent := []byte("png bytes")
	path := writeTestImage(t, imageContent)

	client, uploaded, headers := uploadFixture(t, func(uploadURL string) string {
		return fmt.Sprintf(`{"value":{"uploadUrl":%q,"image":"urn:li:image:wrapped"}}`, uploadURL)
	})

	urn, err := client.UploadImage(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "urn:li:image:wrapped", urn)
	assert.Equal(t, imageContent, *uploaded)

	// The one-time upload URL only needs the bearer token.
	assert.Equal(t, "Bearer test-token", headers.Get("Authorization"))
	assert.Equal(t, "application/octet-stream", headers.Get("Content-Type"))
	assert.Empty(t, headers.Get("X-Restli-Protocol-Version"))
	assert.Empty(t, headers.Get("Linkedin-Version"))
}

func TestUploadImage_UnwrappedResponse(t *testing.T) {
	path := writeTestImage(t, []byte("png bytes"))

	client, _, _ := uploadFixture(t, func(uploadURL string) string {
		return fmt.Sprintf(`{"uploadUrl":%q,"image":"urn:li:image:direct"}`, uploadURL)
	})

	urn, err := client.UploadImage(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "urn:li:image:direct", urn)
}

func TestUploadImage_MissingFileFailsBeforeNetwork(t *testing.T) {
	requested := false
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))

	_, err := client.UploadImage(context.Background(), filepath.Join(t.TempDir(), "missing.png"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "image file not found")
	assert.False(t, requested, "no API call may happen for a missing local file")
}

func TestUploadImage_InitializeFailure(t *testing.T) {
	path := writeTestImage(t, []byte("png bytes"))

	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"quota exceeded"}`, http.StatusTooManyRequests)
	}))

	_, err := client.UploadImage(context.Background(), path)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestUploadImage_MalformedInitResponse(t *testing.T) {
	path := writeTestImage(t, []byte("png bytes"))

	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"something":"else"}`)
	}))

	_, err := client.UploadImage(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing uploadUrl or image")
}

func TestUploadImage_BinaryUploadFailure(t *testing.T) {
	path := writeTestImage(t, []byte("png bytes"))

	uploadServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired upload url", http.StatusForbidden)
	}))
	t.Cleanup(uploadServer.Close)

	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"value":{"uploadUrl":%q,"image":"urn:li:image:x"}}`, uploadServer.URL)
	}))

	_, err := client.UploadImage(context.Background(), path)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}
