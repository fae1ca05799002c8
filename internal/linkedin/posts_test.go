package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_TextOnly(t *testing.T) {
	var payload map[string]any
	client, diag := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/posts":
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &payload))
			w.Header().Set("X-Restli-Id", "urn:li:share:999")
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodGet:
			fmt.Fprint(w, `{"commentary":"hello feed"}`)
		default:
			http.Error(w, "unexpected request", http.StatusBadRequest)
		}
	}))

	postID, err := client.CreatePost(context.Background(), "hello feed", nil, VisibilityPublic)
	require.NoError(t, err)
	assert.Equal(t, "urn:li:share:999", postID)

	assert.Equal(t, "urn:li:person:AbC123", payload["author"])
	assert.Equal(t, "hello feed", payload["commentary"])
	assert.Equal(t, "PUBLIC", payload["visibility"])
	assert.Equal(t, "PUBLISHED", payload["lifecycleState"])
	assert.Equal(t, false, payload["isReshareDisabledByAuthor"])
	dist := payload["distribution"].(map[string]any)
	assert.Equal(t, "MAIN_FEED", dist["feedDistribution"])
	assert.Empty(t, dist["targetEntities"])
	assert.Empty(t, dist["thirdPartyDistributionChannels"])
	// A text-only post has no content variant at all.
	assert.NotContains(t, payload, "content")

	assert.Contains(t, diag.String(), "VERIFIED=Post text intact (10 chars)")
}

func TestCreatePost_WithContentVariant(t *testing.T) {
	var payload map[string]any
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &payload))
			w.Header().Set("X-Restli-Id", "urn:li:share:1000")
			w.WriteHeader(http.StatusCreated)
			return
		}
		fmt.Fprint(w, `{"commentary":"with media"}`)
	}))

	content := &PostContent{Media: &Media{ID: "urn:li:image:abc", Title: "chart"}}
	_, err := client.CreatePost(context.Background(), "with media", content, VisibilityConnections)
	require.NoError(t, err)

	media := payload["content"].(map[string]any)["media"].(map[string]any)
	assert.Equal(t, "urn:li:image:abc", media["id"])
	assert.Equal(t, "chart", media["title"])
	assert.Equal(t, "CONNECTIONS", payload["visibility"])
	// Exactly one variant is serialized.
	assert.NotContains(t, payload["content"], "multiImage")
	assert.NotContains(t, payload["content"], "article")
}

func TestGetPost(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/urn%3Ali%3AugcPost%3A42", r.URL.EscapedPath())
		fmt.Fprint(w, `{"id":"urn:li:ugcPost:42","commentary":"the text"}`)
	}))

	post, err := client.GetPost(context.Background(), "urn:li:ugcPost:42")
	require.NoError(t, err)
	assert.Equal(t, "urn:li:ugcPost:42", post.ID)
	assert.Equal(t, "the text", post.Commentary)
}

func TestVerifyPostText_Truncated(t *testing.T) {
	sent := strings.Repeat("a", 500)
	stored := strings.Repeat("a", 400)

	client, diag := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"commentary":%q}`, stored)
	}))

	client.VerifyPostText(context.Background(), "urn:li:ugcPost:1", sent)

	out := diag.String()
	assert.Contains(t, out, "WARNING=Text truncated by LinkedIn API: sent 500 chars, stored 400 chars (80%)")
	assert.Contains(t, out, "TRUNCATED_AT="+strings.Repeat("a", 80)+"\n")
	assert.Contains(t, out, "WARNING=Edit the post via LinkedIn web UI")
}

func TestVerifyPostText_Intact(t *testing.T) {
	client, diag := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"commentary":"same text"}`)
	}))

	client.VerifyPostText(context.Background(), "urn:li:ugcPost:1", "same text")

	assert.Contains(t, diag.String(), "VERIFIED=Post text intact (9 chars)")
	assert.NotContains(t, diag.String(), "WARNING=")
}

func TestVerifyPostText_ReadFailureDegrades(t *testing.T) {
	client, diag := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))

	client.VerifyPostText(context.Background(), "urn:li:ugcPost:1", "whatever")

	assert.Contains(t, diag.String(), "WARNING=Could not verify post text (API read failed)")
}

func TestValidateTextLength(t *testing.T) {
	client, diag := testClient(t, http.NotFoundHandler())

	assert.True(t, client.ValidateTextLength(strings.Repeat("x", 3000)))
	assert.Contains(t, diag.String(), "TEXT_LENGTH=3000 chars (limit ~3000)")

	diag.Reset()
	assert.False(t, client.ValidateTextLength(strings.Repeat("x", 3001)))
	assert.Contains(t, diag.String(), "WARNING=Text is 3001 chars, exceeds LinkedIn's ~3000 char limit.")
	assert.Contains(t, diag.String(), "RECOMMEND=Use --preview")
}

func TestValidateTextLength_CountsCharactersNotBytes(t *testing.T) {
	client, diag := testClient(t, http.NotFoundHandler())

	// 3000 multibyte characters are within the limit even at 6000 bytes.
	assert.True(t, client.ValidateTextLength(strings.Repeat("é", 3000)))
	assert.Contains(t, diag.String(), "TEXT_LENGTH=3000 chars")
}
