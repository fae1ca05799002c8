package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListComments(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/socialActions/urn%3Ali%3AugcPost%3A7/comments", r.URL.EscapedPath())
		assert.Equal(t, "5", r.URL.Query().Get("start"))
		assert.Equal(t, "10", r.URL.Query().Get("count"))

		fmt.Fprint(w, `{"elements":[
			{"actor":"urn:li:person:aaa","id":"111","commentUrn":"urn:li:comment:(urn:li:activity:1,111)",
			 "message":{"text":"nice"},"created":{"time":1700000000000},"likesSummary":{"totalLikes":3}},
			{"actor":"urn:li:person:bbb","id":"222","message":{"text":"thanks"}}
		]}`)
	}))

	comments, err := client.ListComments(context.Background(), "urn:li:ugcPost:7", 5, 10)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	assert.Equal(t, "urn:li:person:aaa", comments[0].Actor)
	assert.Equal(t, "111", comments[0].ID)
	assert.Equal(t, "urn:li:comment:(urn:li:activity:1,111)", comments[0].CommentURN)
	assert.Equal(t, "nice", comments[0].Message.Text)
	assert.Equal(t, int64(1700000000000), comments[0].Created.Time)
	assert.Equal(t, 3, comments[0].LikesSummary.TotalLikes)

	// Missing fields decode to zero values, not errors.
	assert.Zero(t, comments[1].Created.Time)
	assert.Zero(t, comments[1].LikesSummary.TotalLikes)
}

func TestListComments_Empty(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"elements":[]}`)
	}))

	comments, err := client.ListComments(context.Background(), "urn:li:ugcPost:7", 0, 20)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestListComments_PermissionDenied(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"missing r_member_social"}`, http.StatusForbidden)
	}))

	_, err := client.ListComments(context.Background(), "urn:li:ugcPost:7", 0, 20)
	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))
}

func TestCreateComment(t *testing.T) {
	var payload map[string]any
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/socialActions/urn%3Ali%3AugcPost%3A7/comments", r.URL.EscapedPath())

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))

		w.Header().Set("X-Restli-Id", "333")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"commentUrn":"urn:li:comment:(urn:li:activity:1,333)"}`)
	}))

	ref, err := client.CreateComment(context.Background(), "urn:li:ugcPost:7", "great post")
	require.NoError(t, err)
	assert.Equal(t, "333", ref.ID)
	assert.Equal(t, "urn:li:comment:(urn:li:activity:1,333)", ref.URN)

	assert.Equal(t, "urn:li:person:AbC123", payload["actor"])
	assert.Equal(t, "urn:li:ugcPost:7", payload["object"])
	assert.Equal(t, "great post", payload["message"].(map[string]any)["text"])
	// Top-level comments never carry a parent.
	assert.NotContains(t, payload, "parentComment")
}

func TestReplyComment(t *testing.T) {
	parentURN := "urn:li:comment:(urn:li:activity:1,111)"

	var payload map[string]any
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Replies post to the parent comment's own comments sub-resource.
		assert.Equal(t,
			"/socialActions/urn%3Ali%3Acomment%3A%28urn%3Ali%3Aactivity%3A1%2C111%29/comments",
			r.URL.EscapedPath())

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))

		w.Header().Set("X-Restli-Id", "444")
		w.WriteHeader(http.StatusCreated)
	}))

	ref, err := client.ReplyComment(context.Background(), "urn:li:ugcPost:7", parentURN, "thanks!")
	require.NoError(t, err)
	assert.Equal(t, "444", ref.ID)
	assert.Empty(t, ref.URN)

	assert.Equal(t, "urn:li:ugcPost:7", payload["object"], "object stays the original post")
	assert.Equal(t, parentURN, payload["parentComment"])
	assert.Equal(t, "thanks!", payload["message"].(map[string]any)["text"])
}

func TestCreateComment_WriteFailureIsFatal(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"duplicate"}`, http.StatusConflict)
	}))

	_, err := client.CreateComment(context.Background(), "urn:li:ugcPost:7", "again")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, IsPermissionDenied(err))
}
