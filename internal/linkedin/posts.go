package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Post visibility values accepted by the API.
const (
	VisibilityPublic      = "PUBLIC"
	VisibilityConnections = "CONNECTIONS"
)

type postDistribution struct {
	FeedDistribution               string `json:"feedDistribution"`
	TargetEntities                 []any  `json:"targetEntities"`
	ThirdPartyDistributionChannels []any  `json:"thirdPartyDistributionChannels"`
}

type createPostRequest struct {
	Author                    string           `json:"author"`
	Commentary                string           `json:"commentary"`
	Visibility                string           `json:"visibility"`
	Distribution              postDistribution `json:"distribution"`
	Content                   *PostContent     `json:"content,omitempty"`
	LifecycleState            string           `json:"lifecycleState"`
	IsReshareDisabledByAuthor bool             `json:"isReshareDisabledByAuthor"`
}

// CreatePost publishes a post and returns its URN, taken from the
// x-restli-id response header. content may be nil for a text-only post.
// After creation the stored commentary is read back and compared against
// what was sent; that verification is advisory and never fails the call.
func (c *Client) CreatePost(ctx context.Context, commentary string, content *PostContent, visibility string) (string, error) {
	payload := createPostRequest{
		Author:     c.rec.PersonURN,
		Commentary: commentary,
		Visibility: visibility,
		Distribution: postDistribution{
			FeedDistribution:               "MAIN_FEED",
			TargetEntities:                 []any{},
			ThirdPartyDistributionChannels: []any{},
		},
		Content:                   content,
		LifecycleState:            "PUBLISHED",
		IsReshareDisabledByAuthor: false,
	}

	headers, _, err := c.do(ctx, http.MethodPost, c.baseURL+"/posts", payload)
	if err != nil {
		return "", err
	}

	// Header lookup is case-insensitive by construction.
	postID := headers.Get("x-restli-id")
	if postID != "" {
		c.VerifyPostText(ctx, postID, commentary)
	}

	return postID, nil
}

// GetPost retrieves a post by URN.
func (c *Client) GetPost(ctx context.Context, postURN string) (Post, error) {
	_, body, err := c.do(ctx, http.MethodGet, c.baseURL+"/posts/"+escapeURN(postURN), nil)
	if err != nil {
		return Post{}, err
	}

	var post Post
	if err := json.Unmarshal(body, &post); err != nil {
		return Post{}, fmt.Errorf("parsing post response: %w", err)
	}
	if post.ID == "" {
		post.ID = postURN
	}

	return post, nil
}

// VerifyPostText fetches the post back and compares the stored commentary
// length against what was sent. The API is known to silently truncate long
// commentary; a shorter stored text produces warnings with the stored
// percentage and the tail of what survived. A failed read degrades to a
// "could not verify" warning. Never returns an error.
func (c *Client) VerifyPostText(ctx context.Context, postURN, sent string) {
	post, err := c.GetPost(ctx, postURN)
	if err != nil {
		fmt.Fprintf(c.diag, "WARNING=Could not verify post text (API read failed)\n")
		return
	}

	sentLen := textLength(sent)
	storedLen := textLength(post.Commentary)
	if storedLen < sentLen {
		fmt.Fprintf(c.diag, "WARNING=Text truncated by LinkedIn API: sent %d chars, stored %d chars (%d%%)\n",
			sentLen, storedLen, storedLen*100/sentLen)
		fmt.Fprintf(c.diag, "TRUNCATED_AT=%s\n", textTail(post.Commentary, 80))
		fmt.Fprintf(c.diag, "WARNING=Edit the post via LinkedIn web UI to fix the text. The REST API PARTIAL_UPDATE is unreliable for commentary.\n")
		return
	}

	fmt.Fprintf(c.diag, "VERIFIED=Post text intact (%d chars)\n", storedLen)
}

// ValidateTextLength warns when the commentary exceeds the safe limit and
// reports whether the text is within it. Over-limit text is allowed through;
// the API truncates rather than rejects.
func (c *Client) ValidateTextLength(text string) bool {
	length := textLength(text)
	if length > TextWarnThreshold {
		fmt.Fprintf(c.diag, "WARNING=Text is %d chars, exceeds LinkedIn's ~%d char limit. Post may be silently truncated by the API.\n",
			length, TextWarnThreshold)
		fmt.Fprintf(c.diag, "RECOMMEND=Use --preview to upload images without posting, then paste text via LinkedIn's web UI.\n")
		return false
	}
	fmt.Fprintf(c.diag, "TEXT_LENGTH=%d chars (limit ~%d)\n", length, TextWarnThreshold)
	return true
}
