package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type createCommentRequest struct {
	Actor         string         `json:"actor"`
	Object        string         `json:"object"`
	Message       CommentMessage `json:"message"`
	ParentComment string         `json:"parentComment,omitempty"`
}

// ListComments returns one page of a post's comments, oldest pagination
// semantics left to the API. Reading comments needs the restricted
// r_member_social scope; callers should expect IsPermissionDenied failures.
func (c *Client) ListComments(ctx context.Context, postURN string, start, count int) ([]Comment, error) {
	requestURL := fmt.Sprintf("%s/socialActions/%s/comments?start=%d&count=%d",
		c.baseURL, escapeURN(postURN), start, count)

	_, body, err := c.do(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	var page struct {
		Elements []Comment `json:"elements"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("parsing comments response: %w", err)
	}

	return page.Elements, nil
}

// CreateComment comments on a post as the authenticated member. The comment
// id comes from the x-restli-id header, the URN from the response body.
func (c *Client) CreateComment(ctx context.Context, postURN, text string) (CommentRef, error) {
	return c.postComment(ctx, postURN, postURN, text, "")
}

// ReplyComment replies to an existing comment. The request posts to the
// parent comment's own comments sub-resource, with the original post as the
// object.
func (c *Client) ReplyComment(ctx context.Context, postURN, commentURN, text string) (CommentRef, error) {
	return c.postComment(ctx, commentURN, postURN, text, commentURN)
}

func (c *Client) postComment(ctx context.Context, targetURN, postURN, text, parentURN string) (CommentRef, error) {
	payload := createCommentRequest{
		Actor:         c.rec.PersonURN,
		Object:        postURN,
		Message:       CommentMessage{Text: text},
		ParentComment: parentURN,
	}

	requestURL := c.baseURL + "/socialActions/" + escapeURN(targetURN) + "/comments"
	headers, body, err := c.do(ctx, http.MethodPost, requestURL, payload)
	if err != nil {
		return CommentRef{}, err
	}

	ref := CommentRef{ID: headers.Get("x-restli-id")}

	var created struct {
		CommentURN string `json:"commentUrn"`
	}
	// The body is informative only; a missing or unparseable body still
	// leaves a usable id from the header.
	if len(body) > 0 {
		if err := json.Unmarshal(body, &created); err == nil {
			ref.URN = created.CommentURN
		}
	}

	return ref, nil
}
