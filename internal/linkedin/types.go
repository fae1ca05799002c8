package linkedin

// PostContent selects the optional media attachment of a post. Exactly one
// variant is set; a nil PostContent means a text-only post.
type PostContent struct {
	Media      *Media      `json:"media,omitempty"`
	MultiImage *MultiImage `json:"multiImage,omitempty"`
	Article    *Article    `json:"article,omitempty"`
}

// Media references a single uploaded image by its persistent URN.
type Media struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// MultiImage carries two or more uploaded images.
type MultiImage struct {
	Images []MultiImageEntry `json:"images"`
}

// MultiImageEntry is one image of a multi-image post.
type MultiImageEntry struct {
	ID      string `json:"id"`
	AltText string `json:"altText,omitempty"`
}

// Article links an external URL, optionally decorated with title, description
// and an uploaded thumbnail image URN.
type Article struct {
	Source      string `json:"source"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

// Post is the subset of a retrieved post this client cares about.
type Post struct {
	ID         string `json:"id"`
	Commentary string `json:"commentary"`
}

// Comment is one entry of a post's comment thread.
type Comment struct {
	Actor        string         `json:"actor"`
	ID           string         `json:"id"`
	CommentURN   string         `json:"commentUrn"`
	Message      CommentMessage `json:"message"`
	Created      CommentCreated `json:"created"`
	LikesSummary LikesSummary   `json:"likesSummary"`
}

// CommentMessage holds the comment text.
type CommentMessage struct {
	Text string `json:"text"`
}

// CommentCreated holds the creation timestamp in epoch milliseconds.
type CommentCreated struct {
	Time int64 `json:"time"`
}

// LikesSummary holds the aggregate like count.
type LikesSummary struct {
	TotalLikes int `json:"totalLikes"`
}

// CommentRef identifies a freshly created comment or reply.
type CommentRef struct {
	ID  string
	URN string
}
