package models

// DefaultCountry is the partition key the publisher writes remote comments under
const DefaultCountry = "KZ"

// CommentIDCounter names the counter row that mints discussion comment ids
const CommentIDCounter = "comment_id"

// Comment is a comment as seen by the publisher. Its persistence may live in
// the discussion service; Tweet is always hydrated from local storage.
type Comment struct {
	ID      int64  `db:"id"`
	Content string `db:"content"`
	Tweet   *Tweet `db:"-"`
}

// TweetID returns the owning tweet's id or zero when unresolved
func (c *Comment) TweetID() int64 {
	if c == nil || c.Tweet == nil {
		return 0
	}
	return c.Tweet.ID
}

// CommentDTO is the publisher's wire representation of a comment
type CommentDTO struct {
	ID      int64  `json:"id,omitempty" validate:"omitempty,min=1"`
	Content string `json:"content" validate:"required,min=2,max=2048"`
	TweetID int64  `json:"tweetId" validate:"required,min=1"`
}

// GetID returns the identifier carried by the request
func (d *CommentDTO) GetID() int64 { return d.ID }

// CommentKey is the composite primary key of a comment in the wide-column
// store: partition by country, cluster by tweet then id.
type CommentKey struct {
	Country string
	TweetID int64
	ID      int64
}

// DiscussionComment is a comment row in the discussion service
type DiscussionComment struct {
	Key     CommentKey
	Content string
}

// DiscussionCommentDTO is the discussion service's wire representation of a
// comment. The publisher's remote repository speaks this shape too.
type DiscussionCommentDTO struct {
	Country string `json:"country" validate:"required"`
	ID      int64  `json:"id,omitempty" validate:"omitempty,min=1"`
	TweetID int64  `json:"tweetId" validate:"required,min=1"`
	Content string `json:"content" validate:"required,min=2,max=2048"`
}

// GetID returns the identifier carried by the request
func (d *DiscussionCommentDTO) GetID() int64 { return d.ID }
