package repository

import (
	"context"
	"errors"

	"github.com/gocql/gocql"

	"github.com/tweet-discussion-api/internal/models"
)

const discussionColumns = `country, tweet_id, id, content`

// discussionCommentRepo stores comments in the wide-column keyspace
type discussionCommentRepo struct {
	session *gocql.Session
}

// NewDiscussionCommentRepo creates a new wide-column comment repository
func NewDiscussionCommentRepo(session *gocql.Session) DiscussionCommentRepository {
	return &discussionCommentRepo{session: session}
}

// Save upserts the row addressed by the comment's composite key
func (r *discussionCommentRepo) Save(ctx context.Context, comment *models.DiscussionComment) error {
	return r.session.Query(
		`INSERT INTO tbl_comment (`+discussionColumns+`) VALUES (?, ?, ?, ?)`,
		comment.Key.Country, comment.Key.TweetID, comment.Key.ID, comment.Content,
	).WithContext(ctx).Exec()
}

// FindByID locates a comment by its numeric id alone. id is not a prefix of
// the primary key, so this scans every partition.
func (r *discussionCommentRepo) FindByID(ctx context.Context, id int64) (*models.DiscussionComment, error) {
	var comment models.DiscussionComment
	err := r.session.Query(
		`SELECT `+discussionColumns+` FROM tbl_comment WHERE id = ? ALLOW FILTERING`, id,
	).WithContext(ctx).Scan(&comment.Key.Country, &comment.Key.TweetID, &comment.Key.ID, &comment.Content)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// List retrieves every comment in storage order
func (r *discussionCommentRepo) List(ctx context.Context) ([]*models.DiscussionComment, error) {
	iter := r.session.Query(`SELECT ` + discussionColumns + ` FROM tbl_comment`).WithContext(ctx).Iter()

	comments := make([]*models.DiscussionComment, 0)
	var comment models.DiscussionComment
	for iter.Scan(&comment.Key.Country, &comment.Key.TweetID, &comment.Key.ID, &comment.Content) {
		c := comment
		comments = append(comments, &c)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteByKey removes the row with the given composite key
func (r *discussionCommentRepo) DeleteByKey(ctx context.Context, key models.CommentKey) error {
	return r.session.Query(
		`DELETE FROM tbl_comment WHERE country = ? AND tweet_id = ? AND id = ?`,
		key.Country, key.TweetID, key.ID,
	).WithContext(ctx).Exec()
}
