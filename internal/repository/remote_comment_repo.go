package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/apperr"
	"github.com/tweet-discussion-api/internal/config"
	"github.com/tweet-discussion-api/internal/mapper"
	"github.com/tweet-discussion-api/internal/metrics"
	"github.com/tweet-discussion-api/internal/models"
)

const discussionService = "discussion"

// errRemoteNotFound marks a 404 from the discussion service
var errRemoteNotFound = errors.New("remote comment not found")

// remoteCommentRepo keeps the publisher's comments in the discussion service.
// By default every remote failure degrades to an empty result; in strict
// mode it surfaces as apperr.Unavailable.
type remoteCommentRepo struct {
	baseURL    string
	httpclient *http.Client
	strict     bool
	tweets     TweetRepository
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewRemoteCommentRepo creates a comment repository backed by the discussion service
func NewRemoteCommentRepo(
	cfg *config.DiscussionConfig,
	tweets TweetRepository,
	m *metrics.Metrics,
	log zerolog.Logger,
) CommentRepository {
	return &remoteCommentRepo{
		baseURL:    cfg.URL,
		httpclient: &http.Client{Timeout: cfg.Timeout},
		strict:     cfg.Strict,
		tweets:     tweets,
		metrics:    m,
		log:        log.With().Str("component", "remote_comment_repo").Logger(),
	}
}

// Save POSTs new comments and PUTs existing ones
func (r *remoteCommentRepo) Save(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	method := http.MethodPost
	if comment.ID != 0 {
		method = http.MethodPut
	}

	payload := mapper.CommentToDiscussionDTO(comment)
	payload.Country = models.DefaultCountry

	var saved models.DiscussionCommentDTO
	if err := r.call(ctx, "save", method, r.apipath(), payload, &saved); err != nil {
		if r.strict {
			if errors.Is(err, errRemoteNotFound) {
				return nil, apperr.NotFound(models.EntityComment)
			}
			return nil, apperr.Unavailable(discussionService, err)
		}
		r.log.Warn().Err(err).Int64("comment_id", comment.ID).Msg("Remote save failed, returning input")
		return comment, nil
	}

	// The saved comment belongs to the tweet the caller asked for
	if tweetID := comment.TweetID(); tweetID != 0 {
		saved.TweetID = tweetID
	}
	return r.hydrateOne(ctx, &saved)
}

// GetByID fetches one comment and attaches its local tweet
func (r *remoteCommentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var dto models.DiscussionCommentDTO
	if err := r.call(ctx, "get", http.MethodGet, r.apipath(id), nil, &dto); err != nil {
		if errors.Is(err, errRemoteNotFound) {
			return nil, nil
		}
		if r.strict {
			return nil, apperr.Unavailable(discussionService, err)
		}
		r.log.Warn().Err(err).Int64("comment_id", id).Msg("Remote get failed, treating as absent")
		return nil, nil
	}

	return r.hydrateOne(ctx, &dto)
}

// Exists is GetByID without the payload
func (r *remoteCommentRepo) Exists(ctx context.Context, id int64) (bool, error) {
	comment, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return comment != nil, nil
}

// Delete removes a comment; absent comments are not an error
func (r *remoteCommentRepo) Delete(ctx context.Context, id int64) error {
	err := r.call(ctx, "delete", http.MethodDelete, r.apipath(id), nil, nil)
	if err == nil || errors.Is(err, errRemoteNotFound) {
		return nil
	}
	if r.strict {
		return apperr.Unavailable(discussionService, err)
	}
	r.log.Warn().Err(err).Int64("comment_id", id).Msg("Remote delete failed, ignoring")
	return nil
}

// List fetches every comment, hydrating each distinct tweet once
func (r *remoteCommentRepo) List(ctx context.Context) ([]*models.Comment, error) {
	var dtos []models.DiscussionCommentDTO
	if err := r.call(ctx, "list", http.MethodGet, r.apipath(), nil, &dtos); err != nil {
		if r.strict && !errors.Is(err, errRemoteNotFound) {
			return nil, apperr.Unavailable(discussionService, err)
		}
		r.log.Warn().Err(err).Msg("Remote list failed, returning empty")
		return make([]*models.Comment, 0), nil
	}

	tweets := make(map[int64]*models.Tweet)
	comments := make([]*models.Comment, 0, len(dtos))
	for i := range dtos {
		comment := mapper.DiscussionDTOToComment(&dtos[i])
		if err := r.attachTweet(ctx, comment, dtos[i].TweetID, tweets); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

func (r *remoteCommentRepo) hydrateOne(ctx context.Context, dto *models.DiscussionCommentDTO) (*models.Comment, error) {
	comment := mapper.DiscussionDTOToComment(dto)
	if err := r.attachTweet(ctx, comment, dto.TweetID, make(map[int64]*models.Tweet, 1)); err != nil {
		return nil, err
	}
	return comment, nil
}

// attachTweet resolves tweetID against local storage, memoising in seen
func (r *remoteCommentRepo) attachTweet(ctx context.Context, comment *models.Comment, tweetID int64, seen map[int64]*models.Tweet) error {
	tweet, ok := seen[tweetID]
	if !ok {
		var err error
		if tweet, err = r.tweets.GetByID(ctx, tweetID); err != nil {
			return fmt.Errorf("failed to hydrate tweet %d: %w", tweetID, err)
		}
		if tweet == nil {
			tweet = &models.Tweet{ID: tweetID}
		}
		seen[tweetID] = tweet
	}
	comment.Tweet = tweet
	return nil
}

// call performs one JSON round trip. out may be nil when the response has no body.
func (r *remoteCommentRepo) call(ctx context.Context, op, method, url string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpclient.Do(req)
	if err != nil {
		r.metrics.RemoteCall(op, metrics.OutcomeFailed)
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		r.metrics.RemoteCall(op, metrics.OutcomeNotFound)
		return errRemoteNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		r.metrics.RemoteCall(op, metrics.OutcomeFailed)
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, url, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			r.metrics.RemoteCall(op, metrics.OutcomeFailed)
			return fmt.Errorf("failed to decode %s %s response: %w", method, url, err)
		}
	}
	r.metrics.RemoteCall(op, metrics.OutcomeOK)
	return nil
}

func (r *remoteCommentRepo) apipath(id ...int64) string {
	path := r.baseURL + "/api/v1.0/comments"
	if len(id) > 0 {
		path += "/" + strconv.FormatInt(id[0], 10)
	}
	return path
}
