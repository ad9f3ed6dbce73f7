package service_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/api"
	"github.com/tweet-discussion-api/internal/config"
	"github.com/tweet-discussion-api/internal/mocks"
	"github.com/tweet-discussion-api/internal/models"
	"github.com/tweet-discussion-api/internal/repository"
	"github.com/tweet-discussion-api/internal/service"
)

// newRemotePublisher wires the publisher's services to a discussion service
// served from httptest, the way cmd/publisher does with COMMENT_STORAGE=remote
func newRemotePublisher(t *testing.T) (*service.Services, *mocks.MockDiscussionCommentRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()

	rows := mocks.NewMockDiscussionCommentRepository()
	discussion := service.NewDiscussionService(&repository.DiscussionRepositories{
		Comment: rows,
		IDs:     mocks.NewMockIDCounterRepository(),
	}, log)
	server := httptest.NewServer(api.NewDiscussionRouter(discussion, &mocks.MockHealthChecker{}, nil, log))
	t.Cleanup(server.Close)

	repos := &repository.Repositories{
		Creator: mocks.NewMockCreatorRepository(),
		Tweet:   mocks.NewMockTweetRepository(),
		Sticker: mocks.NewMockStickerRepository(),
	}
	repos.Comment = repository.NewRemoteCommentRepo(&config.DiscussionConfig{
		URL:     server.URL,
		Timeout: 2 * time.Second,
		Strict:  true,
	}, repos.Tweet, nil, log)

	return service.NewServices(repos, log), rows
}

func TestCommentService_RemoteMoveToAnotherTweet(t *testing.T) {
	services, rows := newRemotePublisher(t)
	ctx := context.Background()

	creator, err := services.Creator.Create(ctx, &models.CreatorDTO{
		Login: "johnyd", Password: "secretpw", Firstname: "John", Lastname: "Doe",
	})
	if err != nil {
		t.Fatalf("creating creator: %v", err)
	}
	first, _ := services.Tweet.Create(ctx, &models.TweetDTO{Title: "first", Content: "hello world", CreatorID: creator.ID})
	second, _ := services.Tweet.Create(ctx, &models.TweetDTO{Title: "second", Content: "hello world", CreatorID: creator.ID})

	comment, err := services.Comment.Create(ctx, &models.CommentDTO{Content: "nice", TweetID: first.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	moved, err := services.Comment.Update(ctx, &models.CommentDTO{ID: comment.ID, Content: "nice", TweetID: second.ID})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if moved.TweetID != second.ID {
		t.Errorf("Expected response on tweet %d, got %d", second.ID, moved.TweetID)
	}

	stored, err := services.Comment.GetOne(ctx, comment.ID)
	if err != nil {
		t.Fatalf("GetOne failed: %v", err)
	}
	if stored.TweetID != second.ID {
		t.Errorf("Expected stored comment on tweet %d, got %d", second.ID, stored.TweetID)
	}

	if len(rows.Comments) != 1 {
		t.Fatalf("Expected one discussion row, got %d", len(rows.Comments))
	}
	key := models.CommentKey{Country: models.DefaultCountry, TweetID: second.ID, ID: comment.ID}
	if rows.Comments[key] == nil {
		t.Errorf("Expected row under %+v, got %v", key, rows.Comments)
	}
}
