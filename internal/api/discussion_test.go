package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/api"
	"github.com/tweet-discussion-api/internal/metrics"
	"github.com/tweet-discussion-api/internal/mocks"
	"github.com/tweet-discussion-api/internal/models"
	"github.com/tweet-discussion-api/internal/repository"
	"github.com/tweet-discussion-api/internal/service"
)

func setupDiscussionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()
	svc := service.NewDiscussionService(&repository.DiscussionRepositories{
		Comment: mocks.NewMockDiscussionCommentRepository(),
		IDs:     mocks.NewMockIDCounterRepository(),
	}, log)
	return api.NewDiscussionRouter(svc, &mocks.MockHealthChecker{}, metrics.New("discussion", log), log)
}

func TestDiscussionCommentLifecycle(t *testing.T) {
	router := setupDiscussionRouter()

	w := doJSON(router, "POST", "/api/v1.0/comments", map[string]interface{}{
		"country": "KZ", "tweetId": 10, "content": "content",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created models.DiscussionCommentDTO
	json.Unmarshal(w.Body.Bytes(), &created)
	if created.ID != 1 || created.Country != "KZ" || created.TweetID != 10 {
		t.Errorf("Unexpected comment %+v", created)
	}

	w = doJSON(router, "PUT", "/api/v1.0/comments", map[string]interface{}{
		"id": 1, "country": "KZ", "tweetId": 10, "content": "edited",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(router, "GET", "/api/v1.0/comments/1", nil)
	var got models.DiscussionCommentDTO
	json.Unmarshal(w.Body.Bytes(), &got)
	if w.Code != http.StatusOK || got.Content != "edited" {
		t.Errorf("Unexpected fetch: %d %+v", w.Code, got)
	}

	if w = doJSON(router, "DELETE", "/api/v1.0/comments/1", nil); w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", w.Code)
	}

	w = doJSON(router, "GET", "/api/v1.0/comments/1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Message != "Comment not found" {
		t.Errorf("Unexpected message %q", resp.Message)
	}
}

func TestDiscussionValidation(t *testing.T) {
	router := setupDiscussionRouter()

	w := doJSON(router, "POST", "/api/v1.0/comments", map[string]interface{}{"content": "c"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	resp := decodeError(t, w)
	want := map[string]string{
		"country": "Country is not provided",
		"tweetId": "Tweet ID is not provided",
		"content": "Content must be between 2 and 2048 characters",
	}
	for field, msg := range want {
		if resp.InvalidFields[field] != msg {
			t.Errorf("%s: expected %q, got %q", field, msg, resp.InvalidFields[field])
		}
	}
}
