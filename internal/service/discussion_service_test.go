package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/apperr"
	"github.com/tweet-discussion-api/internal/mocks"
	"github.com/tweet-discussion-api/internal/models"
	"github.com/tweet-discussion-api/internal/repository"
	"github.com/tweet-discussion-api/internal/service"
)

func newDiscussion(ids repository.IDCounterRepository) (service.DiscussionService, *mocks.MockDiscussionCommentRepository) {
	comments := mocks.NewMockDiscussionCommentRepository()
	return service.NewDiscussionService(&repository.DiscussionRepositories{
		Comment: comments,
		IDs:     ids,
	}, zerolog.Nop()), comments
}

func TestDiscussionService_CreateMintsIDs(t *testing.T) {
	ids := mocks.NewMockIDCounterRepository()
	svc, comments := newDiscussion(ids)
	ctx := context.Background()

	first, err := svc.Create(ctx, &models.DiscussionCommentDTO{Country: "KZ", TweetID: 10, Content: "content"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, _ := svc.Create(ctx, &models.DiscussionCommentDTO{Country: "KZ", TweetID: 10, Content: "more content"})

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("Expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
	if ids.Counters[models.CommentIDCounter] != 2 {
		t.Errorf("Expected counter %q at 2, got %v", models.CommentIDCounter, ids.Counters)
	}
	key := models.CommentKey{Country: "KZ", TweetID: 10, ID: 1}
	if stored := comments.Comments[key]; stored == nil || stored.Content != "content" {
		t.Errorf("Expected row under %+v, got %+v", key, stored)
	}
}

func TestDiscussionService_UpdateKeepsKey(t *testing.T) {
	svc, comments := newDiscussion(mocks.NewMockIDCounterRepository())
	ctx := context.Background()
	created, _ := svc.Create(ctx, &models.DiscussionCommentDTO{Country: "KZ", TweetID: 10, Content: "content"})

	updated, err := svc.Update(ctx, &models.DiscussionCommentDTO{ID: created.ID, Country: "US", TweetID: 10, Content: "edited"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Content != "edited" || updated.Country != "KZ" || updated.TweetID != 10 {
		t.Errorf("Expected content change under the stored key, got %+v", updated)
	}
	if len(comments.Comments) != 1 {
		t.Errorf("Update must not create a second row, got %d", len(comments.Comments))
	}
}

func TestDiscussionService_UpdateMovesToAnotherTweet(t *testing.T) {
	svc, comments := newDiscussion(mocks.NewMockIDCounterRepository())
	ctx := context.Background()
	created, _ := svc.Create(ctx, &models.DiscussionCommentDTO{Country: "KZ", TweetID: 10, Content: "content"})

	moved, err := svc.Update(ctx, &models.DiscussionCommentDTO{ID: created.ID, Country: "KZ", TweetID: 99, Content: "moved"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if moved.ID != created.ID || moved.TweetID != 99 || moved.Content != "moved" {
		t.Errorf("Expected comment %d on tweet 99, got %+v", created.ID, moved)
	}

	if len(comments.Comments) != 1 {
		t.Fatalf("Expected exactly one row after a move, got %d", len(comments.Comments))
	}
	newKey := models.CommentKey{Country: "KZ", TweetID: 99, ID: created.ID}
	if comments.Comments[newKey] == nil {
		t.Errorf("Expected row under %+v, got %v", newKey, comments.Comments)
	}

	fetched, err := svc.GetOne(ctx, created.ID)
	if err != nil || fetched.TweetID != 99 {
		t.Errorf("Expected fetched comment on tweet 99, got %+v (%v)", fetched, err)
	}
}

func TestDiscussionService_DeleteByScannedKey(t *testing.T) {
	svc, comments := newDiscussion(mocks.NewMockIDCounterRepository())
	ctx := context.Background()
	created, _ := svc.Create(ctx, &models.DiscussionCommentDTO{Country: "KZ", TweetID: 10, Content: "content"})

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if comments.FindByIDCalls != 1 {
		t.Errorf("Expected one finder scan, got %d", comments.FindByIDCalls)
	}
	if len(comments.Comments) != 0 {
		t.Error("Row should be gone")
	}

	assertKind(t, svc.Delete(ctx, created.ID), apperr.KindNotFound, "Comment not found")
	_, err := svc.GetOne(ctx, created.ID)
	assertKind(t, err, apperr.KindNotFound, "Comment not found")
	_, err = svc.Update(ctx, &models.DiscussionCommentDTO{ID: created.ID, Country: "KZ", TweetID: 10, Content: "again"})
	assertKind(t, err, apperr.KindNotFound, "Comment not found")
}

func TestDiscussionService_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	svc, comments := newDiscussion(mocks.NewMockIDCounterRepository())

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Create(context.Background(), &models.DiscussionCommentDTO{Country: "KZ", TweetID: 1, Content: "hi there"}); err != nil {
				t.Errorf("Create failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(comments.Comments) != n {
		t.Errorf("Expected %d distinct rows, got %d", n, len(comments.Comments))
	}
}

// twoStepCounter increments and reads back in separate calls, each atomic on
// its own. barrier holds every caller between the two steps until all have
// incremented, which is the interleaving two processes can produce.
type twoStepCounter struct {
	mu      sync.Mutex
	value   int64
	barrier sync.WaitGroup
}

func (c *twoStepCounter) Next(ctx context.Context, name string) (int64, error) {
	c.mu.Lock()
	c.value++
	c.mu.Unlock()

	c.barrier.Done()
	c.barrier.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, nil
}

func TestDiscussionService_TwoStepCounterCollides(t *testing.T) {
	counter := &twoStepCounter{}
	counter.barrier.Add(2)
	svc, comments := newDiscussion(counter)

	results := make([]int64, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dto, err := svc.Create(context.Background(), &models.DiscussionCommentDTO{Country: "KZ", TweetID: 1, Content: "hi there"})
			if err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			results[i] = dto.ID
		}(i)
	}
	wg.Wait()

	// Both callers read the value after both increments
	if results[0] != 2 || results[1] != 2 {
		t.Fatalf("Expected both creates to mint id 2, got %v", results)
	}
	if len(comments.Comments) != 1 {
		t.Errorf("Expected the second write to overwrite the first, got %d rows", len(comments.Comments))
	}
}
