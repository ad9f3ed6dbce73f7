package benchmark

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/api"
	"github.com/tweet-discussion-api/internal/mocks"
	"github.com/tweet-discussion-api/internal/models"
	"github.com/tweet-discussion-api/internal/repository"
	"github.com/tweet-discussion-api/internal/service"
	"github.com/tweet-discussion-api/internal/validation"
)

func newServices() *service.Services {
	return service.NewServices(&repository.Repositories{
		Creator: mocks.NewMockCreatorRepository(),
		Tweet:   mocks.NewMockTweetRepository(),
		Sticker: mocks.NewMockStickerRepository(),
		Comment: mocks.NewMockCommentRepository(),
	}, zerolog.Nop())
}

// seed creates one creator with n tweets
func seed(b *testing.B, services *service.Services, n int) {
	b.Helper()
	ctx := context.Background()
	creator, err := services.Creator.Create(ctx, &models.CreatorDTO{
		Login: "bench", Password: "benchpass", Firstname: "Ben", Lastname: "Chmark",
	})
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < n; i++ {
		if _, err := services.Tweet.Create(ctx, &models.TweetDTO{
			Title: fmt.Sprintf("tweet-%06d", i), Content: "benchmark content", CreatorID: creator.ID,
		}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkListTweets benchmarks the service-level getAll path
func BenchmarkListTweets(b *testing.B) {
	services := newServices()
	seed(b, services, 1000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := services.Tweet.GetAll(context.Background()); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkValidation benchmarks DTO validation including message lookup
func BenchmarkValidation(b *testing.B) {
	valid := &models.TweetDTO{Title: "hello", Content: "hello world", CreatorID: 1, StickerIDs: []int64{1, 2}}
	invalid := &models.TweetDTO{Title: "h", Content: "no", StickerIDs: []int64{0}}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validation.Validate(valid)
		validation.Validate(invalid)
	}
}

// BenchmarkGetCreatorHTTP benchmarks a full request through the router
func BenchmarkGetCreatorHTTP(b *testing.B) {
	gin.SetMode(gin.TestMode)
	services := newServices()
	seed(b, services, 0)
	router := api.NewPublisherRouter(services, &mocks.MockHealthChecker{}, nil, zerolog.Nop())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1.0/creators/1", nil))
		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}
