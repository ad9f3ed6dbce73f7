package validation

import (
	"strings"
	"testing"

	"github.com/tweet-discussion-api/internal/models"
)

func TestValidateCreator(t *testing.T) {
	tests := []struct {
		name       string
		creator    *models.CreatorDTO
		wantFields map[string]string
	}{
		{
			name: "valid creator",
			creator: &models.CreatorDTO{
				Login:     "johnyd",
				Password:  "secretpw",
				Firstname: "John",
				Lastname:  "Doe",
			},
		},
		{
			name: "missing login",
			creator: &models.CreatorDTO{
				Password:  "secretpw",
				Firstname: "John",
				Lastname:  "Doe",
			},
			wantFields: map[string]string{"login": "Login is required"},
		},
		{
			name: "password too short",
			creator: &models.CreatorDTO{
				Login:     "johnyd",
				Password:  "short",
				Firstname: "John",
				Lastname:  "Doe",
			},
			wantFields: map[string]string{"password": "Password must be between 8 and 128 characters"},
		},
		{
			name: "negative id",
			creator: &models.CreatorDTO{
				ID:        -1,
				Login:     "johnyd",
				Password:  "secretpw",
				Firstname: "John",
				Lastname:  "Doe",
			},
			wantFields: map[string]string{"id": "ID must be greater than 0"},
		},
		{
			name: "every field reported at once",
			creator: &models.CreatorDTO{
				Login:     "j",
				Password:  "",
				Firstname: strings.Repeat("x", 65),
				Lastname:  "D",
			},
			wantFields: map[string]string{
				"login":     "Login must be between 2 and 64 characters",
				"password":  "Password is required",
				"firstname": "Firstname must be between 2 and 64 characters",
				"lastname":  "Lastname must be between 2 and 64 characters",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFields(t, Validate(tt.creator), tt.wantFields)
		})
	}
}

func TestValidateTweet(t *testing.T) {
	tests := []struct {
		name       string
		tweet      *models.TweetDTO
		wantFields map[string]string
	}{
		{
			name:  "valid tweet",
			tweet: &models.TweetDTO{Title: "hi", Content: "hello world", CreatorID: 1},
		},
		{
			name:  "valid tweet with stickers",
			tweet: &models.TweetDTO{Title: "hi", Content: "hello world", CreatorID: 1, StickerIDs: []int64{1, 2}},
		},
		{
			name:       "missing creator",
			tweet:      &models.TweetDTO{Title: "hi", Content: "hello world"},
			wantFields: map[string]string{"creatorId": "Creator ID is required"},
		},
		{
			name:       "negative creator",
			tweet:      &models.TweetDTO{Title: "hi", Content: "hello world", CreatorID: -3},
			wantFields: map[string]string{"creatorId": "Creator ID must be greater than 0"},
		},
		{
			name:       "content too short",
			tweet:      &models.TweetDTO{Title: "hi", Content: "abc", CreatorID: 1},
			wantFields: map[string]string{"content": "Content must be between 4 and 2048 characters"},
		},
		{
			name:       "title multibyte counts runes",
			tweet:      &models.TweetDTO{Title: "日本", Content: "hello world", CreatorID: 1},
			wantFields: nil,
		},
		{
			name:       "invalid sticker id",
			tweet:      &models.TweetDTO{Title: "hi", Content: "hello world", CreatorID: 1, StickerIDs: []int64{1, 0}},
			wantFields: map[string]string{"stickerIds[1]": "Sticker ID must be greater than 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFields(t, Validate(tt.tweet), tt.wantFields)
		})
	}
}

func TestValidateSticker(t *testing.T) {
	assertFields(t, Validate(&models.StickerDTO{Name: "Like"}), nil)
	assertFields(t, Validate(&models.StickerDTO{Name: strings.Repeat("a", 33)}),
		map[string]string{"name": "Name must be between 2 and 32 characters"})
}

func TestValidateComments(t *testing.T) {
	assertFields(t, Validate(&models.CommentDTO{Content: "ok", TweetID: 1}), nil)
	assertFields(t, Validate(&models.CommentDTO{Content: "x"}), map[string]string{
		"content": "Content must be between 2 and 2048 characters",
		"tweetId": "Tweet ID is required",
	})

	assertFields(t, Validate(&models.DiscussionCommentDTO{Country: "KZ", TweetID: 1, Content: "ok"}), nil)
	assertFields(t, Validate(&models.DiscussionCommentDTO{}), map[string]string{
		"country": "Country is not provided",
		"tweetId": "Tweet ID is not provided",
		"content": "Content is not provided",
	})
}

func TestValidateUpdate(t *testing.T) {
	valid := &models.StickerDTO{ID: 3, Name: "Like"}
	assertFields(t, ValidateUpdate(valid), nil)

	missingID := &models.StickerDTO{Name: "Like"}
	assertFields(t, ValidateUpdate(missingID), map[string]string{"id": "ID is required"})

	both := &models.StickerDTO{Name: "L"}
	assertFields(t, ValidateUpdate(both), map[string]string{
		"id":   "ID is required",
		"name": "Name must be between 2 and 32 characters",
	})
}

func TestValidate_NilPointer(t *testing.T) {
	var dto *models.CreatorDTO
	fields := Validate(dto)
	if len(fields) != 1 {
		t.Fatalf("Expected a single body error, got %v", fields)
	}
}

func assertFields(t *testing.T, got, want map[string]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d invalid fields %v, want %d %v", len(got), got, len(want), want)
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("field %q: got %q, want %q", field, got[field], msg)
		}
	}
}
