// Package mapper converts between wire DTOs and persisted entities. Relations
// flatten to ids on the way out; on the way in they are left unresolved for
// the service layer to look up.
package mapper

import (
	"github.com/tweet-discussion-api/internal/models"
)

func CreatorToDTO(c *models.Creator) *models.CreatorDTO {
	return &models.CreatorDTO{
		ID:        c.ID,
		Login:     c.Login,
		Password:  c.Password,
		Firstname: c.Firstname,
		Lastname:  c.Lastname,
	}
}

func CreatorToEntity(d *models.CreatorDTO) *models.Creator {
	return &models.Creator{
		ID:        d.ID,
		Login:     d.Login,
		Password:  d.Password,
		Firstname: d.Firstname,
		Lastname:  d.Lastname,
	}
}

func TweetToDTO(t *models.Tweet) *models.TweetDTO {
	dto := &models.TweetDTO{
		ID:         t.ID,
		Title:      t.Title,
		Content:    t.Content,
		CreatorID:  t.CreatorID(),
		StickerIDs: t.StickerIDs(),
		UpdatedAt:  t.UpdatedAt,
	}
	if !t.CreatedAt.IsZero() {
		createdAt := t.CreatedAt
		dto.CreatedAt = &createdAt
	}
	return dto
}

// TweetToEntity ignores timestamps; Creator and Stickers are left for the
// service to resolve.
func TweetToEntity(d *models.TweetDTO) *models.Tweet {
	return &models.Tweet{
		ID:      d.ID,
		Title:   d.Title,
		Content: d.Content,
	}
}

func StickerToDTO(s *models.Sticker) *models.StickerDTO {
	return &models.StickerDTO{ID: s.ID, Name: s.Name}
}

func StickerToEntity(d *models.StickerDTO) *models.Sticker {
	return &models.Sticker{ID: d.ID, Name: d.Name}
}

func CommentToDTO(c *models.Comment) *models.CommentDTO {
	return &models.CommentDTO{
		ID:      c.ID,
		Content: c.Content,
		TweetID: c.TweetID(),
	}
}

func CommentToEntity(d *models.CommentDTO) *models.Comment {
	return &models.Comment{ID: d.ID, Content: d.Content}
}

// CommentToDiscussionDTO builds the body the publisher sends to the
// discussion service. Country is filled in by the caller.
func CommentToDiscussionDTO(c *models.Comment) *models.DiscussionCommentDTO {
	return &models.DiscussionCommentDTO{
		ID:      c.ID,
		TweetID: c.TweetID(),
		Content: c.Content,
	}
}

// DiscussionDTOToComment keeps only the tweet id; the caller hydrates the
// full tweet from local storage.
func DiscussionDTOToComment(d *models.DiscussionCommentDTO) *models.Comment {
	c := &models.Comment{ID: d.ID, Content: d.Content}
	if d.TweetID != 0 {
		c.Tweet = &models.Tweet{ID: d.TweetID}
	}
	return c
}

func DiscussionCommentToDTO(c *models.DiscussionComment) *models.DiscussionCommentDTO {
	return &models.DiscussionCommentDTO{
		Country: c.Key.Country,
		ID:      c.Key.ID,
		TweetID: c.Key.TweetID,
		Content: c.Content,
	}
}

func DiscussionCommentToEntity(d *models.DiscussionCommentDTO) *models.DiscussionComment {
	return &models.DiscussionComment{
		Key: models.CommentKey{
			Country: d.Country,
			TweetID: d.TweetID,
			ID:      d.ID,
		},
		Content: d.Content,
	}
}
