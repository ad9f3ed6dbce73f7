package models

import (
	"time"
)

// Tweet represents a post owned by a creator
type Tweet struct {
	ID        int64      `db:"id"`
	Title     string     `db:"title"`
	Content   string     `db:"content"`
	Creator   *Creator   `db:"-"`
	Stickers  []*Sticker `db:"-"` // nil leaves the stored stickers untouched on save
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// CreatorID returns the owning creator's id or zero when unresolved
func (t *Tweet) CreatorID() int64 {
	if t == nil || t.Creator == nil {
		return 0
	}
	return t.Creator.ID
}

// StickerIDs returns the ids of the attached stickers
func (t *Tweet) StickerIDs() []int64 {
	if t.Stickers == nil {
		return nil
	}
	ids := make([]int64, 0, len(t.Stickers))
	for _, s := range t.Stickers {
		ids = append(ids, s.ID)
	}
	return ids
}

// TweetDTO is the wire representation of a tweet
type TweetDTO struct {
	ID         int64      `json:"id,omitempty" validate:"omitempty,min=1"`
	Title      string     `json:"title" validate:"required,min=2,max=64"`
	Content    string     `json:"content" validate:"required,min=4,max=2048"`
	CreatorID  int64      `json:"creatorId" validate:"required,min=1"`
	StickerIDs []int64    `json:"stickerIds,omitempty" validate:"omitempty,dive,min=1"`
	CreatedAt  *time.Time `json:"createdAt,omitempty" validate:"-"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty" validate:"-"`
}

// GetID returns the identifier carried by the request
func (d *TweetDTO) GetID() int64 { return d.ID }
