package models

// Sticker is a label that can be attached to tweets
type Sticker struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// StickerDTO is the wire representation of a sticker
type StickerDTO struct {
	ID   int64  `json:"id,omitempty" validate:"omitempty,min=1"`
	Name string `json:"name" validate:"required,min=2,max=32"`
}

// GetID returns the identifier carried by the request
func (d *StickerDTO) GetID() int64 { return d.ID }
