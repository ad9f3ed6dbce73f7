package models

// Entity names used in not-found and conflict messages
const (
	EntityCreator = "Creator"
	EntityTweet   = "Tweet"
	EntitySticker = "Sticker"
	EntityComment = "Comment"
)

// Creator represents an author of tweets
type Creator struct {
	ID        int64  `db:"id"`
	Login     string `db:"login"`
	Password  string `db:"password"`
	Firstname string `db:"firstname"`
	Lastname  string `db:"lastname"`
}

// CreatorDTO is the wire representation of a creator
type CreatorDTO struct {
	ID        int64  `json:"id,omitempty" validate:"omitempty,min=1"`
	Login     string `json:"login" validate:"required,min=2,max=64"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	Firstname string `json:"firstname" validate:"required,min=2,max=64"`
	Lastname  string `json:"lastname" validate:"required,min=2,max=64"`
}

// GetID returns the identifier carried by the request
func (d *CreatorDTO) GetID() int64 { return d.ID }
