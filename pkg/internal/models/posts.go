package models

import (
	"time"

	"gorm.io/datatypes"
)

type Post struct {
	BaseModel

	Text     string `json:"text"`
	Language string `json:"language"`

	// Attachment references are resolved by the file service, the post
	// only carries their identifiers.
	Image       *string                     `json:"image"`
	Attachments datatypes.JSONSlice[string] `json:"attachments"`

	EditedAt *time.Time `json:"edited_at"`

	GroupID *uint  `json:"group_id"`
	Group   *Group `json:"group"`

	AuthorID uint    `json:"author_id"`
	Author   Account `json:"author"`

	Comments []Comment `json:"comments" gorm:"foreignKey:PostID"`
}
