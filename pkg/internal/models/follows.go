package models

// Follow is a directed subscription from one account to an author.
// The pair is unique, one row per relation.
type Follow struct {
	BaseModel

	FollowerID uint    `json:"follower_id" gorm:"uniqueIndex:idx_follow_pair"`
	Follower   Account `json:"follower"`
	AuthorID   uint    `json:"author_id" gorm:"uniqueIndex:idx_follow_pair"`
	Author     Account `json:"author"`
}
