package models

// Account is the local mirror of a user owned by the identity provider.
// Rows are maintained on the fly from verified token claims.
type Account struct {
	BaseModel

	Name    string `json:"name" gorm:"uniqueIndex"`
	Nick    string `json:"nick"`
	IsAdmin bool   `json:"is_admin"`

	Posts []Post `json:"posts" gorm:"foreignKey:AuthorID"`
}
