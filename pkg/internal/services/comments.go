package services

import (
	"errors"
	"strings"

	"github.com/sofialeaf/quillfeed/pkg/internal/database"
	"github.com/sofialeaf/quillfeed/pkg/internal/models"
)

var ErrEmptyComment = errors.New("comment text cannot be empty")

func ListComments(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := database.C.
		Where("post_id = ?", postID).
		Preload("Author").
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return comments, err
	}

	return comments, nil
}

func CountComments(postID uint) (int64, error) {
	var count int64
	if err := database.C.Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

// NewComment attaches a comment to the post. The author always comes from
// the requester, never from the submission.
func NewComment(author models.Account, postID uint, text string) (models.Comment, error) {
	var comment models.Comment
	if len(strings.TrimSpace(text)) == 0 {
		return comment, ErrEmptyComment
	}

	var post models.Post
	if err := database.C.Where("id = ?", postID).Select("id").First(&post).Error; err != nil {
		return comment, err
	}

	comment = models.Comment{
		Text:     text,
		PostID:   post.ID,
		AuthorID: author.ID,
		Author:   author,
	}

	err := database.C.Create(&comment).Error
	return comment, err
}
