package services

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sofialeaf/quillfeed/pkg/internal/database"
	"github.com/sofialeaf/quillfeed/pkg/internal/models"
)

var ErrEmptyText = errors.New("post text cannot be empty")

// FeedOrder is newest first; the id tiebreak keeps ordering stable when
// two posts share a creation instant.
const FeedOrder = "created_at DESC, id DESC"

func FilterPostWithGroup(tx *gorm.DB, groupID uint) *gorm.DB {
	return tx.Where("group_id = ?", groupID)
}

func FilterPostWithAuthor(tx *gorm.DB, authorID uint) *gorm.DB {
	return tx.Where("author_id = ?", authorID)
}

// FilterPostWithFollower narrows posts to those written by authors the
// given account follows.
func FilterPostWithFollower(tx *gorm.DB, followerID uint) *gorm.DB {
	return tx.Where(
		"author_id IN (?)",
		database.C.Model(&models.Follow{}).Select("author_id").Where("follower_id = ?", followerID),
	)
}

func PreloadGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("Group")
}

func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadGeneral(tx).
		Where("posts.id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func ListPost(tx *gorm.DB, order any) ([]models.Post, error) {
	var items []models.Post
	if err := PreloadGeneral(tx).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

func NewPost(author models.Account, item models.Post) (models.Post, error) {
	if len(strings.TrimSpace(item.Text)) == 0 {
		return item, ErrEmptyText
	}

	if item.GroupID != nil {
		if _, err := GetGroupWithID(*item.GroupID); err != nil {
			return item, err
		}
	}

	item.AuthorID = author.ID
	item.Author = author
	item.Language = DetectLanguage(item.Text)
	item.Attachments = lo.Uniq(item.Attachments)

	log.Debug().Str("author", author.Name).Msg("Posting a post...")
	start := time.Now()

	if err := database.C.Create(&item).Error; err != nil {
		return item, err
	}

	log.Debug().Dur("elapsed", time.Since(start)).Uint("id", item.ID).Msg("The post is posted.")
	return item, nil
}

// EditDecision is the outcome of the ownership check on a post edit.
type EditDecision int

const (
	EditAllowed = EditDecision(iota)
	EditDenied
)

// AuthorizePostEdit decides whether editor may mutate the post. Only the
// author may; everyone else gets a denial, never an error.
func AuthorizePostEdit(item models.Post, editor models.Account) EditDecision {
	if item.AuthorID == editor.ID {
		return EditAllowed
	}
	return EditDenied
}

// EditPost runs the read-modify-write under a transaction with a row lock
// so concurrent edits of the same post cannot lose updates. The apply
// callback mutates text, group, image and attachments only; author and
// identity fields stay untouched.
func EditPost(id uint, editor models.Account, apply func(post *models.Post)) (models.Post, EditDecision, error) {
	var item models.Post
	decision := EditDenied

	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id = ?", id).First(&item).Error; err != nil {
			return err
		}

		decision = AuthorizePostEdit(item, editor)
		if decision != EditAllowed {
			return nil
		}

		apply(&item)
		if len(strings.TrimSpace(item.Text)) == 0 {
			return ErrEmptyText
		}

		item.Language = DetectLanguage(item.Text)
		item.Attachments = lo.Uniq(item.Attachments)
		item.EditedAt = lo.ToPtr(time.Now())

		return tx.Save(&item).Error
	})

	return item, decision, err
}

func DeletePost(item models.Post) error {
	return database.C.Delete(&item).Error
}

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	// sqlite has no row locks; its single writer gives the same guarantee.
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
