package services

import (
	"errors"
	"fmt"

	"github.com/sofialeaf/quillfeed/pkg/internal/database"
	"github.com/sofialeaf/quillfeed/pkg/internal/models"
	"gorm.io/gorm"
)

func GetFollow(user models.Account, author models.Account) (*models.Follow, error) {
	var follow models.Follow
	if err := database.C.Where("follower_id = ? AND author_id = ?", user.ID, author.ID).First(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to get follow: %v", err)
	}
	return &follow, nil
}

// FollowAuthor is get-or-create: following someone you already follow
// returns the existing relation.
func FollowAuthor(user models.Account, author models.Account) (models.Follow, error) {
	var follow models.Follow
	if err := database.C.Where("follower_id = ? AND author_id = ?", user.ID, author.ID).First(&follow).Error; err == nil {
		return follow, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return follow, fmt.Errorf("unable to check follow is exists or not: %v", err)
	}

	follow = models.Follow{
		FollowerID: user.ID,
		AuthorID:   author.ID,
	}

	err := database.C.Create(&follow).Error
	return follow, err
}

// UnfollowAuthor fails hard when the relation does not exist, unlike
// FollowAuthor's idempotence.
func UnfollowAuthor(user models.Account, author models.Account) error {
	var follow models.Follow
	if err := database.C.Where("follower_id = ? AND author_id = ?", user.ID, author.ID).First(&follow).Error; err != nil {
		return err
	}

	return database.C.Delete(&follow).Error
}
