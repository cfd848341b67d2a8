package services

import (
	"errors"
	"fmt"

	"github.com/sofialeaf/quillfeed/pkg/internal/database"
	"github.com/sofialeaf/quillfeed/pkg/internal/models"
	"gorm.io/gorm"
)

// LoadOrCreateAccount maintains the local mirror of an identity-provider
// user. The profile fields follow whatever the latest token claims say.
func LoadOrCreateAccount(name, nick string, isAdmin bool) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return account, fmt.Errorf("unable to get account: %v", err)
		}
		account = models.Account{
			Name:    name,
			Nick:    nick,
			IsAdmin: isAdmin,
		}
		return account, database.C.Create(&account).Error
	}

	if account.Nick != nick || account.IsAdmin != isAdmin {
		account.Nick = nick
		account.IsAdmin = isAdmin
		if err := database.C.Save(&account).Error; err != nil {
			return account, err
		}
	}

	return account, nil
}

func GetAccount(name string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}
