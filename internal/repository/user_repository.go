package repository

import (
	"github.com/appdotbuilder/tele-vid-downloader/internal/model"
	"github.com/appdotbuilder/tele-vid-downloader/pkg/database"
)

// UserRepository persists link owners
type UserRepository struct{}

// NewUserRepository creates a user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Create inserts a user
func (r *UserRepository) Create(user *model.User) error {
	return database.DB.Create(user).Error
}

// GetByID fetches a user by primary key
func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	err := database.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByTelegramID fetches a user by telegram id
func (r *UserRepository) GetByTelegramID(telegramID string) (*model.User, error) {
	var user model.User
	err := database.DB.Where("telegram_id = ?", telegramID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists reports whether a user with the given id exists
func (r *UserRepository) Exists(id uint) (bool, error) {
	var count int64
	err := database.DB.Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
