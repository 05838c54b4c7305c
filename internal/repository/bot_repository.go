package repository

import (
	"time"

	"github.com/appdotbuilder/tele-vid-downloader/internal/model"
	"github.com/appdotbuilder/tele-vid-downloader/pkg/database"

	"gorm.io/gorm"
)

// BotRepository persists delivery bots
type BotRepository struct{}

// NewBotRepository creates a bot repository
func NewBotRepository() *BotRepository {
	return &BotRepository{}
}

// Create inserts a bot. When the bot is flagged as default, every existing default
// flag is cleared first; both writes run inside one transaction so that two bots
// can never hold is_default simultaneously.
func (r *BotRepository) Create(bot *model.DeliveryBot) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if bot.IsDefault {
			err := tx.Model(&model.DeliveryBot{}).
				Where("is_default = ?", true).
				Updates(map[string]interface{}{
					"is_default": false,
					"updated_at": time.Now(),
				}).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(bot).Error
	})
}

// GetByID fetches a bot by primary key
func (r *BotRepository) GetByID(id uint) (*model.DeliveryBot, error) {
	var bot model.DeliveryBot
	err := database.DB.First(&bot, id).Error
	if err != nil {
		return nil, err
	}
	return &bot, nil
}

// GetByToken fetches a bot by its credential
func (r *BotRepository) GetByToken(token string) (*model.DeliveryBot, error) {
	var bot model.DeliveryBot
	err := database.DB.Where("token = ?", token).First(&bot).Error
	if err != nil {
		return nil, err
	}
	return &bot, nil
}

// GetActiveDefault fetches the active default bot, if any
func (r *BotRepository) GetActiveDefault() (*model.DeliveryBot, error) {
	var bot model.DeliveryBot
	err := database.DB.Where("is_default = ? AND is_active = ?", true, true).First(&bot).Error
	if err != nil {
		return nil, err
	}
	return &bot, nil
}

// List returns all registered bots
func (r *BotRepository) List() ([]model.DeliveryBot, error) {
	var bots []model.DeliveryBot
	err := database.DB.Order("created_at ASC").Find(&bots).Error
	return bots, err
}

// CountDefaults counts bots currently flagged as default
func (r *BotRepository) CountDefaults(count *int64) error {
	return database.DB.Model(&model.DeliveryBot{}).
		Where("is_default = ?", true).
		Count(count).Error
}
