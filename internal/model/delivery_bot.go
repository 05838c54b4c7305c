package model

import "time"

// DeliveryBot is a registered Telegram bot used to relay materialized files.
// At most one bot carries IsDefault=true at any time.
type DeliveryBot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	Username  *string   `gorm:"type:varchar(100)" json:"username"`
	IsDefault bool      `gorm:"index;default:false;not null" json:"is_default"`
	IsActive  bool      `gorm:"default:true;not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (DeliveryBot) TableName() string {
	return "telegram_bots"
}
