package model

import "time"

// PlatformAssignment routes one platform to a specific delivery bot.
// A platform is mapped to at most one bot.
type PlatformAssignment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BotID     uint      `gorm:"index;not null" json:"bot_id"`
	Platform  Platform  `gorm:"type:varchar(20);uniqueIndex;not null" json:"platform"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (PlatformAssignment) TableName() string {
	return "bot_platforms"
}
