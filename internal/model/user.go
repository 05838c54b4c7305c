package model

import "time"

// User is the owner of submitted video links
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TelegramID string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"telegram_id"`
	Username   *string   `gorm:"type:varchar(100)" json:"username"`
	FirstName  *string   `gorm:"type:varchar(100)" json:"first_name"`
	LastName   *string   `gorm:"type:varchar(100)" json:"last_name"`
	IsAdmin    bool      `gorm:"default:false;not null" json:"is_admin"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
