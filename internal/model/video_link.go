package model

import "time"

// VideoLink is one submitted media URL tracked through the retrieval-dispatch lifecycle.
// Optional columns stay NULL until the corresponding pipeline stage succeeds; delivery
// fields are only populated on upload success.
type VideoLink struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	UserID              uint       `gorm:"index;not null" json:"user_id"`
	URL                 string     `gorm:"type:text;not null" json:"url"`
	Platform            Platform   `gorm:"type:varchar(20);index;not null" json:"platform"`
	Status              LinkStatus `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"`
	Title               *string    `gorm:"type:text" json:"title"`
	ThumbnailURL        *string    `gorm:"type:text" json:"thumbnail_url"`
	FileSize            *int64     `gorm:"type:bigint" json:"file_size"` // bytes
	Duration            *int       `json:"duration"`                    // seconds
	ErrorMessage        *string    `gorm:"type:text" json:"error_message"`
	TelegramBotID       *uint      `gorm:"index" json:"telegram_bot_id"`
	TelegramFileID      *string    `gorm:"type:varchar(255)" json:"telegram_file_id"`
	TelegramMessageLink *string    `gorm:"type:text" json:"telegram_message_link"`
	DownloadedAt        *time.Time `json:"downloaded_at"`
	UploadedAt          *time.Time `json:"uploaded_at"`
	CreatedAt           time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (VideoLink) TableName() string {
	return "video_links"
}
