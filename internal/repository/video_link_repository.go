package repository

import (
	"time"

	"github.com/appdotbuilder/tele-vid-downloader/internal/model"
	"github.com/appdotbuilder/tele-vid-downloader/pkg/database"
)

// LinkFilters narrows and pages a video link query
type LinkFilters struct {
	Platform  *model.Platform
	Status    *model.LinkStatus
	UserID    *uint
	Limit     int
	Offset    int
	SortBy    string // created_at/updated_at/title
	SortOrder string // asc/desc
}

// VideoLinkRepository persists video link records
type VideoLinkRepository struct{}

// NewVideoLinkRepository creates a video link repository
func NewVideoLinkRepository() *VideoLinkRepository {
	return &VideoLinkRepository{}
}

// Create inserts a video link
func (r *VideoLinkRepository) Create(link *model.VideoLink) error {
	return database.DB.Create(link).Error
}

// GetByID fetches a video link by primary key
func (r *VideoLinkRepository) GetByID(id uint) (*model.VideoLink, error) {
	var link model.VideoLink
	err := database.DB.First(&link, id).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Patch applies the given column updates to one link. Only columns present in the
// map are touched; updated_at is always refreshed.
func (r *VideoLinkRepository) Patch(id uint, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now()
	return database.DB.Model(&model.VideoLink{}).Where("id = ?", id).Updates(updates).Error
}

// ClaimProcessing atomically moves a link from pending to processing. The returned
// row count is 0 when the link was not pending, meaning another worker already
// claimed it (or it has advanced past that state).
func (r *VideoLinkRepository) ClaimProcessing(id uint) (int64, error) {
	result := database.DB.Model(&model.VideoLink{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]interface{}{
			"status":     model.StatusProcessing,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// GetPending returns up to limit links still waiting for their first pipeline run
func (r *VideoLinkRepository) GetPending(limit int) ([]model.VideoLink, error) {
	var links []model.VideoLink
	query := database.DB.Where("status = ?", model.StatusPending).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&links).Error
	return links, err
}

// List returns one page of links matching the filters along with the total count
func (r *VideoLinkRepository) List(filters LinkFilters) ([]model.VideoLink, int64, error) {
	var links []model.VideoLink
	var total int64

	query := database.DB.Model(&model.VideoLink{})
	if filters.Platform != nil {
		query = query.Where("platform = ?", *filters.Platform)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order(filters.SortBy + " " + filters.SortOrder).
		Offset(filters.Offset).
		Limit(filters.Limit).
		Find(&links).Error
	return links, total, err
}

// CountByStatus counts links in the given status
func (r *VideoLinkRepository) CountByStatus(status model.LinkStatus, count *int64) error {
	return database.DB.Model(&model.VideoLink{}).
		Where("status = ?", status).
		Count(count).Error
}
