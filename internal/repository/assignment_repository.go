package repository

import (
	"github.com/appdotbuilder/tele-vid-downloader/internal/model"
	"github.com/appdotbuilder/tele-vid-downloader/pkg/database"
)

// AssignmentRepository persists platform-to-bot routing entries
type AssignmentRepository struct{}

// NewAssignmentRepository creates an assignment repository
func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{}
}

// Create inserts an assignment
func (r *AssignmentRepository) Create(assignment *model.PlatformAssignment) error {
	return database.DB.Create(assignment).Error
}

// GetByPlatform fetches the assignment for a platform, if any
func (r *AssignmentRepository) GetByPlatform(platform model.Platform) (*model.PlatformAssignment, error) {
	var assignment model.PlatformAssignment
	err := database.DB.Where("platform = ?", platform).First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Delete removes the mapping for the given platform and bot, reporting whether a
// row was actually removed.
func (r *AssignmentRepository) Delete(platform model.Platform, botID uint) (bool, error) {
	result := database.DB.
		Where("platform = ? AND bot_id = ?", platform, botID).
		Delete(&model.PlatformAssignment{})
	return result.RowsAffected > 0, result.Error
}

// List returns all assignments
func (r *AssignmentRepository) List() ([]model.PlatformAssignment, error) {
	var assignments []model.PlatformAssignment
	err := database.DB.Order("platform ASC").Find(&assignments).Error
	return assignments, err
}
