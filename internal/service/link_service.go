package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/appdotbuilder/tele-vid-downloader/internal/classifier"
	"github.com/appdotbuilder/tele-vid-downloader/internal/model"
	"github.com/appdotbuilder/tele-vid-downloader/internal/repository"
	"github.com/appdotbuilder/tele-vid-downloader/pkg/apperrors"

	"gorm.io/gorm"
)

// patchableColumns is the set of video link columns an update may touch
var patchableColumns = map[string]bool{
	"status":                true,
	"title":                 true,
	"thumbnail_url":         true,
	"file_size":             true,
	"duration":              true,
	"error_message":         true,
	"telegram_bot_id":       true,
	"telegram_file_id":      true,
	"telegram_message_link": true,
	"downloaded_at":         true,
	"uploaded_at":           true,
}

var sortableColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"title":      true,
}

// LinkService owns video link records and enforces their status lifecycle
type LinkService struct {
	linkRepo *repository.VideoLinkRepository
	userRepo *repository.UserRepository
}

// NewLinkService creates a link service
func NewLinkService() *LinkService {
	return &LinkService{
		linkRepo: repository.NewVideoLinkRepository(),
		userRepo: repository.NewUserRepository(),
	}
}

// CreateLinkRequest is an ingestion request
type CreateLinkRequest struct {
	UserID   uint            `json:"user_id" binding:"required"`
	URL      string          `json:"url" binding:"required"`
	Platform *model.Platform `json:"platform"`
}

// Create persists a new submission at status pending. The platform is
// auto-classified when omitted; an unknown owner yields NotFound.
func (s *LinkService) Create(req *CreateLinkRequest) (*model.VideoLink, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, &apperrors.ValidationError{Message: "url is required"}
	}

	exists, err := s.userRepo.Exists(req.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &apperrors.NotFoundError{Message: fmt.Sprintf("user with ID %d not found", req.UserID)}
	}

	var platform model.Platform
	if req.Platform != nil {
		if !req.Platform.IsValid() {
			return nil, &apperrors.ValidationError{Message: fmt.Sprintf("unknown platform: %s", *req.Platform)}
		}
		platform = *req.Platform
	} else {
		platform, err = classifier.Validate(url)
		if err != nil {
			return nil, err
		}
	}

	link := &model.VideoLink{
		UserID:   req.UserID,
		URL:      url,
		Platform: platform,
		Status:   model.StatusPending,
	}
	if err := s.linkRepo.Create(link); err != nil {
		return nil, err
	}
	return link, nil
}

// GetByID fetches a link, mapping missing rows to NotFound
func (s *LinkService) GetByID(id uint) (*model.VideoLink, error) {
	link, err := s.linkRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Message: fmt.Sprintf("video link with id %d not found", id)}
		}
		return nil, err
	}
	return link, nil
}

// ApplyUpdate patches only the columns present in updates; a key mapped to nil
// explicitly clears that column. Contradictory field/status combinations are
// rejected as contract violations instead of being accepted silently.
func (s *LinkService) ApplyUpdate(id uint, updates map[string]interface{}) (*model.VideoLink, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	for column := range updates {
		if !patchableColumns[column] {
			return nil, &apperrors.ValidationError{Message: fmt.Sprintf("column %q is not updatable", column)}
		}
	}

	finalStatus := existing.Status
	if raw, ok := updates["status"]; ok {
		next, ok := raw.(model.LinkStatus)
		if !ok {
			if str, isStr := raw.(string); isStr {
				next = model.LinkStatus(str)
			} else {
				return nil, &apperrors.ValidationError{Message: "status must be a string"}
			}
		}
		if !next.IsValid() {
			return nil, &apperrors.ValidationError{Message: fmt.Sprintf("unknown status: %s", next)}
		}
		if !existing.Status.CanTransition(next) {
			return nil, &apperrors.ValidationError{
				Message: fmt.Sprintf("contract violation: illegal status transition %s -> %s", existing.Status, next),
			}
		}
		updates["status"] = next
		finalStatus = next
	}

	if raw, ok := updates["uploaded_at"]; ok && raw != nil && finalStatus != model.StatusUploaded {
		return nil, &apperrors.ValidationError{
			Message: fmt.Sprintf("contract violation: uploaded_at set while status is %s", finalStatus),
		}
	}
	if raw, ok := updates["downloaded_at"]; ok && raw != nil &&
		finalStatus != model.StatusDownloaded && finalStatus != model.StatusUploaded {
		return nil, &apperrors.ValidationError{
			Message: fmt.Sprintf("contract violation: downloaded_at set while status is %s", finalStatus),
		}
	}
	if raw, ok := updates["telegram_file_id"]; ok && raw != nil && finalStatus != model.StatusUploaded {
		return nil, &apperrors.ValidationError{
			Message: fmt.Sprintf("contract violation: telegram_file_id set while status is %s", finalStatus),
		}
	}

	if len(updates) > 0 {
		if err := s.linkRepo.Patch(id, updates); err != nil {
			return nil, err
		}
	} else {
		// An empty patch still refreshes updated_at
		if err := s.linkRepo.Patch(id, map[string]interface{}{"updated_at": time.Now()}); err != nil {
			return nil, err
		}
	}

	return s.GetByID(id)
}

// LinkPage is one page of a link query
type LinkPage struct {
	Data   []model.VideoLink `json:"data"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// Query returns a filtered, sorted page of links plus the total match count
func (s *LinkService) Query(filters repository.LinkFilters) (*LinkPage, error) {
	if filters.Platform != nil && !filters.Platform.IsValid() {
		return nil, &apperrors.ValidationError{Message: fmt.Sprintf("unknown platform: %s", *filters.Platform)}
	}
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, &apperrors.ValidationError{Message: fmt.Sprintf("unknown status: %s", *filters.Status)}
	}

	if filters.Limit <= 0 {
		filters.Limit = 20
	}
	if filters.Limit > 100 {
		return nil, &apperrors.ValidationError{Message: "limit must not exceed 100"}
	}
	if filters.Offset < 0 {
		return nil, &apperrors.ValidationError{Message: "offset must not be negative"}
	}

	if filters.SortBy == "" {
		filters.SortBy = "created_at"
	}
	if !sortableColumns[filters.SortBy] {
		return nil, &apperrors.ValidationError{Message: fmt.Sprintf("cannot sort by %q", filters.SortBy)}
	}
	switch filters.SortOrder {
	case "":
		filters.SortOrder = "desc"
	case "asc", "desc":
	default:
		return nil, &apperrors.ValidationError{Message: fmt.Sprintf("invalid sort order %q", filters.SortOrder)}
	}

	links, total, err := s.linkRepo.List(filters)
	if err != nil {
		return nil, err
	}
	return &LinkPage{
		Data:   links,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}
