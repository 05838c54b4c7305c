package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/appdotbuilder/tele-vid-downloader/internal/model"
	"github.com/appdotbuilder/tele-vid-downloader/internal/repository"
	"github.com/appdotbuilder/tele-vid-downloader/pkg/apperrors"

	"gorm.io/gorm"
)

// CredentialValidator performs the live identity check against the delivery
// provider, returning the bot's public handle.
type CredentialValidator interface {
	Validate(token string) (string, error)
}

// BotService manages delivery-bot credentials, default selection, and
// platform-to-bot routing.
type BotService struct {
	botRepo        *repository.BotRepository
	assignmentRepo *repository.AssignmentRepository
	validator      CredentialValidator
}

// NewBotService creates a bot service
func NewBotService(validator CredentialValidator) *BotService {
	return &BotService{
		botRepo:        repository.NewBotRepository(),
		assignmentRepo: repository.NewAssignmentRepository(),
		validator:      validator,
	}
}

// RegisterBotRequest describes a bot registration
type RegisterBotRequest struct {
	Name      string  `json:"name" binding:"required"`
	Token     string  `json:"token" binding:"required"`
	Username  *string `json:"username"`
	IsDefault bool    `json:"is_default"`
	IsActive  bool    `json:"is_active"`
}

// Register checks the credential live against the delivery provider before
// persisting anything; a rejected credential stores nothing. Registering a new
// default bot unsets every previous default atomically.
func (s *BotService) Register(req *RegisterBotRequest) (*model.DeliveryBot, error) {
	name := strings.TrimSpace(req.Name)
	token := strings.TrimSpace(req.Token)
	if name == "" || token == "" {
		return nil, &apperrors.ValidationError{Message: "bot name and token are required"}
	}

	if _, err := s.botRepo.GetByToken(token); err == nil {
		return nil, &apperrors.ConflictError{Message: "a bot with this token is already registered"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	providerUsername, err := s.validator.Validate(token)
	if err != nil {
		return nil, err
	}

	username := req.Username
	if username == nil && providerUsername != "" {
		username = &providerUsername
	}

	bot := &model.DeliveryBot{
		Name:      name,
		Token:     token,
		Username:  username,
		IsDefault: req.IsDefault,
		IsActive:  req.IsActive,
	}
	if err := s.botRepo.Create(bot); err != nil {
		return nil, err
	}
	return bot, nil
}

// GetByID fetches a bot, mapping missing rows to NotFound
func (s *BotService) GetByID(id uint) (*model.DeliveryBot, error) {
	bot, err := s.botRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Message: fmt.Sprintf("telegram bot with ID %d not found", id)}
		}
		return nil, err
	}
	return bot, nil
}

// List returns all registered bots
func (s *BotService) List() ([]model.DeliveryBot, error) {
	return s.botRepo.List()
}

// Assign maps a platform to a bot. A platform already mapped to any bot yields
// Conflict; remapping requires an explicit unassign first.
func (s *BotService) Assign(platform model.Platform, botID uint) (*model.PlatformAssignment, error) {
	if !platform.IsValid() {
		return nil, &apperrors.ValidationError{Message: fmt.Sprintf("unknown platform: %s", platform)}
	}

	if _, err := s.GetByID(botID); err != nil {
		return nil, err
	}

	existing, err := s.assignmentRepo.GetByPlatform(platform)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, &apperrors.ConflictError{
			Message: fmt.Sprintf("platform %s is already assigned to bot %d", platform, existing.BotID),
		}
	}

	assignment := &model.PlatformAssignment{BotID: botID, Platform: platform}
	if err := s.assignmentRepo.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Unassign removes a platform mapping, reporting whether a row was removed
func (s *BotService) Unassign(platform model.Platform, botID uint) (bool, error) {
	if !platform.IsValid() {
		return false, &apperrors.ValidationError{Message: fmt.Sprintf("unknown platform: %s", platform)}
	}
	return s.assignmentRepo.Delete(platform, botID)
}

// Resolve returns the bot id responsible for a platform: the explicit
// assignment when one exists, else the active default bot, else nil. Callers
// must treat nil as a fatal dispatch condition, never skip it silently.
func (s *BotService) Resolve(platform model.Platform) (*uint, error) {
	assignment, err := s.assignmentRepo.GetByPlatform(platform)
	if err == nil {
		return &assignment.BotID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaultBot, err := s.botRepo.GetActiveDefault()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &defaultBot.ID, nil
}

// Assignments returns the full routing table
func (s *BotService) Assignments() ([]model.PlatformAssignment, error) {
	return s.assignmentRepo.List()
}
