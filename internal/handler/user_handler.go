package handler

import (
	"errors"
	"net/http"

	"github.com/appdotbuilder/tele-vid-downloader/internal/model"
	"github.com/appdotbuilder/tele-vid-downloader/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler exposes link-owner operations
type UserHandler struct {
	userRepo *repository.UserRepository
}

// NewUserHandler creates a user handler
func NewUserHandler() *UserHandler {
	return &UserHandler{userRepo: repository.NewUserRepository()}
}

// Create registers a link owner
func (h *UserHandler) Create(c *gin.Context) {
	var req struct {
		TelegramID string  `json:"telegram_id" binding:"required"`
		Username   *string `json:"username"`
		FirstName  *string `json:"first_name"`
		LastName   *string `json:"last_name"`
		IsAdmin    bool    `json:"is_admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &model.User{
		TelegramID: req.TelegramID,
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		IsAdmin:    req.IsAdmin,
	}
	if err := h.userRepo.Create(user); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "user with this telegram_id already exists"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetByTelegramID looks up a user by telegram id
func (h *UserHandler) GetByTelegramID(c *gin.Context) {
	user, err := h.userRepo.GetByTelegramID(c.Param("telegram_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}
