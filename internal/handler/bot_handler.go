package handler

import (
	"net/http"

	"github.com/appdotbuilder/tele-vid-downloader/internal/model"
	"github.com/appdotbuilder/tele-vid-downloader/internal/service"

	"github.com/gin-gonic/gin"
)

// BotHandler exposes delivery-bot directory and routing operations
type BotHandler struct {
	botService *service.BotService
}

// NewBotHandler creates a bot handler
func NewBotHandler(botService *service.BotService) *BotHandler {
	return &BotHandler{botService: botService}
}

// Register validates and stores a new delivery bot
func (h *BotHandler) Register(c *gin.Context) {
	var req service.RegisterBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bot, err := h.botService.Register(&req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bot)
}

// List returns all registered bots
func (h *BotHandler) List(c *gin.Context) {
	bots, err := h.botService.List()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bots})
}

// Assign maps a platform to a bot
func (h *BotHandler) Assign(c *gin.Context) {
	botID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bot id"})
		return
	}

	var req struct {
		Platform model.Platform `json:"platform" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.botService.Assign(req.Platform, botID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

// Unassign removes a platform mapping
func (h *BotHandler) Unassign(c *gin.Context) {
	botID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bot id"})
		return
	}

	removed, err := h.botService.Unassign(model.Platform(c.Param("platform")), botID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// Assignments returns the full platform routing table
func (h *BotHandler) Assignments(c *gin.Context) {
	assignments, err := h.botService.Assignments()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": assignments})
}
