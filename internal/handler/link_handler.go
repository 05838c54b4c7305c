package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/appdotbuilder/tele-vid-downloader/internal/model"
	"github.com/appdotbuilder/tele-vid-downloader/internal/repository"
	"github.com/appdotbuilder/tele-vid-downloader/internal/service"
	"github.com/appdotbuilder/tele-vid-downloader/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// LinkHandler exposes video link operations
type LinkHandler struct {
	linkService     *service.LinkService
	pipelineService *service.PipelineService
}

// NewLinkHandler creates a link handler
func NewLinkHandler(linkService *service.LinkService, pipelineService *service.PipelineService) *LinkHandler {
	return &LinkHandler{
		linkService:     linkService,
		pipelineService: pipelineService,
	}
}

// Create ingests a new video link
func (h *LinkHandler) Create(c *gin.Context) {
	var req service.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.linkService.Create(&req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// Get returns one video link
func (h *LinkHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid link id"})
		return
	}

	link, err := h.linkService.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// List returns a filtered page of video links
func (h *LinkHandler) List(c *gin.Context) {
	var filters repository.LinkFilters

	if raw := c.Query("platform"); raw != "" {
		platform := model.Platform(raw)
		filters.Platform = &platform
	}
	if raw := c.Query("status"); raw != "" {
		status := model.LinkStatus(raw)
		filters.Status = &status
	}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := parseID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		filters.UserID = &userID
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		filters.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
			return
		}
		filters.Offset = offset
	}
	filters.SortBy = c.Query("sort_by")
	filters.SortOrder = c.Query("sort_order")

	page, err := h.linkService.Query(filters)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Update applies an operator correction to a link. Only the fields present in
// the request body are touched; a field set to null is cleared explicitly.
func (h *LinkHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid link id"})
		return
	}

	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates, err := decodeLinkPatch(body)
	if err != nil {
		writeError(c, err)
		return
	}

	link, err := h.linkService.ApplyUpdate(id, updates)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// Process triggers the retrieval-dispatch pipeline for a link
func (h *LinkHandler) Process(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid link id"})
		return
	}

	link, err := h.pipelineService.Process(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// decodeLinkPatch converts raw JSON fields into typed column values, keeping
// the distinction between an omitted field and one explicitly set to null.
func decodeLinkPatch(body map[string]json.RawMessage) (map[string]interface{}, error) {
	updates := make(map[string]interface{}, len(body))

	for column, raw := range body {
		if string(raw) == "null" {
			updates[column] = nil
			continue
		}

		var value interface{}
		var err error
		switch column {
		case "status", "title", "thumbnail_url", "error_message",
			"telegram_file_id", "telegram_message_link":
			var s string
			err = json.Unmarshal(raw, &s)
			value = s
		case "file_size":
			var n int64
			err = json.Unmarshal(raw, &n)
			value = n
		case "duration":
			var n int
			err = json.Unmarshal(raw, &n)
			value = n
		case "telegram_bot_id":
			var n uint
			err = json.Unmarshal(raw, &n)
			value = n
		case "downloaded_at", "uploaded_at":
			var t time.Time
			err = json.Unmarshal(raw, &t)
			value = t
		default:
			return nil, &apperrors.ValidationError{Message: "column \"" + column + "\" is not updatable"}
		}
		if err != nil {
			return nil, &apperrors.ValidationError{Message: "invalid value for field \"" + column + "\""}
		}
		updates[column] = value
	}

	return updates, nil
}

// parseID parses a positive integer path or query parameter
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
