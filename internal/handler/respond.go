package handler

import (
	"net/http"

	"github.com/appdotbuilder/tele-vid-downloader/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// writeError maps the error taxonomy onto HTTP status codes
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsValidation(err):
		status = http.StatusBadRequest
	case apperrors.IsNotFound(err):
		status = http.StatusNotFound
	case apperrors.IsConflict(err):
		status = http.StatusConflict
	case apperrors.IsResourceLimit(err):
		status = http.StatusRequestEntityTooLarge
	case apperrors.IsDependency(err):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
