package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/attendance/internal/services"
)

// abortWithServiceError maps service-layer conditions to HTTP statuses
// so every failure path resolves to a displayable message.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrStudentExists):
		c.IndentedJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrNoAttendanceData):
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyCourseCode),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidStatus):
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
