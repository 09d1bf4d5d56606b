package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse is the envelope every failure returns, regardless of
// status code. ID is an opaque token identifying the occurrence.
type ErrorResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{
		ID:      uuid.NewString(),
		Message: message,
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, NewErrorResponse(message))
}

// NotFound is the fallback for unmatched routes, wired via NoRoute.
func NotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, fmt.Sprintf("Route %s not found", c.Request.URL.Path))
}
