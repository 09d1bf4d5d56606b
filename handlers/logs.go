package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shahafle/costs-manager/logger"
	"github.com/shahafle/costs-manager/models"
	"github.com/shahafle/costs-manager/mongodb"
)

type LogReader interface {
	Find(ctx context.Context, filter mongodb.LogFilter) ([]models.LogEntry, error)
}

type LogHandler struct {
	logs LogReader
}

func NewLogHandler(logs LogReader) *LogHandler {
	return &LogHandler{logs: logs}
}

// GetLogs handles GET /api/logs with optional service, level, date
// window and limit filters.
func (h *LogHandler) GetLogs(c *gin.Context) {
	filter := mongodb.LogFilter{
		Service: c.Query("service"),
		Level:   c.Query("level"),
	}

	if raw := c.Query("startDate"); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid startDate. Must be a valid date")
			return
		}
		filter.Start = &start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid endDate. Must be a valid date")
			return
		}
		filter.End = &end
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit <= 0 {
			respondError(c, http.StatusBadRequest, "Invalid limit. Must be a positive number")
			return
		}
		filter.Limit = limit
	}

	entries, err := h.logs.Find(c.Request.Context(), filter)
	if err != nil {
		logger.Get().Error("error getting logs", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Error getting logs")
		return
	}

	logger.Get().Info("retrieved logs", zap.Int("count", len(entries)))
	c.JSON(http.StatusOK, entries)
}
