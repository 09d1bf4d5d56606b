package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shahafle/costs-manager/clients"
	"github.com/shahafle/costs-manager/logger"
	"github.com/shahafle/costs-manager/models"
	"github.com/shahafle/costs-manager/mongodb"
	"github.com/shahafle/costs-manager/report"
)

// CostStore is the slice of the costs collection the handlers need.
type CostStore interface {
	Insert(ctx context.Context, cost *models.Cost) error
	Find(ctx context.Context, filter mongodb.CostFilter) ([]models.Cost, error)
	FindByMonth(ctx context.Context, userID, year, month int) ([]models.Cost, error)
	TotalByUser(ctx context.Context, userID int) (float64, error)
}

// ReportCache stores materialized reports for past periods. Lookup
// returns nil on a miss; Upsert replaces by (userid, year, month).
type ReportCache interface {
	Lookup(ctx context.Context, userID, year, month int) (*models.Report, error)
	Upsert(ctx context.Context, report *models.Report) error
}

// UserDirectory is the sibling users service. GetUser distinguishes an
// explicit not-found (clients.ErrUserNotFound) from unreachability;
// FetchUsers never fails, it just omits keys it could not resolve.
type UserDirectory interface {
	GetUser(ctx context.Context, id int) (*models.UserView, error)
	FetchUsers(ctx context.Context, ids []int) map[int]*models.UserView
}

type CostHandler struct {
	costs   CostStore
	reports ReportCache
	users   UserDirectory
	now     func() time.Time
}

func NewCostHandler(costs CostStore, reports ReportCache, users UserDirectory) *CostHandler {
	return &CostHandler{
		costs:   costs,
		reports: reports,
		users:   users,
		now:     time.Now,
	}
}

type CreateCostRequest struct {
	Description string   `json:"description" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	UserID      *int     `json:"userid"`
	Sum         *float64 `json:"sum" binding:"required"`
	CreatedAt   string   `json:"createdAt"`
}

// CreateCost handles POST /api/add. The referenced user is verified
// against the users service: an explicit 404 rejects the cost, but an
// unreachable verifier lets creation proceed.
func (h *CostHandler) CreateCost(c *gin.Context) {
	var req CreateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == nil {
		respondError(c, http.StatusBadRequest, "Invalid userid. Must be a number")
		return
	}
	if err := report.ValidateSum(*req.Sum); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.users.GetUser(c.Request.Context(), *req.UserID); err != nil {
		if errors.Is(err, clients.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Get().Warn("could not verify user in users-service",
			zap.Int("user_id", *req.UserID),
			zap.Error(err))
	}

	now := h.now()
	createdAt := now
	if req.CreatedAt != "" {
		parsed, err := report.ParseCreatedAt(req.CreatedAt, now)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		createdAt = parsed
	}

	cost := &models.Cost{
		Description: req.Description,
		Category:    req.Category,
		UserID:      *req.UserID,
		Sum:         *req.Sum,
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	}
	if err := h.costs.Insert(c.Request.Context(), cost); err != nil {
		logger.Get().Error("error creating cost", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Error creating cost")
		return
	}

	logger.Get().Info("created new cost",
		zap.Int("user_id", cost.UserID),
		zap.String("category", cost.Category))
	c.JSON(http.StatusCreated, cost)
}

// ListCosts handles GET /api/costs. Each cost is enriched with user
// display info when the users service can supply it; a degraded batch
// still returns the full cost list.
func (h *CostHandler) ListCosts(c *gin.Context) {
	filter := mongodb.CostFilter{Category: c.Query("category")}
	if raw := c.Query("userid"); raw != "" {
		userID, err := report.ParseQueryUserID(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		filter.UserID = &userID
	}

	costs, err := h.costs.Find(c.Request.Context(), filter)
	if err != nil {
		logger.Get().Error("error getting costs", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Error getting costs")
		return
	}

	userMap := map[int]*models.UserView{}
	if len(costs) > 0 {
		seen := map[int]bool{}
		ids := []int{}
		for _, cost := range costs {
			if !seen[cost.UserID] {
				seen[cost.UserID] = true
				ids = append(ids, cost.UserID)
			}
		}
		userMap = h.users.FetchUsers(c.Request.Context(), ids)
	}

	enriched := make([]models.CostWithUser, 0, len(costs))
	for _, cost := range costs {
		enriched = append(enriched, models.CostWithUser{
			Cost: cost,
			User: userMap[cost.UserID],
		})
	}

	logger.Get().Info("retrieved costs", zap.Int("count", len(costs)))
	c.JSON(http.StatusOK, enriched)
}

// GetTotal handles GET /api/costs/total/:userId.
func (h *CostHandler) GetTotal(c *gin.Context) {
	userID, err := report.ParseUserID(c.Param("userId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	total, err := h.costs.TotalByUser(c.Request.Context(), userID)
	if err != nil {
		logger.Get().Error("error getting total costs",
			zap.Int("user_id", userID),
			zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Error getting total costs")
		return
	}

	logger.Get().Info("retrieved total costs",
		zap.Int("user_id", userID),
		zap.Float64("total", total))
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// GetMonthlyReport handles GET /api/report. Past periods are served
// from the report cache when present and written back to it after
// computation; a failed write-back is logged and the fresh report is
// returned anyway. Current and future periods are always recomputed.
func (h *CostHandler) GetMonthlyReport(c *gin.Context) {
	params, err := report.ParseParams(c.Query("id"), c.Query("year"), c.Query("month"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	isPast := report.IsPastPeriod(params.Year, params.Month, h.now())

	if isPast {
		cached, err := h.reports.Lookup(c.Request.Context(), params.UserID, params.Year, params.Month)
		if err != nil {
			logger.Get().Error("error looking up cached report", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Error getting monthly report")
			return
		}
		if cached != nil {
			logger.Get().Info("retrieved cached monthly report",
				zap.Int("user_id", params.UserID),
				zap.Int("year", params.Year),
				zap.Int("month", params.Month))
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	costs, err := h.costs.FindByMonth(c.Request.Context(), params.UserID, params.Year, params.Month)
	if err != nil {
		logger.Get().Error("error getting monthly costs", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Error getting monthly report")
		return
	}

	monthly := &models.Report{
		UserID: params.UserID,
		Year:   params.Year,
		Month:  params.Month,
		Costs:  report.Aggregate(costs),
	}

	if isPast {
		if err := h.reports.Upsert(c.Request.Context(), monthly); err != nil {
			logger.Get().Warn("failed to cache report",
				zap.Int("user_id", params.UserID),
				zap.Int("year", params.Year),
				zap.Int("month", params.Month),
				zap.Error(err))
		}
	}

	logger.Get().Info("generated monthly report",
		zap.Int("user_id", params.UserID),
		zap.Int("year", params.Year),
		zap.Int("month", params.Month))
	c.JSON(http.StatusOK, monthly)
}
