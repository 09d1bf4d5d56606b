package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shahafle/costs-manager/logger"
	"github.com/shahafle/costs-manager/models"
	"github.com/shahafle/costs-manager/report"
)

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
}

// CostTotaler is the sibling costs service; callers fall back to a
// zero total when it is unreachable.
type CostTotaler interface {
	GetTotal(ctx context.Context, userID int) (float64, error)
}

type UserHandler struct {
	users UserStore
	costs CostTotaler
	now   func() time.Time
}

func NewUserHandler(users UserStore, costs CostTotaler) *UserHandler {
	return &UserHandler{
		users: users,
		costs: costs,
		now:   time.Now,
	}
}

type CreateUserRequest struct {
	ID        int       `json:"id" binding:"required"`
	FirstName string    `json:"first_name" binding:"required"`
	LastName  string    `json:"last_name" binding:"required"`
	Birthday  time.Time `json:"birthday" binding:"required"`
}

// UserWithTotal is the detail view: stored fields plus the running
// cost total fetched from the costs service.
type UserWithTotal struct {
	ID        int     `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Total     float64 `json:"total"`
}

// CreateUser handles POST /api/add.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	now := h.now()
	user := &models.User{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthday:  req.Birthday,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.users.Insert(c.Request.Context(), user); err != nil {
		logger.Get().Error("error creating user", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	logger.Get().Info("created new user", zap.Int("user_id", user.ID))
	c.JSON(http.StatusCreated, user.Rendered())
}

// ListUsers handles GET /api/users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.FindAll(c.Request.Context())
	if err != nil {
		logger.Get().Error("error getting users", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Error getting users")
		return
	}

	rendered := make([]models.RenderedUser, 0, len(users))
	for _, user := range users {
		rendered = append(rendered, user.Rendered())
	}

	logger.Get().Info("retrieved users", zap.Int("count", len(users)))
	c.JSON(http.StatusOK, rendered)
}

// GetUser handles GET /api/users/:id, attaching the user's running
// cost total. An unreachable costs service degrades the total to zero
// rather than failing the request.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := report.ParseUserID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		logger.Get().Error("error getting user",
			zap.Int("user_id", userID),
			zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Error getting user")
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	total, err := h.costs.GetTotal(c.Request.Context(), userID)
	if err != nil {
		logger.Get().Warn("could not fetch total costs from costs-service",
			zap.Int("user_id", userID),
			zap.Error(err))
		total = 0
	}

	logger.Get().Info("retrieved user",
		zap.Int("user_id", user.ID),
		zap.Float64("total", total))
	c.JSON(http.StatusOK, UserWithTotal{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Total:     total,
	})
}
