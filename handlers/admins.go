package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shahafle/costs-manager/logger"
)

type Developer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

var developers = []Developer{
	{FirstName: "Shahaf", LastName: "Levi"},
	{FirstName: "Eylon", LastName: "Edri"},
}

// GetDevelopers handles GET /api/about.
func GetDevelopers(c *gin.Context) {
	logger.Get().Info("retrieved developers", zap.Int("count", len(developers)))
	c.JSON(http.StatusOK, developers)
}
