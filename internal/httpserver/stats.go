package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linaoptic-api/internal/stats"
)

func statsHandler(svc *stats.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := svc.Summary(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch stats"})
			return
		}
		if summary.MonthlySales == nil {
			summary.MonthlySales = []stats.MonthlySales{}
		}
		c.JSON(http.StatusOK, summary)
	}
}
