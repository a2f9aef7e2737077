package controllers

import (
	"net/http"

	"faculty-activity-api/config"
	"faculty-activity-api/models"
	"faculty-activity-api/services"

	"github.com/gin-gonic/gin"
)

// GetSummary handles GET /summary: per-type counts of the caller's
// submissions grouped by status, for the records dashboard.
func GetSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	counts, err := services.NewViewService(config.DB).StatusCounts(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load summary"})
		return
	}

	totals := map[string]int{
		models.StatusPending:  0,
		models.StatusApproved: 0,
		models.StatusRejected: 0,
	}
	for _, byStatus := range counts {
		for status, n := range byStatus {
			totals[status] += n
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"by_type": counts,
		"totals":  totals,
	})
}
