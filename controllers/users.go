package controllers

import (
	"net/http"
	"strings"

	"faculty-activity-api/config"
	"faculty-activity-api/models"

	"github.com/gin-gonic/gin"
)

// GetUsers handles GET /admin/users: list users with their org and role
// facts, optionally filtered by department or college. Admin only.
func GetUsers(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")

	if department := strings.TrimSpace(c.Query("department")); department != "" {
		query = query.Where("department = ?", department)
	}
	if college := strings.TrimSpace(c.Query("college")); college != "" {
		query = query.Where("college = ?", college)
	}

	var users []models.User
	if err := query.Order("user_lname ASC, user_fname ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"total":   len(users),
	})
}
