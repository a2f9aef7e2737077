package controllers

import (
	"net/http"
	"time"

	"faculty-activity-api/config"
	"faculty-activity-api/models"

	"github.com/gin-gonic/gin"
)

type extensionActivityRequest struct {
	Position        string  `json:"position" binding:"required"`
	Office          string  `json:"office" binding:"required"`
	StartDate       string  `json:"start_date" binding:"required"`
	EndDate         string  `json:"end_date"`
	ReferenceNumber *string `json:"reference_number"`
	ServiceDetails  string  `json:"service_details" binding:"required"`
}

// CreateExtensionActivity handles POST /extension-activities.
func CreateExtensionActivity(c *gin.Context) {
	var req extensionActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, expected YYYY-MM-DD"})
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, expected YYYY-MM-DD"})
		return
	}

	record := &models.ExtensionActivity{
		Position:        req.Position,
		Office:          req.Office,
		StartDate:       startDate,
		EndDate:         endDate,
		ReferenceNumber: req.ReferenceNumber,
		ServiceDetails:  req.ServiceDetails,
	}
	if !createSubmission(c, record, func(userID int, env models.ApprovalEnvelope, now time.Time) {
		record.UserID = userID
		record.ApprovalEnvelope = env
		record.CreateAt = now
		record.UpdateAt = now
	}) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Extension activity submitted for approval",
		"submission": record,
	})
}

// GetMyExtensionActivities lists the caller's own extension submissions.
func GetMyExtensionActivities(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var records []models.ExtensionActivity
	if err := config.DB.
		Where("user_id = ? AND delete_at IS NULL", userID).
		Order("create_at DESC, extension_id ASC").
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch extension activities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "submissions": records, "total": len(records)})
}

func GetExtensionActivity(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	submissionDetail(c, models.TypeExtensionActivity, id)
}

func DeleteExtensionActivity(c *gin.Context) {
	deleteOwnSubmission(c, models.TypeExtensionActivity)
}
