package controllers

import (
	"net/http"
	"time"

	"faculty-activity-api/config"
	"faculty-activity-api/models"

	"github.com/gin-gonic/gin"
)

type researchActivityRequest struct {
	Title           string  `json:"title" binding:"required"`
	Institute       string  `json:"institute" binding:"required"`
	Authors         string  `json:"authors" binding:"required"`
	PublicationType string  `json:"publication_type" binding:"required"`
	Journal         *string `json:"journal"`
	DOI             *string `json:"doi"`
	CitedAs         *string `json:"cited_as"`
	DatePublished   string  `json:"date_published"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
}

// CreateResearchActivity handles POST /research-activities. The approval
// chain is frozen from the submitter's current org at this point.
func CreateResearchActivity(c *gin.Context) {
	var req researchActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	datePublished, err := parseDate(req.DatePublished)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_published, expected YYYY-MM-DD"})
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

	record := &models.ResearchActivity{
		Title:           req.Title,
		Institute:       req.Institute,
		Authors:         req.Authors,
		PublicationType: req.PublicationType,
		Journal:         req.Journal,
		DOI:             req.DOI,
		CitedAs:         req.CitedAs,
		DatePublished:   datePublished,
		StartDate:       startDate,
		EndDate:         endDate,
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
		"message":    "Research activity submitted for approval",
		"submission": record,
	})
}

// GetMyResearchActivities lists the caller's own research activities.
func GetMyResearchActivities(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var records []models.ResearchActivity
	if err := config.DB.
		Where("user_id = ? AND delete_at IS NULL", userID).
		Order("create_at DESC, research_id ASC").
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch research activities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "submissions": records, "total": len(records)})
}

// GetResearchActivity returns one research activity for its owner, an
// admin, or the approver it is waiting on.
func GetResearchActivity(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	submissionDetail(c, models.TypeResearchActivity, id)
}

// DeleteResearchActivity soft-deletes a caller-owned pending submission.
func DeleteResearchActivity(c *gin.Context) {
	deleteOwnSubmission(c, models.TypeResearchActivity)
}
