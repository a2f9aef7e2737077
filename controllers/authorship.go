package controllers

import (
	"net/http"
	"time"

	"faculty-activity-api/config"
	"faculty-activity-api/models"

	"github.com/gin-gonic/gin"
)

type authorshipRequest struct {
	Title            string  `json:"title" binding:"required"`
	Authors          string  `json:"authors" binding:"required"`
	Date             string  `json:"date"`
	UPCourse         *string `json:"up_course"`
	RecommendingUnit string  `json:"recommending_unit" binding:"required"`
	Publisher        string  `json:"publisher" binding:"required"`
	AuthorshipType   string  `json:"authorship_type" binding:"required"`
	NumberOfAuthors  int     `json:"number_of_authors" binding:"required,gt=0"`
}

// CreateAuthorship handles POST /authorships.
func CreateAuthorship(c *gin.Context) {
	var req authorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	record := &models.Authorship{
		Title:            req.Title,
		Authors:          req.Authors,
		Date:             date,
		UPCourse:         req.UPCourse,
		RecommendingUnit: req.RecommendingUnit,
		Publisher:        req.Publisher,
		AuthorshipType:   req.AuthorshipType,
		NumberOfAuthors:  req.NumberOfAuthors,
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
		"message":    "Authorship submitted for approval",
		"submission": record,
	})
}

// GetMyAuthorships lists the caller's own authorship submissions.
func GetMyAuthorships(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var records []models.Authorship
	if err := config.DB.
		Where("user_id = ? AND delete_at IS NULL", userID).
		Order("create_at DESC, authorship_id ASC").
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch authorships"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "submissions": records, "total": len(records)})
}

func GetAuthorship(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	submissionDetail(c, models.TypeAuthorship, id)
}

func DeleteAuthorship(c *gin.Context) {
	deleteOwnSubmission(c, models.TypeAuthorship)
}
