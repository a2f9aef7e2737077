package controllers

import (
	"net/http"
	"time"

	"faculty-activity-api/config"
	"faculty-activity-api/models"

	"github.com/gin-gonic/gin"
)

type courseRequest struct {
	AcademicYear        string   `json:"academic_year" binding:"required"`
	Term                string   `json:"term" binding:"required"`
	CourseNum           string   `json:"course_num" binding:"required"`
	Section             string   `json:"section" binding:"required"`
	CourseDesc          string   `json:"course_desc" binding:"required"`
	CourseType          string   `json:"course_type" binding:"required"`
	PercentContribution float64  `json:"percent_contribution" binding:"required,gt=0,lte=100"`
	LoadCreditUnits     float64  `json:"load_credit_units" binding:"required,gt=0"`
	NoOfRespondents     int      `json:"no_of_respondents"`
	SETStudent          *float64 `json:"set_student"`
	SETCourse           *float64 `json:"set_course"`
	SETTeaching         *float64 `json:"set_teaching"`
	TeachingPoints      *float64 `json:"teaching_points"`
}

// CreateCourse handles POST /courses.
func CreateCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := &models.Course{
		AcademicYear:        req.AcademicYear,
		Term:                req.Term,
		CourseNum:           req.CourseNum,
		Section:             req.Section,
		CourseDesc:          req.CourseDesc,
		CourseType:          req.CourseType,
		PercentContribution: req.PercentContribution,
		LoadCreditUnits:     req.LoadCreditUnits,
		NoOfRespondents:     req.NoOfRespondents,
		SETStudent:          req.SETStudent,
		SETCourse:           req.SETCourse,
		SETTeaching:         req.SETTeaching,
		TeachingPoints:      req.TeachingPoints,
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
		"message":    "Course submitted for approval",
		"submission": record,
	})
}

// GetMyCourses lists the caller's own teaching submissions.
func GetMyCourses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var records []models.Course
	if err := config.DB.
		Where("user_id = ? AND delete_at IS NULL", userID).
		Order("create_at DESC, course_id ASC").
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "submissions": records, "total": len(records)})
}

func GetCourse(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	submissionDetail(c, models.TypeCourse, id)
}

func DeleteCourse(c *gin.Context) {
	deleteOwnSubmission(c, models.TypeCourse)
}
