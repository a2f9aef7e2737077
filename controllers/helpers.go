package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"faculty-activity-api/config"
	"faculty-activity-api/models"
	"faculty-activity-api/services"

	"github.com/gin-gonic/gin"
)

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (int, bool) {
	value, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return 0, false
	}
	userID, ok := value.(int)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return 0, false
	}
	return userID, true
}

// recordParams parses and validates the :type/:id route parameters.
func recordParams(c *gin.Context) (string, int, bool) {
	recordType := c.Param("type")
	if _, err := services.NewRecord(recordType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission type"})
		return "", 0, false
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return "", 0, false
	}
	return recordType, id, true
}

// idParam parses the :id route parameter.
func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return 0, false
	}
	return id, true
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// canViewRecord reports whether the viewer may read a record: its owner, an
// admin, or the approver the record is currently waiting on.
func canViewRecord(record models.ApprovalRecord, viewer *services.OrgRoles) bool {
	if viewer.IsAdmin || record.SubmitterID() == viewer.UserID {
		return true
	}
	env := record.Envelope()
	if env.Status != models.StatusPending {
		return false
	}
	chain, err := models.DecodeChain(env.ApprovalChain)
	if err != nil {
		return false
	}
	step, err := services.CurrentStep(chain, env.ChainPosition)
	if err != nil {
		return false
	}
	return services.StepSatisfiedBy(step, viewer)
}

// parseDate accepts a yyyy-mm-dd form value, returning nil for empty input.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// createSubmission freezes the submitter's org, computes the approval
// chain, stamps the shared envelope and inserts the record.
func createSubmission(c *gin.Context, record models.ApprovalRecord, stamp func(userID int, env models.ApprovalEnvelope, now time.Time)) bool {
	userID, ok := currentUserID(c)
	if !ok {
		return false
	}

	roles, err := services.ResolveRoles(config.DB, userID)
	if err != nil {
		respondServiceError(c, err)
		return false
	}

	envelope, err := services.NewEnvelope(roles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute approval chain"})
		return false
	}

	stamp(userID, envelope, time.Now())

	if err := config.DB.Create(record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return false
	}
	return true
}

// fetchViewableRecord loads a record and enforces read access for the caller.
func fetchViewableRecord(c *gin.Context, recordType string, recordID int) (models.ApprovalRecord, *services.OrgRoles, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, nil, false
	}
	viewer, err := services.ResolveRoles(config.DB, userID)
	if err != nil {
		respondServiceError(c, err)
		return nil, nil, false
	}
	record, err := services.FetchRecord(config.DB, recordType, recordID)
	if err != nil {
		respondServiceError(c, err)
		return nil, nil, false
	}
	if !canViewRecord(record, viewer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot view this submission"})
		return nil, nil, false
	}
	return record, viewer, true
}

// deleteOwnSubmission soft-deletes a caller-owned, still-pending record.
func deleteOwnSubmission(c *gin.Context, recordType string) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	record, err := services.FetchRecord(config.DB, recordType, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if record.SubmitterID() != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own submissions"})
		return
	}
	if record.Envelope().Status != models.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Decided submissions cannot be deleted"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(record).Updates(map[string]interface{}{
		"delete_at": now,
		"update_at": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Submission deleted"})
}
