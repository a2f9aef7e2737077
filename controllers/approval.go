package controllers

import (
	"net/http"

	"faculty-activity-api/config"
	"faculty-activity-api/models"
	"faculty-activity-api/services"
	"faculty-activity-api/utils"

	"github.com/gin-gonic/gin"
)

type decisionRequest struct {
	Comments string `json:"comments"`
}

func approvalService() *services.ApprovalService {
	return services.NewApprovalService(config.DB).
		WithNotifier(services.DecisionNotifier(config.DB))
}

// ApproveSubmission handles POST /approval/:type/:id/approve.
func ApproveSubmission(c *gin.Context) {
	decide(c, models.DecisionApprove)
}

// RejectSubmission handles POST /approval/:type/:id/reject. Comments are
// mandatory for rejections; the submitter must be told why.
func RejectSubmission(c *gin.Context) {
	decide(c, models.DecisionReject)
}

func decide(c *gin.Context, decision string) {
	recordType, recordID, ok := recordParams(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req decisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	record, err := approvalService().Decide(recordType, recordID, userID, decision, utils.NormalizeComments(req.Comments))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Submission approved"
	if record.Envelope().Status == models.StatusPending {
		message = "Approval recorded; submission moved to the next approver"
	} else if record.Envelope().Status == models.StatusRejected {
		message = "Submission rejected"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    message,
		"submission": services.Summarize(record),
	})
}

// GetPendingApprovals handles GET /approval/pending: everything the caller
// is currently required to act on, across all four activity types.
func GetPendingApprovals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	viewer, err := services.ResolveRoles(config.DB, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	summaries, err := services.NewViewService(config.DB).PendingForViewer(viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pending approvals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": summaries,
		"total":       len(summaries),
	})
}

// GetMySubmissions handles GET /approval/my-submissions: the caller's own
// submissions with per-status buckets.
func GetMySubmissions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status := c.Query("status")
	switch status {
	case "", models.StatusPending, models.StatusApproved, models.StatusRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	summaries, err := services.NewViewService(config.DB).MySubmissions(userID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
		return
	}

	buckets := gin.H{
		models.StatusPending:  []services.SubmissionSummary{},
		models.StatusApproved: []services.SubmissionSummary{},
		models.StatusRejected: []services.SubmissionSummary{},
	}
	for _, summary := range summaries {
		buckets[summary.Status] = append(buckets[summary.Status].([]services.SubmissionSummary), summary)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": summaries,
		"buckets":     buckets,
		"total":       len(summaries),
	})
}

// GetSubmissionDetail handles GET /approval/:type/:id: the record, its
// chain and its decision history, for owners, admins and the pending
// approver. Callers hitting 409 on decide refresh through this.
func GetSubmissionDetail(c *gin.Context) {
	recordType, recordID, ok := recordParams(c)
	if !ok {
		return
	}
	submissionDetail(c, recordType, recordID)
}

func submissionDetail(c *gin.Context, recordType string, recordID int) {
	record, _, ok := fetchViewableRecord(c, recordType, recordID)
	if !ok {
		return
	}

	decisions, err := approvalService().Decisions(recordType, recordID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load decision history"})
		return
	}

	chain, err := models.DecodeChain(record.Envelope().ApprovalChain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Submission approval chain is corrupt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": record,
		"summary":    services.Summarize(record),
		"chain":      chain,
		"decisions":  decisions,
	})
}
