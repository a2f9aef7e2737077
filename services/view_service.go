package services

import (
	"fmt"
	"log"
	"sort"
	"time"

	"faculty-activity-api/models"

	"gorm.io/gorm"
)

// SubmissionSummary is the normalized shape every listing returns,
// regardless of the underlying activity type.
type SubmissionSummary struct {
	ID                  int       `json:"id"`
	Title               string    `json:"title"`
	Type                string    `json:"type"`
	SubmitterID         int       `json:"submitter_id"`
	SubmitterName       string    `json:"submitter_name"`
	DateSubmitted       time.Time `json:"date_submitted"`
	Status              string    `json:"status"`
	CurrentApproverRole *string   `json:"current_approver_role,omitempty"`
}

// ViewService merges the four activity tables into unified approval queues.
// Reads are best effort: a record whose chain cannot be decoded is logged
// and dropped from the view instead of failing the whole listing.
type ViewService struct {
	db *gorm.DB
}

func NewViewService(db *gorm.DB) *ViewService {
	return &ViewService{db: db}
}

// PendingForViewer lists every pending submission whose current chain step
// the viewer can satisfy. Admins see all pending submissions at any
// position; department heads and deans only see submissions frozen to
// their own department or college.
func (s *ViewService) PendingForViewer(viewer *OrgRoles) ([]SubmissionSummary, error) {
	records, err := s.collect(models.StatusPending, 0)
	if err != nil {
		return nil, err
	}

	summaries := make([]SubmissionSummary, 0, len(records))
	for _, record := range records {
		step, err := pendingStep(record)
		if err != nil {
			log.Printf("views: skipping %s %d: %v", record.RecordType(), record.RecordID(), err)
			continue
		}
		if !viewer.IsAdmin && !StepSatisfiedBy(step, viewer) {
			continue
		}
		summaries = append(summaries, Summarize(record))
	}
	sortSummaries(summaries)
	return summaries, nil
}

// MySubmissions lists the viewer's own submissions across all types and
// statuses. Pass a status to narrow to one bucket; approved and rejected
// views are intentionally scoped to the viewer's own records.
func (s *ViewService) MySubmissions(userID int, status string) ([]SubmissionSummary, error) {
	records, err := s.collect(status, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]SubmissionSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, Summarize(record))
	}
	sortSummaries(summaries)
	return summaries, nil
}

// StatusCounts returns per-type counts of the user's submissions keyed by
// status, for the summary dashboard.
func (s *ViewService) StatusCounts(userID int) (map[string]map[string]int, error) {
	records, err := s.collect("", userID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]map[string]int)
	for _, record := range records {
		byStatus, ok := counts[record.RecordType()]
		if !ok {
			byStatus = make(map[string]int)
			counts[record.RecordType()] = byStatus
		}
		byStatus[record.Envelope().Status]++
	}
	return counts, nil
}

// collect loads records across all four tables, optionally narrowed by
// status and submitter.
func (s *ViewService) collect(status string, userID int) ([]models.ApprovalRecord, error) {
	query := func() *gorm.DB {
		q := s.db.Preload("User").Where("delete_at IS NULL")
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if userID != 0 {
			q = q.Where("user_id = ?", userID)
		}
		return q
	}

	var out []models.ApprovalRecord

	var research []models.ResearchActivity
	if err := query().Find(&research).Error; err != nil {
		return nil, fmt.Errorf("failed to load research activities: %w", err)
	}
	for i := range research {
		out = append(out, &research[i])
	}

	var courses []models.Course
	if err := query().Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}
	for i := range courses {
		out = append(out, &courses[i])
	}

	var authorships []models.Authorship
	if err := query().Find(&authorships).Error; err != nil {
		return nil, fmt.Errorf("failed to load authorships: %w", err)
	}
	for i := range authorships {
		out = append(out, &authorships[i])
	}

	var extensions []models.ExtensionActivity
	if err := query().Find(&extensions).Error; err != nil {
		return nil, fmt.Errorf("failed to load extension activities: %w", err)
	}
	for i := range extensions {
		out = append(out, &extensions[i])
	}

	return out, nil
}

// Summarize reduces a record to the normalized listing shape.
func Summarize(record models.ApprovalRecord) SubmissionSummary {
	env := record.Envelope()
	summary := SubmissionSummary{
		ID:            record.RecordID(),
		Title:         record.DisplayTitle(),
		Type:          record.RecordType(),
		SubmitterID:   record.SubmitterID(),
		DateSubmitted: record.SubmittedAt(),
		Status:        env.Status,
	}
	if submitter := record.Submitter(); submitter != nil {
		summary.SubmitterName = submitter.FullName()
	}
	if env.Status == models.StatusPending {
		if step, err := pendingStep(record); err == nil {
			role := step.Role
			summary.CurrentApproverRole = &role
		}
	}
	return summary
}

func pendingStep(record models.ApprovalRecord) (models.ChainStep, error) {
	env := record.Envelope()
	chain, err := models.DecodeChain(env.ApprovalChain)
	if err != nil {
		return models.ChainStep{}, fmt.Errorf("corrupt approval chain: %w", err)
	}
	return CurrentStep(chain, env.ChainPosition)
}

// sortSummaries orders listings newest first; ties fall back to type and id
// so pagination stays deterministic.
func sortSummaries(summaries []SubmissionSummary) {
	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if !a.DateSubmitted.Equal(b.DateSubmitted) {
			return a.DateSubmitted.After(b.DateSubmitted)
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.ID < b.ID
	})
}
