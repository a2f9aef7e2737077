package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"faculty-activity-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Notifier is called after a decision commits. Implementations must not
// fail the decision; delivery is best effort.
type Notifier func(record models.ApprovalRecord, decision models.ApprovalDecision, nextRole *string)

// ApprovalService applies approve/reject decisions to pending submissions.
// Every decision is transactional: the row is locked for the duration and
// the status update is guarded by the observed chain position, so two
// concurrent decisions on the same record cannot both succeed.
type ApprovalService struct {
	db     *gorm.DB
	now    func() time.Time
	notify Notifier
}

func NewApprovalService(db *gorm.DB) *ApprovalService {
	return &ApprovalService{db: db, now: time.Now}
}

// WithNotifier sets the post-commit notification hook.
func (s *ApprovalService) WithNotifier(notify Notifier) *ApprovalService {
	s.notify = notify
	return s
}

// Decide applies one approve/reject decision by actorID to the record
// identified by recordType/recordID and returns the updated record.
//
// Preconditions: the record exists and is pending, and the actor either
// satisfies the current chain step or is an admin. Admin decisions are
// terminal at any position. Reject requires comments and is terminal at
// any position.
func (s *ApprovalService) Decide(recordType string, recordID, actorID int, decision, comments string) (models.ApprovalRecord, error) {
	decision = strings.ToLower(strings.TrimSpace(decision))
	if decision != models.DecisionApprove && decision != models.DecisionReject {
		return nil, fmt.Errorf("decision must be 'approve' or 'reject': %w", ErrValidation)
	}
	comments = strings.TrimSpace(comments)
	if decision == models.DecisionReject && comments == "" {
		return nil, fmt.Errorf("rejection comments are required: %w", ErrValidation)
	}
	if _, err := NewRecord(recordType); err != nil {
		return nil, err
	}

	actor, err := ResolveRoles(s.db, actorID)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	record, err := lockRecord(tx, recordType, recordID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	env := record.Envelope()
	if env.Status != models.StatusPending || env.ChainPosition == nil {
		tx.Rollback()
		return nil, fmt.Errorf("%s %d is %s: %w", recordType, recordID, env.Status, ErrConflict)
	}

	chain, err := models.DecodeChain(env.ApprovalChain)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("corrupt approval chain on %s %d: %w", recordType, recordID, err)
	}
	step, err := CurrentStep(chain, env.ChainPosition)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("corrupt chain position on %s %d: %w", recordType, recordID, err)
	}

	if !actor.IsAdmin && !StepSatisfiedBy(step, actor) {
		tx.Rollback()
		return nil, fmt.Errorf("user %d cannot act on step %s: %w", actorID, step.Role, ErrForbidden)
	}

	position := *env.ChainPosition
	newStatus, newPosition := evaluateDecision(chain, position, actor.IsAdmin, decision)

	now := s.now()
	result := tx.Model(record).
		Omit(clause.Associations).
		Where("status = ? AND chain_position = ?", models.StatusPending, position).
		Updates(map[string]interface{}{
			"status":         newStatus,
			"chain_position": newPosition,
			"update_at":      now,
		})
	if result.Error != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Lost the race to another decision between read and write.
		tx.Rollback()
		return nil, fmt.Errorf("%s %d was decided concurrently: %w", recordType, recordID, ErrConflict)
	}

	actorRole := step.Role
	if actor.IsAdmin {
		actorRole = models.RoleAdmin
	}
	entry := models.ApprovalDecision{
		RecordType: recordType,
		RecordID:   recordID,
		ActorID:    actorID,
		ActorRole:  actorRole,
		Decision:   decision,
		CreatedAt:  now,
	}
	if comments != "" {
		entry.Comments = &comments
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit decision: %w", err)
	}

	env.Status = newStatus
	env.ChainPosition = newPosition

	if s.notify != nil {
		var nextRole *string
		if newStatus == models.StatusPending && newPosition != nil && *newPosition < len(chain) {
			role := chain[*newPosition].Role
			nextRole = &role
		}
		s.notify(record, entry, nextRole)
	}

	return record, nil
}

// Decisions returns a record's decision history in the order it was made.
func (s *ApprovalService) Decisions(recordType string, recordID int) ([]models.ApprovalDecision, error) {
	var entries []models.ApprovalDecision
	err := s.db.Preload("Actor").
		Where("record_type = ? AND record_id = ?", recordType, recordID).
		Order("created_at ASC, decision_id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load decision history: %w", err)
	}
	return entries, nil
}

// evaluateDecision computes the resulting status and chain position for a
// decision at the given position. Reject is terminal anywhere; an admin
// decision is terminal anywhere; an approve on the last step is terminal.
func evaluateDecision(chain []models.ChainStep, position int, actorIsAdmin bool, decision string) (string, *int) {
	if decision == models.DecisionReject {
		return models.StatusRejected, nil
	}
	if actorIsAdmin || position+1 >= len(chain) {
		return models.StatusApproved, nil
	}
	next := position + 1
	return models.StatusPending, &next
}

// ReplayDecisions reconstructs a record's status and chain position from
// its append-only history. The envelope stored on the row must always
// equal the replay result.
func ReplayDecisions(chain []models.ChainStep, entries []models.ApprovalDecision) (string, *int) {
	position := 0
	for _, entry := range entries {
		status, next := evaluateDecision(chain, position, entry.ActorRole == models.RoleAdmin, entry.Decision)
		if status != models.StatusPending {
			return status, nil
		}
		position = *next
	}
	return models.StatusPending, &position
}

// NewRecord returns an empty model for a record type discriminator.
func NewRecord(recordType string) (models.ApprovalRecord, error) {
	switch recordType {
	case models.TypeResearchActivity:
		return &models.ResearchActivity{}, nil
	case models.TypeCourse:
		return &models.Course{}, nil
	case models.TypeAuthorship:
		return &models.Authorship{}, nil
	case models.TypeExtensionActivity:
		return &models.ExtensionActivity{}, nil
	}
	return nil, fmt.Errorf("unknown record type %q: %w", recordType, ErrValidation)
}

// FetchRecord loads one record of the given type with its submitter.
func FetchRecord(db *gorm.DB, recordType string, recordID int) (models.ApprovalRecord, error) {
	record, err := NewRecord(recordType)
	if err != nil {
		return nil, err
	}
	err = db.Preload("User").Where("delete_at IS NULL").First(record, recordID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s %d: %w", recordType, recordID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load %s %d: %w", recordType, recordID, err)
	}
	return record, nil
}

func lockRecord(tx *gorm.DB, recordType string, recordID int) (models.ApprovalRecord, error) {
	record, err := NewRecord(recordType)
	if err != nil {
		return nil, err
	}
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("User").
		Where("delete_at IS NULL").
		First(record, recordID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s %d: %w", recordType, recordID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load %s %d: %w", recordType, recordID, err)
	}
	return record, nil
}

// VerifyHistory checks one record's stored envelope against a replay of its
// decisions and logs any divergence. Read-side safety net only.
func (s *ApprovalService) VerifyHistory(record models.ApprovalRecord) bool {
	env := record.Envelope()
	chain, err := models.DecodeChain(env.ApprovalChain)
	if err != nil {
		log.Printf("approval: %s %d has corrupt chain: %v", record.RecordType(), record.RecordID(), err)
		return false
	}
	entries, err := s.Decisions(record.RecordType(), record.RecordID())
	if err != nil {
		log.Printf("approval: %v", err)
		return false
	}
	status, position := ReplayDecisions(chain, entries)
	if status != env.Status {
		log.Printf("approval: %s %d status %s does not match replay %s",
			record.RecordType(), record.RecordID(), env.Status, status)
		return false
	}
	if (position == nil) != (env.ChainPosition == nil) ||
		(position != nil && env.ChainPosition != nil && *position != *env.ChainPosition) {
		log.Printf("approval: %s %d chain position does not match replay",
			record.RecordType(), record.RecordID())
		return false
	}
	return true
}
