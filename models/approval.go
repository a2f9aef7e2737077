package models

import (
	"encoding/json"
	"time"
)

// Submission statuses stored in the status column of every activity table.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Approver roles referenced by approval chain steps.
const (
	RoleDepartmentHead = "department_head"
	RoleDean           = "dean"
	RoleAdmin          = "admin"
)

// Decision values recorded in approval_decisions.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Record type discriminators shared by the approval tables and endpoints.
const (
	TypeResearchActivity  = "research_activity"
	TypeCourse            = "course"
	TypeAuthorship        = "authorship"
	TypeExtensionActivity = "extension"
)

// ChainStep is one required approver in a submission's approval chain.
// Department is set for department_head steps, College for dean steps;
// the admin step carries neither.
type ChainStep struct {
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	College    string `json:"college,omitempty"`
}

// EncodeChain serializes a chain for the approval_chain column.
func EncodeChain(steps []ChainStep) (string, error) {
	raw, err := json.Marshal(steps)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeChain parses the approval_chain column back into steps.
func DecodeChain(raw string) ([]ChainStep, error) {
	if raw == "" {
		return nil, nil
	}
	var steps []ChainStep
	if err := json.Unmarshal([]byte(raw), &steps); err != nil {
		return nil, err
	}
	return steps, nil
}

// ApprovalEnvelope is the shared approval state embedded in every activity
// table. College and Department are the submitter's org snapshot taken at
// creation; the chain is computed once from that snapshot and never rebuilt.
type ApprovalEnvelope struct {
	College       string `gorm:"column:college" json:"college"`
	Department    string `gorm:"column:department" json:"department"`
	Status        string `gorm:"column:status" json:"status"`
	ApprovalChain string `gorm:"column:approval_chain" json:"approval_chain"`
	ChainPosition *int   `gorm:"column:chain_position" json:"chain_position,omitempty"`
}

// ApprovalDecision is one append-only history entry. Replaying a record's
// decisions in created_at order reconstructs its status and chain position.
type ApprovalDecision struct {
	DecisionID int       `gorm:"primaryKey;column:decision_id" json:"decision_id"`
	RecordType string    `gorm:"column:record_type" json:"record_type"`
	RecordID   int       `gorm:"column:record_id" json:"record_id"`
	ActorID    int       `gorm:"column:actor_id" json:"actor_id"`
	ActorRole  string    `gorm:"column:actor_role" json:"actor_role"`
	Decision   string    `gorm:"column:decision" json:"decision"`
	Comments   *string   `gorm:"column:comments" json:"comments,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`

	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (ApprovalDecision) TableName() string {
	return "approval_decisions"
}

// ApprovalRecord is implemented by the four activity models so the
// transition engine and view projector stay type-agnostic.
type ApprovalRecord interface {
	RecordID() int
	RecordType() string
	SubmitterID() int
	Submitter() *User
	DisplayTitle() string
	SubmittedAt() time.Time
	Envelope() *ApprovalEnvelope
}
