package models

import (
	"fmt"
	"time"
)

// ExtensionActivity represents the extension_activities table
// (public service and extension work outside teaching and research).
type ExtensionActivity struct {
	ExtensionID        int        `gorm:"primaryKey;column:extension_id" json:"extension_id"`
	UserID             int        `gorm:"column:user_id" json:"user_id"`
	Position           string     `gorm:"column:position" json:"position"`
	Office             string     `gorm:"column:office" json:"office"`
	StartDate          *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate            *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	ReferenceNumber    *string    `gorm:"column:reference_number" json:"reference_number,omitempty"`
	ServiceDetails     string     `gorm:"column:service_details" json:"service_details"`
	SupportingDocument *string    `gorm:"column:supporting_document" json:"supporting_document,omitempty"`

	ApprovalEnvelope `gorm:"embedded"`

	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (ExtensionActivity) TableName() string {
	return "extension_activities"
}

func (m *ExtensionActivity) RecordID() int      { return m.ExtensionID }
func (m *ExtensionActivity) RecordType() string { return TypeExtensionActivity }
func (m *ExtensionActivity) SubmitterID() int   { return m.UserID }
func (m *ExtensionActivity) Submitter() *User   { return m.User }

// DisplayTitle renders the listing title, e.g. "Consultant at Provincial Health Office".
func (m *ExtensionActivity) DisplayTitle() string {
	return fmt.Sprintf("%s at %s", m.Position, m.Office)
}

func (m *ExtensionActivity) SubmittedAt() time.Time      { return m.CreateAt }
func (m *ExtensionActivity) Envelope() *ApprovalEnvelope { return &m.ApprovalEnvelope }
