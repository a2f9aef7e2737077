package models

import "time"

// ResearchActivity represents the research_activities table.
type ResearchActivity struct {
	ResearchID         int        `gorm:"primaryKey;column:research_id" json:"research_id"`
	UserID             int        `gorm:"column:user_id" json:"user_id"`
	Title              string     `gorm:"column:title" json:"title"`
	Institute          string     `gorm:"column:institute" json:"institute"`
	Authors            string     `gorm:"column:authors" json:"authors"`
	PublicationType    string     `gorm:"column:publication_type" json:"publication_type"`
	Journal            *string    `gorm:"column:journal" json:"journal,omitempty"`
	DOI                *string    `gorm:"column:doi" json:"doi,omitempty"`
	CitedAs            *string    `gorm:"column:cited_as" json:"cited_as,omitempty"`
	DatePublished      *time.Time `gorm:"column:date_published" json:"date_published,omitempty"`
	StartDate          *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate            *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	SupportingDocument *string    `gorm:"column:supporting_document" json:"supporting_document,omitempty"`

	ApprovalEnvelope `gorm:"embedded"`

	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (ResearchActivity) TableName() string {
	return "research_activities"
}

func (r *ResearchActivity) RecordID() int              { return r.ResearchID }
func (r *ResearchActivity) RecordType() string         { return TypeResearchActivity }
func (r *ResearchActivity) SubmitterID() int           { return r.UserID }
func (r *ResearchActivity) Submitter() *User           { return r.User }
func (r *ResearchActivity) DisplayTitle() string       { return r.Title }
func (r *ResearchActivity) SubmittedAt() time.Time     { return r.CreateAt }
func (r *ResearchActivity) Envelope() *ApprovalEnvelope { return &r.ApprovalEnvelope }
