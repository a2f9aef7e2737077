package models

import "time"

// Authorship represents the authorships table.
type Authorship struct {
	AuthorshipID       int        `gorm:"primaryKey;column:authorship_id" json:"authorship_id"`
	UserID             int        `gorm:"column:user_id" json:"user_id"`
	Title              string     `gorm:"column:title" json:"title"`
	Authors            string     `gorm:"column:authors" json:"authors"`
	Date               *time.Time `gorm:"column:date" json:"date,omitempty"`
	UPCourse           *string    `gorm:"column:up_course" json:"up_course,omitempty"`
	RecommendingUnit   string     `gorm:"column:recommending_unit" json:"recommending_unit"`
	Publisher          string     `gorm:"column:publisher" json:"publisher"`
	AuthorshipType     string     `gorm:"column:authorship_type" json:"authorship_type"`
	NumberOfAuthors    int        `gorm:"column:number_of_authors" json:"number_of_authors"`
	SupportingDocument *string    `gorm:"column:supporting_document" json:"supporting_document,omitempty"`

	ApprovalEnvelope `gorm:"embedded"`

	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (Authorship) TableName() string {
	return "authorships"
}

func (m *Authorship) RecordID() int               { return m.AuthorshipID }
func (m *Authorship) RecordType() string          { return TypeAuthorship }
func (m *Authorship) SubmitterID() int            { return m.UserID }
func (m *Authorship) Submitter() *User            { return m.User }
func (m *Authorship) DisplayTitle() string        { return m.Title }
func (m *Authorship) SubmittedAt() time.Time      { return m.CreateAt }
func (m *Authorship) Envelope() *ApprovalEnvelope { return &m.ApprovalEnvelope }
