package models

import (
	"fmt"
	"time"
)

// Course represents the courses table (teaching activity with SET scores).
type Course struct {
	CourseID            int      `gorm:"primaryKey;column:course_id" json:"course_id"`
	UserID              int      `gorm:"column:user_id" json:"user_id"`
	AcademicYear        string   `gorm:"column:academic_year" json:"academic_year"`
	Term                string   `gorm:"column:term" json:"term"`
	CourseNum           string   `gorm:"column:course_num" json:"course_num"`
	Section             string   `gorm:"column:section" json:"section"`
	CourseDesc          string   `gorm:"column:course_desc" json:"course_desc"`
	CourseType          string   `gorm:"column:course_type" json:"course_type"`
	PercentContribution float64  `gorm:"column:percent_contribution" json:"percent_contribution"`
	LoadCreditUnits     float64  `gorm:"column:load_credit_units" json:"load_credit_units"`
	NoOfRespondents     int      `gorm:"column:no_of_respondents" json:"no_of_respondents"`
	SETStudent          *float64 `gorm:"column:set_student" json:"set_student,omitempty"`
	SETCourse           *float64 `gorm:"column:set_course" json:"set_course,omitempty"`
	SETTeaching         *float64 `gorm:"column:set_teaching" json:"set_teaching,omitempty"`
	TeachingPoints      *float64 `gorm:"column:teaching_points" json:"teaching_points,omitempty"`
	SupportingDocument  *string  `gorm:"column:supporting_document" json:"supporting_document,omitempty"`

	ApprovalEnvelope `gorm:"embedded"`

	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

func (m *Course) RecordID() int      { return m.CourseID }
func (m *Course) RecordType() string { return TypeCourse }
func (m *Course) SubmitterID() int   { return m.UserID }
func (m *Course) Submitter() *User   { return m.User }

// DisplayTitle renders the listing title the same way the record views do,
// e.g. "CS 101 - Introduction to Computing".
func (m *Course) DisplayTitle() string {
	return fmt.Sprintf("%s - %s", m.CourseNum, m.CourseDesc)
}

func (m *Course) SubmittedAt() time.Time      { return m.CreateAt }
func (m *Course) Envelope() *ApprovalEnvelope { return &m.ApprovalEnvelope }
