package models

import (
	"strings"
	"time"
)

// User roles stored in users.role.
const (
	UserRoleFaculty = "faculty"
	UserRoleAdmin   = "admin"
)

type User struct {
	UserID           int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	UserFname        string     `gorm:"column:user_fname" json:"user_fname"`
	UserLname        string     `gorm:"column:user_lname" json:"user_lname"`
	Email            string     `gorm:"column:email;unique" json:"email"`
	Password         string     `gorm:"column:password" json:"-"`
	Role             string     `gorm:"column:role" json:"role"`
	Rank             *string    `gorm:"column:rank" json:"rank,omitempty"`
	College          string     `gorm:"column:college" json:"college"`
	Department       string     `gorm:"column:department" json:"department"`
	IsDepartmentHead bool       `gorm:"column:is_department_head" json:"is_department_head"`
	IsDean           bool       `gorm:"column:is_dean" json:"is_dean"`
	ScholarLink      *string    `gorm:"column:scholar_link" json:"scholar_link,omitempty"`
	DateOfEmployment *time.Time `gorm:"column:date_of_employment" json:"date_of_employment,omitempty"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

// FullName joins first and last name for display in listings.
func (u *User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.UserFname) + " " + strings.TrimSpace(u.UserLname))
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
