package services

import (
	"errors"
	"fmt"

	"faculty-activity-api/models"

	"gorm.io/gorm"
)

// OrgRoles is the organizational context resolved for one user: where they
// sit and which approval authorities they hold.
type OrgRoles struct {
	UserID           int
	Name             string
	Email            string
	College          string
	Department       string
	IsDepartmentHead bool
	IsDean           bool
	IsAdmin          bool
}

// ResolveRoles looks up a user's org facts. It is a pure read; callers that
// need a stable snapshot (submission creation) must freeze the result
// themselves.
func ResolveRoles(db *gorm.DB, userID int) (*OrgRoles, error) {
	var user models.User
	if err := db.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve roles for user %d: %w", userID, err)
	}
	return rolesFromUser(&user), nil
}

func rolesFromUser(user *models.User) *OrgRoles {
	return &OrgRoles{
		UserID:           user.UserID,
		Name:             user.FullName(),
		Email:            user.Email,
		College:          user.College,
		Department:       user.Department,
		IsDepartmentHead: user.IsDepartmentHead,
		IsDean:           user.IsDean,
		IsAdmin:          user.IsAdmin(),
	}
}
