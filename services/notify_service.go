package services

import (
	"fmt"
	"html"
	"log"
	"strings"

	"faculty-activity-api/config"
	"faculty-activity-api/models"

	"gorm.io/gorm"
)

// DecisionNotifier builds the default post-decision mail hook: the
// submitter always hears about the decision, and when the chain advances
// the approvers for the next step are put on notice. Delivery failures are
// logged and swallowed; mail never fails a decision.
func DecisionNotifier(db *gorm.DB) Notifier {
	return func(record models.ApprovalRecord, decision models.ApprovalDecision, nextRole *string) {
		env := record.Envelope()
		title := html.EscapeString(record.DisplayTitle())

		if submitter := record.Submitter(); submitter != nil && submitter.Email != "" {
			subject := fmt.Sprintf("Your submission \"%s\" is now %s", record.DisplayTitle(), env.Status)
			body := fmt.Sprintf("<p>Your %s submission <b>%s</b> is now <b>%s</b>.</p>",
				strings.ReplaceAll(record.RecordType(), "_", " "), title, env.Status)
			if decision.Comments != nil {
				body += fmt.Sprintf("<p>Comments: %s</p>", html.EscapeString(*decision.Comments))
			}
			if err := config.SendMail([]string{submitter.Email}, subject, body); err != nil {
				log.Printf("notify: submitter mail for %s %d: %v", record.RecordType(), record.RecordID(), err)
			}
		}

		if nextRole == nil {
			return
		}
		recipients, err := approverEmails(db, *nextRole, env)
		if err != nil {
			log.Printf("notify: resolving %s approvers: %v", *nextRole, err)
			return
		}
		subject := "A submission is waiting for your approval"
		body := fmt.Sprintf("<p>The %s submission <b>%s</b> is waiting for your decision.</p>",
			strings.ReplaceAll(record.RecordType(), "_", " "), title)
		if err := config.SendMail(recipients, subject, body); err != nil {
			log.Printf("notify: approver mail for %s %d: %v", record.RecordType(), record.RecordID(), err)
		}
	}
}

// approverEmails finds the users who can satisfy a chain step, scoped to
// the submission's frozen org.
func approverEmails(db *gorm.DB, role string, env *models.ApprovalEnvelope) ([]string, error) {
	var users []models.User
	query := db.Where("delete_at IS NULL")
	switch role {
	case models.RoleDepartmentHead:
		query = query.Where("is_department_head = ? AND department = ?", true, env.Department)
	case models.RoleDean:
		query = query.Where("is_dean = ? AND college = ?", true, env.College)
	case models.RoleAdmin:
		query = query.Where("role = ?", models.UserRoleAdmin)
	default:
		return nil, fmt.Errorf("unknown approver role %q", role)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(users))
	for _, user := range users {
		if user.Email != "" {
			emails = append(emails, user.Email)
		}
	}
	return emails, nil
}
