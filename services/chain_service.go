package services

import (
	"fmt"

	"faculty-activity-api/models"
)

// BuildChain computes the ordered approver roles for a submission from the
// submitter's org snapshot. The rules:
//
//  1. Department head of the submitter's department, unless the submitter
//     holds that role themselves.
//  2. Dean of the submitter's college, unless the submitter is that dean.
//  3. Admin, always. Admin is the terminal authority, so a submitter who is
//     both head and dean of their own org still gets [admin] and never an
//     empty chain.
func BuildChain(roles *OrgRoles) []models.ChainStep {
	steps := make([]models.ChainStep, 0, 3)
	if !roles.IsDepartmentHead {
		steps = append(steps, models.ChainStep{
			Role:       models.RoleDepartmentHead,
			Department: roles.Department,
		})
	}
	if !roles.IsDean {
		steps = append(steps, models.ChainStep{
			Role:    models.RoleDean,
			College: roles.College,
		})
	}
	steps = append(steps, models.ChainStep{Role: models.RoleAdmin})
	return steps
}

// NewEnvelope freezes the submitter's org and chain into the approval
// envelope a new record is created with.
func NewEnvelope(roles *OrgRoles) (models.ApprovalEnvelope, error) {
	chain, err := models.EncodeChain(BuildChain(roles))
	if err != nil {
		return models.ApprovalEnvelope{}, fmt.Errorf("failed to encode approval chain: %w", err)
	}
	position := 0
	return models.ApprovalEnvelope{
		College:       roles.College,
		Department:    roles.Department,
		Status:        models.StatusPending,
		ApprovalChain: chain,
		ChainPosition: &position,
	}, nil
}

// StepSatisfiedBy reports whether the actor holds the exact role a chain
// step requires, in the step's own org scope.
func StepSatisfiedBy(step models.ChainStep, actor *OrgRoles) bool {
	switch step.Role {
	case models.RoleAdmin:
		return actor.IsAdmin
	case models.RoleDepartmentHead:
		return actor.IsDepartmentHead && actor.Department == step.Department
	case models.RoleDean:
		return actor.IsDean && actor.College == step.College
	}
	return false
}

// CurrentStep returns the chain step a pending record is waiting on.
func CurrentStep(chain []models.ChainStep, position *int) (models.ChainStep, error) {
	if position == nil || *position < 0 || *position >= len(chain) {
		return models.ChainStep{}, fmt.Errorf("chain position out of range")
	}
	return chain[*position], nil
}
