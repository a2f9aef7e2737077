package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"faculty-activity-api/models"
)

func testChain() []models.ChainStep {
	return []models.ChainStep{
		{Role: models.RoleDepartmentHead, Department: "Biology"},
		{Role: models.RoleDean, College: "College of Science"},
		{Role: models.RoleAdmin},
	}
}

func decisionBy(role, decision string) models.ApprovalDecision {
	return models.ApprovalDecision{ActorRole: role, Decision: decision}
}

func TestEvaluateDecision(t *testing.T) {
	chain := testChain()

	tests := []struct {
		name       string
		position   int
		isAdmin    bool
		decision   string
		wantStatus string
		wantPos    *int
	}{
		{"approve advances", 0, false, models.DecisionApprove, models.StatusPending, intPtr(1)},
		{"approve at last step terminal", 2, false, models.DecisionApprove, models.StatusApproved, nil},
		{"admin approve anywhere terminal", 0, true, models.DecisionApprove, models.StatusApproved, nil},
		{"reject at first step terminal", 0, false, models.DecisionReject, models.StatusRejected, nil},
		{"reject mid-chain terminal", 1, false, models.DecisionReject, models.StatusRejected, nil},
		{"admin reject terminal", 1, true, models.DecisionReject, models.StatusRejected, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, pos := evaluateDecision(chain, tt.position, tt.isAdmin, tt.decision)
			if status != tt.wantStatus {
				t.Errorf("status = %s, want %s", status, tt.wantStatus)
			}
			if !posEqual(pos, tt.wantPos) {
				t.Errorf("position = %v, want %v", fmtPos(pos), fmtPos(tt.wantPos))
			}
		})
	}
}

func TestReplayDecisionsReconstructsState(t *testing.T) {
	chain := testChain()

	tests := []struct {
		name       string
		entries    []models.ApprovalDecision
		wantStatus string
		wantPos    *int
	}{
		{"no decisions", nil, models.StatusPending, intPtr(0)},
		{
			"head approved",
			[]models.ApprovalDecision{decisionBy(models.RoleDepartmentHead, models.DecisionApprove)},
			models.StatusPending, intPtr(1),
		},
		{
			"head then dean approved",
			[]models.ApprovalDecision{
				decisionBy(models.RoleDepartmentHead, models.DecisionApprove),
				decisionBy(models.RoleDean, models.DecisionApprove),
			},
			models.StatusPending, intPtr(2),
		},
		{
			"fully approved",
			[]models.ApprovalDecision{
				decisionBy(models.RoleDepartmentHead, models.DecisionApprove),
				decisionBy(models.RoleDean, models.DecisionApprove),
				decisionBy(models.RoleAdmin, models.DecisionApprove),
			},
			models.StatusApproved, nil,
		},
		{
			"dean rejected mid-chain",
			[]models.ApprovalDecision{
				decisionBy(models.RoleDepartmentHead, models.DecisionApprove),
				decisionBy(models.RoleDean, models.DecisionReject),
			},
			models.StatusRejected, nil,
		},
		{
			"admin override at first position",
			[]models.ApprovalDecision{decisionBy(models.RoleAdmin, models.DecisionApprove)},
			models.StatusApproved, nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, pos := ReplayDecisions(chain, tt.entries)
			if status != tt.wantStatus {
				t.Errorf("status = %s, want %s", status, tt.wantStatus)
			}
			if !posEqual(pos, tt.wantPos) {
				t.Errorf("position = %v, want %v", fmtPos(pos), fmtPos(tt.wantPos))
			}
		})
	}
}

func TestDecideRejectRequiresComments(t *testing.T) {
	service := NewApprovalService(nil)
	_, err := service.Decide(models.TypeResearchActivity, 5, 2, models.DecisionReject, "   ")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDecideRejectsUnknownDecision(t *testing.T) {
	service := NewApprovalService(nil)
	_, err := service.Decide(models.TypeResearchActivity, 5, 2, "escalate", "")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDecideRejectsUnknownRecordType(t *testing.T) {
	service := NewApprovalService(nil)
	_, err := service.Decide("grant", 5, 2, models.DecisionApprove, "")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// Scripted end-to-end decision paths.

var (
	usersQueryPattern    = regexp.MustCompile("SELECT .* FROM .users.")
	researchLockPattern  = regexp.MustCompile("SELECT .* FROM .research_activities.*FOR UPDATE")
	researchWritePattern = regexp.MustCompile("UPDATE .research_activities. SET")
	decisionInsert       = regexp.MustCompile("INSERT INTO .approval_decisions.")
)

func userColumns() []string {
	return []string{
		"user_id", "user_fname", "user_lname", "email", "role",
		"college", "department", "is_department_head", "is_dean",
	}
}

func deptHeadRow() []driver.Value {
	return []driver.Value{
		int64(2), "Ann", "Reyes", "ann@uni.edu", "faculty",
		"College of Science", "Biology", true, false,
	}
}

func adminRow() []driver.Value {
	return []driver.Value{
		int64(9), "Sam", "Cruz", "sam@uni.edu", "admin",
		"College of Science", "Dean Office", false, false,
	}
}

func submitterRow() []driver.Value {
	return []driver.Value{
		int64(10), "Leo", "Tan", "leo@uni.edu", "faculty",
		"College of Science", "Biology", false, false,
	}
}

func researchColumns() []string {
	return []string{
		"research_id", "user_id", "title", "college", "department",
		"status", "approval_chain", "chain_position", "create_at", "update_at",
	}
}

func pendingResearchRow(t *testing.T, position int64) []driver.Value {
	t.Helper()
	chain, err := models.EncodeChain(testChain())
	if err != nil {
		t.Fatalf("EncodeChain: %v", err)
	}
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return []driver.Value{
		int64(5), int64(10), "Coral reef survey", "College of Science", "Biology",
		"pending", chain, position, created, created,
	}
}

func TestDecideApproveAdvancesChain(t *testing.T) {
	steps := []*queryStep{
		{kind: kindQuery, pattern: usersQueryPattern, columns: userColumns(), rows: [][]driver.Value{deptHeadRow()}},
		{kind: kindQuery, pattern: researchLockPattern, columns: researchColumns(), rows: [][]driver.Value{pendingResearchRow(t, 0)}},
		{kind: kindQuery, pattern: usersQueryPattern, columns: userColumns(), rows: [][]driver.Value{submitterRow()}},
		{kind: kindExec, pattern: researchWritePattern, result: scriptedResult{rowsAffected: 1}},
		{kind: kindExec, pattern: decisionInsert, result: scriptedResult{lastInsertID: 1, rowsAffected: 1}},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalService(gormDB)
	record, err := service.Decide(models.TypeResearchActivity, 5, 2, models.DecisionApprove, "")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}

	env := record.Envelope()
	if env.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", env.Status)
	}
	if env.ChainPosition == nil || *env.ChainPosition != 1 {
		t.Errorf("chain position = %v, want 1", fmtPos(env.ChainPosition))
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestDecideAdminOverrideIsTerminal(t *testing.T) {
	steps := []*queryStep{
		{kind: kindQuery, pattern: usersQueryPattern, columns: userColumns(), rows: [][]driver.Value{adminRow()}},
		{kind: kindQuery, pattern: researchLockPattern, columns: researchColumns(), rows: [][]driver.Value{pendingResearchRow(t, 0)}},
		{kind: kindQuery, pattern: usersQueryPattern, columns: userColumns(), rows: [][]driver.Value{submitterRow()}},
		{kind: kindExec, pattern: researchWritePattern, result: scriptedResult{rowsAffected: 1}},
		{kind: kindExec, pattern: decisionInsert, result: scriptedResult{lastInsertID: 1, rowsAffected: 1}},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalService(gormDB)
	record, err := service.Decide(models.TypeResearchActivity, 5, 9, models.DecisionApprove, "")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}

	env := record.Envelope()
	if env.Status != models.StatusApproved {
		t.Errorf("status = %s, want approved", env.Status)
	}
	if env.ChainPosition != nil {
		t.Errorf("chain position = %v, want nil", fmtPos(env.ChainPosition))
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestDecideRejectIsTerminalMidChain(t *testing.T) {
	steps := []*queryStep{
		{kind: kindQuery, pattern: usersQueryPattern, columns: userColumns(), rows: [][]driver.Value{deptHeadRow()}},
		{kind: kindQuery, pattern: researchLockPattern, columns: researchColumns(), rows: [][]driver.Value{pendingResearchRow(t, 0)}},
		{kind: kindQuery, pattern: usersQueryPattern, columns: userColumns(), rows: [][]driver.Value{submitterRow()}},
		{kind: kindExec, pattern: researchWritePattern, result: scriptedResult{rowsAffected: 1}},
		{kind: kindExec, pattern: decisionInsert, result: scriptedResult{lastInsertID: 1, rowsAffected: 1}},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalService(gormDB)
	record, err := service.Decide(models.TypeResearchActivity, 5, 2, models.DecisionReject, "incomplete documentation")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}

	env := record.Envelope()
	if env.Status != models.StatusRejected {
		t.Errorf("status = %s, want rejected", env.Status)
	}
	if env.ChainPosition != nil {
		t.Errorf("chain position = %v, want nil", fmtPos(env.ChainPosition))
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestDecideWrongActorIsForbidden(t *testing.T) {
	steps := []*queryStep{
		{kind: kindQuery, pattern: usersQueryPattern, columns: userColumns(), rows: [][]driver.Value{submitterRow()}},
		{kind: kindQuery, pattern: researchLockPattern, columns: researchColumns(), rows: [][]driver.Value{pendingResearchRow(t, 0)}},
		{kind: kindQuery, pattern: usersQueryPattern, columns: userColumns(), rows: [][]driver.Value{submitterRow()}},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalService(gormDB)
	_, err := service.Decide(models.TypeResearchActivity, 5, 10, models.DecisionApprove, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestDecideOnTerminalRecordIsConflict(t *testing.T) {
	chain, err := models.EncodeChain(testChain())
	if err != nil {
		t.Fatalf("EncodeChain: %v", err)
	}
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	approvedRow := []driver.Value{
		int64(5), int64(10), "Coral reef survey", "College of Science", "Biology",
		"approved", chain, nil, created, created,
	}

	steps := []*queryStep{
		{kind: kindQuery, pattern: usersQueryPattern, columns: userColumns(), rows: [][]driver.Value{deptHeadRow()}},
		{kind: kindQuery, pattern: researchLockPattern, columns: researchColumns(), rows: [][]driver.Value{approvedRow}},
		{kind: kindQuery, pattern: usersQueryPattern, columns: userColumns(), rows: [][]driver.Value{submitterRow()}},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalService(gormDB)
	_, err = service.Decide(models.TypeResearchActivity, 5, 2, models.DecisionApprove, "")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestDecideLostRaceIsConflict(t *testing.T) {
	steps := []*queryStep{
		{kind: kindQuery, pattern: usersQueryPattern, columns: userColumns(), rows: [][]driver.Value{deptHeadRow()}},
		{kind: kindQuery, pattern: researchLockPattern, columns: researchColumns(), rows: [][]driver.Value{pendingResearchRow(t, 0)}},
		{kind: kindQuery, pattern: usersQueryPattern, columns: userColumns(), rows: [][]driver.Value{submitterRow()}},
		// The concurrent decision got there first: guard matches no rows.
		{kind: kindExec, pattern: researchWritePattern, result: scriptedResult{rowsAffected: 0}},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalService(gormDB)
	_, err := service.Decide(models.TypeResearchActivity, 5, 2, models.DecisionApprove, "")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestDecideMissingRecordIsNotFound(t *testing.T) {
	steps := []*queryStep{
		{kind: kindQuery, pattern: usersQueryPattern, columns: userColumns(), rows: [][]driver.Value{deptHeadRow()}},
		{kind: kindQuery, pattern: researchLockPattern, columns: researchColumns(), rows: [][]driver.Value{}},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalService(gormDB)
	_, err := service.Decide(models.TypeResearchActivity, 404, 2, models.DecisionApprove, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func intPtr(v int) *int { return &v }

func posEqual(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func fmtPos(p *int) interface{} {
	if p == nil {
		return "nil"
	}
	return *p
}
