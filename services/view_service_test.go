package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"faculty-activity-api/models"
)

func pendingEnvelope(t *testing.T, position int) models.ApprovalEnvelope {
	t.Helper()
	chain, err := models.EncodeChain(testChain())
	if err != nil {
		t.Fatalf("EncodeChain: %v", err)
	}
	return models.ApprovalEnvelope{
		College:       "College of Science",
		Department:    "Biology",
		Status:        models.StatusPending,
		ApprovalChain: chain,
		ChainPosition: &position,
	}
}

func TestSummarizeNormalizesTitlesPerType(t *testing.T) {
	submitter := &models.User{UserID: 10, UserFname: "Leo", UserLname: "Tan"}
	submitted := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

	course := &models.Course{
		CourseID:         7,
		UserID:           10,
		CourseNum:        "BIO 101",
		CourseDesc:       "General Biology",
		ApprovalEnvelope: pendingEnvelope(t, 1),
		CreateAt:         submitted,
		User:             submitter,
	}
	extension := &models.ExtensionActivity{
		ExtensionID:      3,
		UserID:           10,
		Position:         "Consultant",
		Office:           "Provincial Health Office",
		ApprovalEnvelope: pendingEnvelope(t, 0),
		CreateAt:         submitted,
		User:             submitter,
	}

	courseSummary := Summarize(course)
	if courseSummary.Title != "BIO 101 - General Biology" {
		t.Errorf("course title = %q", courseSummary.Title)
	}
	if courseSummary.Type != models.TypeCourse {
		t.Errorf("course type = %q", courseSummary.Type)
	}
	if courseSummary.SubmitterName != "Leo Tan" {
		t.Errorf("submitter name = %q", courseSummary.SubmitterName)
	}
	if courseSummary.CurrentApproverRole == nil || *courseSummary.CurrentApproverRole != models.RoleDean {
		t.Errorf("course current approver = %v, want dean", courseSummary.CurrentApproverRole)
	}

	extSummary := Summarize(extension)
	if extSummary.Title != "Consultant at Provincial Health Office" {
		t.Errorf("extension title = %q", extSummary.Title)
	}
	if extSummary.CurrentApproverRole == nil || *extSummary.CurrentApproverRole != models.RoleDepartmentHead {
		t.Errorf("extension current approver = %v, want department_head", extSummary.CurrentApproverRole)
	}
}

func TestSummarizeTerminalRecordHasNoApproverRole(t *testing.T) {
	env := pendingEnvelope(t, 0)
	env.Status = models.StatusRejected
	env.ChainPosition = nil

	record := &models.ResearchActivity{
		ResearchID:       5,
		UserID:           10,
		Title:            "Coral reef survey",
		ApprovalEnvelope: env,
	}

	summary := Summarize(record)
	if summary.Status != models.StatusRejected {
		t.Errorf("status = %s", summary.Status)
	}
	if summary.CurrentApproverRole != nil {
		t.Errorf("current approver = %v, want nil", *summary.CurrentApproverRole)
	}
}

func TestSortSummariesNewestFirstWithDeterministicTies(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	summaries := []SubmissionSummary{
		{ID: 9, Type: models.TypeCourse, DateSubmitted: older},
		{ID: 2, Type: models.TypeResearchActivity, DateSubmitted: newer},
		{ID: 1, Type: models.TypeCourse, DateSubmitted: newer},
		{ID: 4, Type: models.TypeCourse, DateSubmitted: newer},
	}

	sortSummaries(summaries)

	want := []struct {
		id  int
		typ string
	}{
		{1, models.TypeCourse},
		{4, models.TypeCourse},
		{2, models.TypeResearchActivity},
		{9, models.TypeCourse},
	}
	for i, w := range want {
		if summaries[i].ID != w.id || summaries[i].Type != w.typ {
			t.Errorf("position %d = %s/%d, want %s/%d", i, summaries[i].Type, summaries[i].ID, w.typ, w.id)
		}
	}
}

func TestPendingStepVisibilityScoping(t *testing.T) {
	record := &models.ResearchActivity{
		ResearchID:       5,
		UserID:           10,
		Title:            "Coral reef survey",
		ApprovalEnvelope: pendingEnvelope(t, 1), // waiting on the dean
	}

	step, err := pendingStep(record)
	if err != nil {
		t.Fatalf("pendingStep: %v", err)
	}

	matchingDean := &OrgRoles{College: "College of Science", IsDean: true}
	otherDean := &OrgRoles{College: "College of Arts", IsDean: true}
	deptHead := &OrgRoles{Department: "Biology", IsDepartmentHead: true}

	if !StepSatisfiedBy(step, matchingDean) {
		t.Error("dean of the submission's college should see it")
	}
	if StepSatisfiedBy(step, otherDean) {
		t.Error("dean of another college must not see it")
	}
	if StepSatisfiedBy(step, deptHead) {
		t.Error("department head must not see a dean-stage submission")
	}
}

func TestPendingStepRejectsCorruptChain(t *testing.T) {
	env := pendingEnvelope(t, 0)
	env.ApprovalChain = "{not json"

	record := &models.ResearchActivity{ResearchID: 5, ApprovalEnvelope: env}
	if _, err := pendingStep(record); err == nil {
		t.Error("expected error for corrupt chain")
	}
}

func TestPendingForViewerAdminSeesEveryPosition(t *testing.T) {
	chain, err := models.EncodeChain(testChain())
	if err != nil {
		t.Fatalf("EncodeChain: %v", err)
	}
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	researchRow := []driver.Value{
		int64(5), int64(10), "Coral reef survey", "College of Science", "Biology",
		"pending", chain, int64(2), created, created,
	}

	steps := []*queryStep{
		{kind: kindQuery, pattern: regexp.MustCompile("SELECT .* FROM .research_activities."), columns: researchColumns(), rows: [][]driver.Value{researchRow}},
		{kind: kindQuery, pattern: usersQueryPattern, columns: userColumns(), rows: [][]driver.Value{submitterRow()}},
		{kind: kindQuery, pattern: regexp.MustCompile("SELECT .* FROM .courses."), columns: []string{"course_id"}, rows: [][]driver.Value{}},
		{kind: kindQuery, pattern: regexp.MustCompile("SELECT .* FROM .authorships."), columns: []string{"authorship_id"}, rows: [][]driver.Value{}},
		{kind: kindQuery, pattern: regexp.MustCompile("SELECT .* FROM .extension_activities."), columns: []string{"extension_id"}, rows: [][]driver.Value{}},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	admin := &OrgRoles{UserID: 9, IsAdmin: true}
	summaries, err := NewViewService(gormDB).PendingForViewer(admin)
	if err != nil {
		t.Fatalf("PendingForViewer: %v", err)
	}

	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	if summaries[0].ID != 5 || summaries[0].Type != models.TypeResearchActivity {
		t.Errorf("summary = %+v", summaries[0])
	}
	if summaries[0].CurrentApproverRole == nil || *summaries[0].CurrentApproverRole != models.RoleAdmin {
		t.Errorf("current approver = %v, want admin", summaries[0].CurrentApproverRole)
	}
	if summaries[0].SubmitterName != "Leo Tan" {
		t.Errorf("submitter name = %q", summaries[0].SubmitterName)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
