package view

import (
	"testing"
	"time"

	"campusportal/internal/editor"
	"campusportal/internal/roster"
)

func sample() roster.Student {
	return roster.Student{
		ID:              "s1",
		Name:            "Arjun Ramesh",
		RegNo:           "CS2023001",
		Department:      "Computer Science",
		TotalClasses:    40,
		AttendedClasses: 37,
		TotalFee:        2000,
		PaidFee:         500,
		Results: []roster.SubjectResult{
			{Code: "CS301", Name: "Data Structures", Marks: 88, MaxMarks: 100},
		},
	}
}

func TestRenderIsTotal(t *testing.T) {
	for _, st := range All {
		ctx := Context{Role: RoleAdmin, State: st, Now: time.Now()}
		if st == StateDashboardStaff || st == StateDashboardStudent {
			ctx.Draft = editor.New(sample(), false)
		}
		screen := Render(ctx)
		if screen.View == "NOT_FOUND" {
			t.Errorf("state %s rendered the not-found screen", st)
		}
		if screen.Title == "" {
			t.Errorf("state %s rendered without a title", st)
		}
	}
}

func TestRenderUnknownStateIsExplicitNotFound(t *testing.T) {
	screen := Render(Context{State: State("GARBAGE")})
	if screen.View != "NOT_FOUND" {
		t.Errorf("unknown state rendered %s, want NOT_FOUND", screen.View)
	}
}

func TestStaffDashboardWithoutSelectionRendersDirectory(t *testing.T) {
	students := []roster.Student{sample()}
	screen := Render(Context{Role: RoleAdmin, State: StateDashboardStaff, Students: students})
	if screen.Editor != nil {
		t.Fatal("directory screen rendered an editor")
	}
	if len(screen.Directory) != 1 || screen.Directory[0].RegNo != "CS2023001" {
		t.Errorf("directory = %+v", screen.Directory)
	}
	if len(screen.Departments) == 0 || screen.Departments[0] != roster.DeptAll {
		t.Errorf("departments must lead with the sentinel: %v", screen.Departments)
	}
}

func TestAdminEditorRendersAllFieldsEditable(t *testing.T) {
	d := editor.New(sample(), false)
	screen := Render(Context{Role: RoleAdmin, State: StateDashboardStaff, Draft: d, Now: time.Now()})
	if screen.Editor == nil {
		t.Fatal("no editor rendered")
	}
	if len(screen.Editor.Fields) == 0 {
		t.Fatal("no fields rendered")
	}
	for _, f := range screen.Editor.Fields {
		if !f.Editable {
			t.Errorf("field %s not editable for admin", f.Name)
		}
	}
	for _, r := range screen.Editor.Results {
		if !r.Editable {
			t.Errorf("result row %d not editable for admin", r.Index)
		}
	}
	if screen.Editor.Pending == nil {
		t.Error("admin editor missing the pending add-subject row")
	}
}

func TestStudentEditorRendersZeroEditableControls(t *testing.T) {
	d := editor.New(sample(), true)
	screen := Render(Context{Role: RoleStudent, State: StateDashboardStudent, Draft: d, Now: time.Now()})
	if screen.Editor == nil {
		t.Fatal("no editor rendered")
	}
	for _, f := range screen.Editor.Fields {
		if f.Editable {
			t.Errorf("field %s editable in student view", f.Name)
		}
	}
	for _, r := range screen.Editor.Results {
		if r.Editable {
			t.Errorf("result row %d editable in student view", r.Index)
		}
	}
	if screen.Editor.Pending != nil {
		t.Error("student view exposes the add-subject row")
	}
}

func TestEditorDerivedValues(t *testing.T) {
	d := editor.New(sample(), false)
	screen := Render(Context{Role: RoleAdmin, State: StateDashboardStaff, Draft: d, Now: time.Now()})
	if screen.Editor.AttendancePercent != 93 {
		t.Errorf("attendance percent = %d, want 93", screen.Editor.AttendancePercent)
	}
	if screen.Editor.PendingFee != 1500 {
		t.Errorf("pending fee = %v, want 1500", screen.Editor.PendingFee)
	}
}

func TestLoginScreensCarryCaptcha(t *testing.T) {
	for _, st := range []State{StateLoginStaff, StateLoginStudent} {
		screen := Render(Context{State: st, Captcha: "AB23CD"})
		if screen.Captcha != "AB23CD" {
			t.Errorf("state %s captcha = %q", st, screen.Captcha)
		}
	}
}

func TestRoleHelpers(t *testing.T) {
	if !RoleAdmin.CanEdit() {
		t.Error("admin cannot edit")
	}
	if RoleStudent.CanEdit() || RoleNone.CanEdit() {
		t.Error("non-admin role can edit")
	}
	if !RoleAdmin.Valid() || !RoleStudent.Valid() || !RoleNone.Valid() {
		t.Error("known role reported invalid")
	}
	if Role("ROOT").Valid() {
		t.Error("unknown role reported valid")
	}
	if State("NOPE").Valid() {
		t.Error("unknown state reported valid")
	}
}
