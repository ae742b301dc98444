package view

import (
	"time"

	"campusportal/internal/editor"
	"campusportal/internal/roster"
)

// Field is the structural contract for one rendered record attribute: what
// it is called, what kind of control renders it and whether the current role
// may change it.
type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"` // text, number, select
	Value    any      `json:"value"`
	Editable bool     `json:"editable"`
	Options  []string `json:"options,omitempty"`
}

// ResultRow is one rendered mark-sheet entry.
type ResultRow struct {
	Index    int                  `json:"index"`
	Subject  roster.SubjectResult `json:"subject"`
	Editable bool                 `json:"editable"`
}

// DirectoryEntry is a roster record reduced to its listing line.
type DirectoryEntry struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	RegNo      string           `json:"regNo"`
	Department string           `json:"department"`
	AvatarURL  string           `json:"avatarUrl"`
	FeeStatus  roster.FeeStatus `json:"feeStatus"`
}

// Editor is the rendered record edit screen.
type Editor struct {
	RecordID          string          `json:"recordId"`
	Fields            []Field         `json:"fields"`
	Results           []ResultRow     `json:"results"`
	Pending           *roster.SubjectResult `json:"pending,omitempty"`
	AttendancePercent int             `json:"attendancePercent"`
	PendingFee        float64         `json:"pendingFee"`
	Saving            bool            `json:"saving"`
	Message           *editor.Message `json:"message,omitempty"`
}

// Screen is what one ViewState renders to.
type Screen struct {
	View        State            `json:"view"`
	Title       string           `json:"title"`
	Nav         []State          `json:"nav,omitempty"`
	Captcha     string           `json:"captcha,omitempty"`
	Directory   []DirectoryEntry `json:"directory,omitempty"`
	Departments []string         `json:"departments,omitempty"`
	Editor      *Editor          `json:"editor,omitempty"`
	Body        string           `json:"body,omitempty"`
}

// Context carries everything a screen render needs.
type Context struct {
	Role     Role
	State    State
	Students []roster.Student
	Draft    *editor.Draft
	Captcha  string
	Now      time.Time
}

// Render is the total dispatch from ViewState to screen. Every enumerated
// state maps to a defined screen; anything outside the enum renders the
// explicit not-found screen.
func Render(ctx Context) Screen {
	switch ctx.State {
	case StateHome:
		return Screen{
			View:  StateHome,
			Title: "Welcome",
			Nav:   []State{StateLoginStaff, StateLoginStudent, StateCollegeDetails, StateAdmissions},
		}
	case StateLoginStaff:
		return Screen{View: StateLoginStaff, Title: "Staff Login", Captcha: ctx.Captcha}
	case StateLoginStudent:
		return Screen{View: StateLoginStudent, Title: "Student Login", Captcha: ctx.Captcha}
	case StateDashboardStaff:
		if ctx.Draft != nil {
			return Screen{
				View:   StateDashboardStaff,
				Title:  ctx.Draft.Student.Name,
				Editor: renderEditor(ctx.Draft, ctx.Now),
			}
		}
		return Screen{
			View:        StateDashboardStaff,
			Title:       "Student Directory",
			Directory:   renderDirectory(ctx.Students),
			Departments: append([]string{roster.DeptAll}, roster.Departments...),
		}
	case StateDashboardStudent:
		if ctx.Draft == nil {
			return notFound()
		}
		return Screen{
			View:   StateDashboardStudent,
			Title:  ctx.Draft.Student.Name,
			Editor: renderEditor(ctx.Draft, ctx.Now),
		}
	case StateCollegeDetails:
		return Screen{View: StateCollegeDetails, Title: "About the College", Body: "college-details"}
	case StateAdmissions:
		return Screen{View: StateAdmissions, Title: "Admissions", Body: "admissions"}
	}
	return notFound()
}

func notFound() Screen {
	return Screen{View: "NOT_FOUND", Title: "Page Not Found"}
}

func renderDirectory(students []roster.Student) []DirectoryEntry {
	out := make([]DirectoryEntry, len(students))
	for i, s := range students {
		out[i] = DirectoryEntry{
			ID:         s.ID,
			Name:       s.Name,
			RegNo:      s.RegNo,
			Department: s.Department,
			AvatarURL:  s.AvatarURL,
			FeeStatus:  s.FeeStatus,
		}
	}
	return out
}

func renderEditor(d *editor.Draft, now time.Time) *Editor {
	s := d.Student
	editable := !d.ReadOnly

	fields := []Field{
		{Name: "name", Label: "Student Name", Kind: "text", Value: s.Name, Editable: editable},
		{Name: "regNo", Label: "Registration No", Kind: "text", Value: s.RegNo, Editable: editable},
		{Name: "email", Label: "Email", Kind: "text", Value: s.Email, Editable: editable},
		{Name: "department", Label: "Department", Kind: "select", Value: s.Department, Editable: editable, Options: roster.Departments},
		{Name: "year", Label: "Year", Kind: "number", Value: s.Year, Editable: editable},
		{Name: "semester", Label: "Sem", Kind: "number", Value: s.Semester, Editable: editable},
		{Name: "cgpa", Label: "CGPA", Kind: "number", Value: s.CGPA, Editable: editable},
		{Name: "contact", Label: "Phone", Kind: "text", Value: s.Contact, Editable: editable},
		{Name: "address", Label: "Address", Kind: "text", Value: s.Address, Editable: editable},
		{Name: "totalClasses", Label: "Total Classes", Kind: "number", Value: s.TotalClasses, Editable: editable},
		{Name: "attendedClasses", Label: "Attended Classes", Kind: "number", Value: s.AttendedClasses, Editable: editable},
		{Name: "totalFee", Label: "Total Fee", Kind: "number", Value: s.TotalFee, Editable: editable},
		{Name: "paidFee", Label: "Paid Fee", Kind: "number", Value: s.PaidFee, Editable: editable},
		{Name: "feeStatus", Label: "Fee Status", Kind: "select", Value: string(s.FeeStatus), Editable: editable,
			Options: []string{string(roster.FeePaid), string(roster.FeePending), string(roster.FeeOverdue)}},
	}

	rows := make([]ResultRow, len(s.Results))
	for i, r := range s.Results {
		rows[i] = ResultRow{Index: i, Subject: r, Editable: editable}
	}

	out := &Editor{
		RecordID:          s.ID,
		Fields:            fields,
		Results:           rows,
		AttendancePercent: s.AttendancePercent(),
		PendingFee:        s.PendingFee(),
		Saving:            d.Saving,
		Message:           d.Flash(now),
	}
	if editable {
		pending := d.Pending
		out.Pending = &pending
	}
	return out
}
