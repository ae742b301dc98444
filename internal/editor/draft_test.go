package editor

import (
	"errors"
	"testing"
	"time"

	"campusportal/internal/roster"
)

func record() roster.Student {
	return roster.Student{
		ID:              "s1",
		Name:            "Arjun Ramesh",
		RegNo:           "CS2023001",
		Department:      "Computer Science",
		Year:            2,
		CGPA:            8.7,
		TotalClasses:    40,
		AttendedClasses: 37,
		TotalFee:        2000,
		PaidFee:         500,
		FeeStatus:       roster.FeePending,
		Results: []roster.SubjectResult{
			{Code: "CS301", Name: "Data Structures", Marks: 88, MaxMarks: 100, Grade: "A", Status: roster.ResultPass},
		},
	}
}

func TestSetFieldScalars(t *testing.T) {
	d := New(record(), false)

	tests := []struct {
		field, value string
		check        func(s roster.Student) bool
	}{
		{"name", "Arjun R", func(s roster.Student) bool { return s.Name == "Arjun R" }},
		{"email", "a@college.edu", func(s roster.Student) bool { return s.Email == "a@college.edu" }},
		{"year", "3", func(s roster.Student) bool { return s.Year == 3 }},
		{"cgpa", "9.2", func(s roster.Student) bool { return s.CGPA == 9.2 }},
		{"paidFee", "2500", func(s roster.Student) bool { return s.PaidFee == 2500 }},
		{"feeStatus", "paid", func(s roster.Student) bool { return s.FeeStatus == roster.FeePaid }},
	}
	for _, tc := range tests {
		if err := d.SetField(tc.field, tc.value); err != nil {
			t.Fatalf("SetField(%s) failed: %v", tc.field, err)
		}
		if !tc.check(d.Student) {
			t.Errorf("SetField(%s, %q) did not apply", tc.field, tc.value)
		}
	}
}

func TestSetFieldBadNumberKeepsOldValue(t *testing.T) {
	d := New(record(), false)

	if err := d.SetField("year", "three"); err != nil {
		t.Fatalf("non-numeric input must not error: %v", err)
	}
	if d.Student.Year != 2 {
		t.Errorf("year = %d, want the previous value 2", d.Student.Year)
	}

	if err := d.SetField("cgpa", ""); err != nil {
		t.Fatalf("empty numeric input must not error: %v", err)
	}
	if d.Student.CGPA != 8.7 {
		t.Errorf("cgpa = %v, want the previous value 8.7", d.Student.CGPA)
	}
}

func TestSetFieldUnknown(t *testing.T) {
	d := New(record(), false)
	if err := d.SetField("favouriteColour", "blue"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("err = %v, want ErrUnknownField", err)
	}
}

func TestFeeStatusIsManualOverride(t *testing.T) {
	d := New(record(), false)
	// A fully paid ledger with an OVERDUE label is accepted; the label is
	// staff-controlled and never reconciled against the numbers.
	if err := d.SetField("paidFee", "2000"); err != nil {
		t.Fatal(err)
	}
	if err := d.SetField("feeStatus", "OVERDUE"); err != nil {
		t.Fatal(err)
	}
	if d.Student.FeeStatus != roster.FeeOverdue {
		t.Errorf("feeStatus = %s, want OVERDUE", d.Student.FeeStatus)
	}
	if d.Student.PendingFee() != 0 {
		t.Errorf("pending fee = %v, want 0", d.Student.PendingFee())
	}
}

func TestSetResultField(t *testing.T) {
	d := New(record(), false)

	if err := d.SetResultField(0, "grade", "A+"); err != nil {
		t.Fatalf("SetResultField failed: %v", err)
	}
	if d.Student.Results[0].Grade != "A+" {
		t.Errorf("grade = %q, want A+", d.Student.Results[0].Grade)
	}

	// Marks above MaxMarks are stored as entered, not clamped.
	if err := d.SetResultField(0, "marks", "120"); err != nil {
		t.Fatalf("SetResultField failed: %v", err)
	}
	if d.Student.Results[0].Marks != 120 {
		t.Errorf("marks = %v, want 120 (no clamping against maxMarks)", d.Student.Results[0].Marks)
	}

	if err := d.SetResultField(5, "marks", "50"); !errors.Is(err, ErrBadIndex) {
		t.Errorf("out-of-range err = %v, want ErrBadIndex", err)
	}
	if err := d.SetResultField(-1, "marks", "50"); !errors.Is(err, ErrBadIndex) {
		t.Errorf("negative index err = %v, want ErrBadIndex", err)
	}
}

func TestResultStatusOnlyAcceptsPassFail(t *testing.T) {
	d := New(record(), false)
	if err := d.SetResultField(0, "status", "fail"); err != nil {
		t.Fatal(err)
	}
	if d.Student.Results[0].Status != roster.ResultFail {
		t.Errorf("status = %s, want FAIL", d.Student.Results[0].Status)
	}
	if err := d.SetResultField(0, "status", "MAYBE"); err != nil {
		t.Fatal(err)
	}
	if d.Student.Results[0].Status != roster.ResultFail {
		t.Errorf("invalid status replaced the previous value: %s", d.Student.Results[0].Status)
	}
}

func TestAddSubject(t *testing.T) {
	d := New(record(), false)

	// Missing name: no-op, no error.
	if err := d.SetPendingField("code", "CS302"); err != nil {
		t.Fatal(err)
	}
	if err := d.AddSubject(); err != nil {
		t.Fatalf("AddSubject failed: %v", err)
	}
	if len(d.Student.Results) != 1 {
		t.Fatalf("results grew on incomplete pending row: len = %d", len(d.Student.Results))
	}

	if err := d.SetPendingField("name", "Operating Systems"); err != nil {
		t.Fatal(err)
	}
	if err := d.SetPendingField("marks", "74"); err != nil {
		t.Fatal(err)
	}
	if err := d.AddSubject(); err != nil {
		t.Fatalf("AddSubject failed: %v", err)
	}
	if len(d.Student.Results) != 2 {
		t.Fatalf("results len = %d, want 2", len(d.Student.Results))
	}
	added := d.Student.Results[1]
	if added.Code != "CS302" || added.Name != "Operating Systems" || added.Marks != 74 {
		t.Errorf("added row = %+v", added)
	}

	// Pending row resets to its empty defaults.
	if d.Pending.Code != "" || d.Pending.Name != "" || d.Pending.MaxMarks != 100 || d.Pending.Status != roster.ResultPass {
		t.Errorf("pending row not reset: %+v", d.Pending)
	}
}

func TestReadOnlyDraftRejectsMutations(t *testing.T) {
	d := New(record(), true)

	if err := d.SetField("name", "x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("SetField err = %v, want ErrReadOnly", err)
	}
	if err := d.SetResultField(0, "marks", "0"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("SetResultField err = %v, want ErrReadOnly", err)
	}
	if err := d.AddSubject(); !errors.Is(err, ErrReadOnly) {
		t.Errorf("AddSubject err = %v, want ErrReadOnly", err)
	}
	if err := d.BeginSave(); !errors.Is(err, ErrReadOnly) {
		t.Errorf("BeginSave err = %v, want ErrReadOnly", err)
	}
}

func TestSaveLifecycle(t *testing.T) {
	d := New(record(), false)
	now := time.Now()

	if err := d.BeginSave(); err != nil {
		t.Fatalf("BeginSave failed: %v", err)
	}
	if err := d.BeginSave(); !errors.Is(err, ErrSaveInFlight) {
		t.Errorf("second BeginSave err = %v, want ErrSaveInFlight", err)
	}

	d.FinishSave(nil, now)
	if d.Saving {
		t.Error("Saving still set after FinishSave")
	}
	msg := d.Flash(now)
	if msg == nil || msg.Kind != "success" {
		t.Fatalf("flash = %+v, want success", msg)
	}

	// The message auto-hides after its TTL.
	if d.Flash(now.Add(MessageTTL + time.Second)) != nil {
		t.Error("flash still visible past its TTL")
	}
}

func TestSaveFailureFlash(t *testing.T) {
	d := New(record(), false)
	now := time.Now()

	if err := d.BeginSave(); err != nil {
		t.Fatal(err)
	}
	d.FinishSave(errors.New("store rejected"), now)
	msg := d.Flash(now)
	if msg == nil || msg.Kind != "error" {
		t.Fatalf("flash = %+v, want error", msg)
	}
	if d.Saving {
		t.Error("Saving still set after failed save")
	}
}

func TestDraftDoesNotAliasSource(t *testing.T) {
	src := record()
	d := New(src, false)
	if err := d.SetResultField(0, "marks", "10"); err != nil {
		t.Fatal(err)
	}
	if src.Results[0].Marks != 88 {
		t.Errorf("draft edit leaked into source record: marks = %v", src.Results[0].Marks)
	}
}
