package roster

import "testing"

func testStudents() []Student {
	return []Student{
		{ID: "s1", Name: "Arjun Ramesh", RegNo: "CS2023001", Department: "Computer Science"},
		{ID: "s2", Name: "Priya Venkatesan", RegNo: "IT2023014", Department: "Information Technology"},
		{ID: "s3", Name: "Karthik Subramanian", RegNo: "CS2023077", Department: "Computer Science"},
	}
}

func ids(students []Student) []string {
	out := make([]string, len(students))
	for i, s := range students {
		out[i] = s.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	st := NewStore(testStudents())

	tests := []struct {
		name   string
		search string
		dept   string
		want   []string
	}{
		{"no predicate returns all", "", DeptAll, []string{"s1", "s2", "s3"}},
		{"search matches regNo case-insensitively", "cs20", DeptAll, []string{"s1", "s3"}},
		{"search matches name", "priya", DeptAll, []string{"s2"}},
		{"department narrows search", "20", "Computer Science", []string{"s1", "s3"}},
		{"both predicates must hold", "priya", "Computer Science", nil},
		{"empty dept behaves like sentinel", "it2023", "", []string{"s2"}},
		{"no match", "zzz", DeptAll, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(st.Filter(tc.search, tc.dept))
			if len(got) != len(tc.want) {
				t.Fatalf("Filter(%q, %q) = %v, want %v", tc.search, tc.dept, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Filter(%q, %q)[%d] = %s, want %s", tc.search, tc.dept, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestFilterPreservesStoreOrder(t *testing.T) {
	st := NewStore(testStudents())
	got := ids(st.Filter("", DeptAll))
	want := []string{"s1", "s2", "s3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("store order not preserved: got %v", got)
		}
	}
}

func TestGetByRegNoCaseInsensitive(t *testing.T) {
	st := NewStore(testStudents())

	for _, input := range []string{"CS2023001", "cs2023001", "Cs2023001"} {
		s, err := st.GetByRegNo(input)
		if err != nil {
			t.Fatalf("GetByRegNo(%q) failed: %v", input, err)
		}
		if s.ID != "s1" {
			t.Errorf("GetByRegNo(%q) = %s, want s1", input, s.ID)
		}
	}

	if _, err := st.GetByRegNo("EE0000000"); err != ErrNotFound {
		t.Errorf("GetByRegNo(unknown) err = %v, want ErrNotFound", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	st := NewStore(testStudents())

	s, err := st.Get("s2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	s.Name = "Priya V"
	s.PaidFee = 2500
	s.TotalFee = 2000
	if err := st.Save(s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := st.Get("s2")
	if err != nil {
		t.Fatalf("Get after save failed: %v", err)
	}
	if got.Name != "Priya V" {
		t.Errorf("saved name = %q, want %q", got.Name, "Priya V")
	}
	if got.PendingFee() != -500 {
		t.Errorf("pending fee = %v, want -500 (overpayment is not clamped)", got.PendingFee())
	}

	// Position in listings must be stable across edits.
	got2 := ids(st.All())
	if got2[1] != "s2" {
		t.Errorf("record moved after save: order %v", got2)
	}
}

func TestSaveUnknownID(t *testing.T) {
	st := NewStore(testStudents())
	if err := st.Save(Student{ID: "ghost"}); err != ErrNotFound {
		t.Errorf("Save(unknown) err = %v, want ErrNotFound", err)
	}
}

func TestStoreCopiesAreIsolated(t *testing.T) {
	st := NewStore([]Student{{
		ID:      "s1",
		RegNo:   "CS2023001",
		Results: []SubjectResult{{Code: "CS301", Marks: 80}},
	}})

	s, _ := st.Get("s1")
	s.Results[0].Marks = 999

	fresh, _ := st.Get("s1")
	if fresh.Results[0].Marks != 80 {
		t.Errorf("mutating a returned copy leaked into the store: marks = %v", fresh.Results[0].Marks)
	}
}

func TestAttendancePercent(t *testing.T) {
	tests := []struct {
		attended, total int
		want            int
	}{
		{0, 0, 0}, // zero classes must not divide by zero
		{37, 40, 93},
		{36, 36, 100},
		{1, 3, 33},
		{2, 3, 67},
	}
	for _, tc := range tests {
		s := Student{AttendedClasses: tc.attended, TotalClasses: tc.total}
		if got := s.AttendancePercent(); got != tc.want {
			t.Errorf("AttendancePercent(%d/%d) = %d, want %d", tc.attended, tc.total, got, tc.want)
		}
	}
}

func TestPendingFee(t *testing.T) {
	s := Student{TotalFee: 2000, PaidFee: 500}
	if got := s.PendingFee(); got != 1500 {
		t.Errorf("PendingFee = %v, want 1500", got)
	}
	s.PaidFee = 2500
	if got := s.PendingFee(); got != -500 {
		t.Errorf("PendingFee = %v, want -500", got)
	}
}
