package roster

// FeeStatus labels a student's fee standing. It is a manual override set by
// staff and is never derived from the fee ledger, even when the two disagree.
type FeeStatus string

const (
	FeePaid    FeeStatus = "PAID"
	FeePending FeeStatus = "PENDING"
	FeeOverdue FeeStatus = "OVERDUE"
)

// ResultStatus marks a subject result as passed or failed.
type ResultStatus string

const (
	ResultPass ResultStatus = "PASS"
	ResultFail ResultStatus = "FAIL"
)

// SubjectResult is one row of a student's mark sheet. Every field is
// independently staff-editable; marks are stored as entered and may exceed
// MaxMarks.
type SubjectResult struct {
	Code     string       `json:"code"`
	Name     string       `json:"name"`
	Marks    float64      `json:"marks"`
	MaxMarks float64      `json:"maxMarks"`
	Grade    string       `json:"grade"`
	Status   ResultStatus `json:"status"`
}

// Student is the sole persisted entity of the portal.
type Student struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RegNo      string `json:"regNo"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Year       int    `json:"year"`
	Semester   int    `json:"semester"`
	AvatarURL  string `json:"avatarUrl"`
	Contact    string `json:"contact"`
	Address    string `json:"address"`

	TotalClasses    int `json:"totalClasses"`
	AttendedClasses int `json:"attendedClasses"`

	FeeStatus FeeStatus `json:"feeStatus"`
	TotalFee  float64   `json:"totalFee"`
	PaidFee   float64   `json:"paidFee"`

	Results []SubjectResult `json:"results"`
	CGPA    float64         `json:"cgpa"`
}

// Clone returns a deep copy safe to mutate without touching the original.
func (s Student) Clone() Student {
	out := s
	out.Results = make([]SubjectResult, len(s.Results))
	copy(out.Results, s.Results)
	return out
}

// AttendancePercent is the attendance ratio rounded to the nearest integer
// percent. Zero total classes yields 0 rather than dividing by zero.
func (s Student) AttendancePercent() int {
	if s.TotalClasses == 0 {
		return 0
	}
	ratio := float64(s.AttendedClasses) / float64(s.TotalClasses)
	return int(ratio*100 + 0.5)
}

// PendingFee is the outstanding balance. A negative value means the student
// overpaid; it is displayed as-is, never clamped.
func (s Student) PendingFee() float64 {
	return s.TotalFee - s.PaidFee
}

// DeptAll is the sentinel department filter matching every department.
const DeptAll = "All Departments"

// Departments lists the selectable departments, excluding the sentinel.
var Departments = []string{
	"Computer Science",
	"Mechanical Engineering",
	"Electrical Engineering",
	"Civil Engineering",
	"Information Technology",
	"Biotechnology",
	"Architecture",
	"Electronics & Communication",
}
