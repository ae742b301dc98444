package view

// Role is the access tier of a portal session.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
	RoleNone    Role = "NONE"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleNone:
		return true
	}
	return false
}

// CanEdit reports whether the role may mutate student records.
func (r Role) CanEdit() bool { return r == RoleAdmin }

// State names the currently rendered screen. Exactly one is active per
// session; transitions happen only on explicit user actions.
type State string

const (
	StateHome             State = "HOME"
	StateLoginStaff       State = "LOGIN_STAFF"
	StateLoginStudent     State = "LOGIN_STUDENT"
	StateDashboardStaff   State = "DASHBOARD_STAFF"
	StateDashboardStudent State = "DASHBOARD_STUDENT"
	StateCollegeDetails   State = "COLLEGE_DETAILS"
	StateAdmissions       State = "ADMISSIONS"
)

// All lists every dispatchable state, in navigation order.
var All = []State{
	StateHome,
	StateLoginStaff,
	StateLoginStudent,
	StateDashboardStaff,
	StateDashboardStudent,
	StateCollegeDetails,
	StateAdmissions,
}

// Valid reports whether s is one of the enumerated states.
func (s State) Valid() bool {
	for _, st := range All {
		if s == st {
			return true
		}
	}
	return false
}
