// Package session keeps the per-login portal state: role, current view,
// selected record and edit draft. Sessions live in memory for the lifetime
// of the process; the external auth provider owns the real identity.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"campusportal/internal/captcha"
	"campusportal/internal/editor"
	"campusportal/internal/roster"
	"campusportal/internal/view"
)

var (
	// ErrNotFound is returned when no session matches the given id.
	ErrNotFound = errors.New("session not found")
	// ErrBusy is returned when an operation is rejected because another
	// request for the same session is still in flight.
	ErrBusy = errors.New("request already in progress")
	// ErrBadView is returned for a navigation target outside the enum.
	ErrBadView = errors.New("unknown view")
)

// Session is one authenticated portal session. All access goes through its
// mutex; handlers do not touch fields directly.
type Session struct {
	mu sync.Mutex

	ID        string
	Email     string
	CreatedAt time.Time

	role     view.Role
	state    view.State
	selected string // record id, empty when none
	draft    *editor.Draft
	captcha  *captcha.Challenge
	busy     bool // login/save request outstanding
}

// Snapshot is a read-only view of session state for rendering.
type Snapshot struct {
	Email    string
	Role     view.Role
	State    view.State
	Selected string
	Draft    *editor.Draft
}

// Manager is the in-memory session registry.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *zap.Logger
}

// NewManager creates an empty registry.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Create opens a fresh session for an authenticated account. The session
// starts with no portal role and the home view.
func (m *Manager) Create(email string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now(),
		role:      view.RoleNone,
		state:     view.StateHome,
		captcha:   captcha.New(),
	}
	m.sessions[s.ID] = s
	m.logger.Info("session created", zap.String("session_id", s.ID), zap.String("email", email))
	return s
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// End removes a session on logout.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		delete(m.sessions, id)
		m.logger.Info("session ended", zap.String("session_id", id))
	}
}

// Snapshot returns a consistent copy of the session's render state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Email:    s.Email,
		Role:     s.role,
		State:    s.state,
		Selected: s.selected,
		Draft:    s.draft,
	}
}

// Role returns the session's portal role.
func (s *Session) Role() view.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// Captcha returns the session's login challenge.
func (s *Session) Captcha() *captcha.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captcha
}

// Navigate performs an explicit view transition. Returning home clears the
// selected record and discards any draft.
func (s *Session) Navigate(target view.State) error {
	if !target.Valid() {
		return ErrBadView
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = target
	if target == view.StateHome {
		s.selected = ""
		s.draft = nil
	}
	return nil
}

// EnterDashboard assigns the portal role after a successful mock login and
// moves to the matching dashboard. For students the matched record is
// selected with a read-only draft.
func (s *Session) EnterDashboard(role view.Role, rec *roster.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = role
	if role == view.RoleStudent && rec != nil {
		s.selected = rec.ID
		s.draft = editor.New(*rec, true)
		s.state = view.StateDashboardStudent
		return
	}
	s.selected = ""
	s.draft = nil
	s.state = view.StateDashboardStaff
}

// Select opens the editor over the given record. Staff drafts are editable,
// everyone else gets a read-only copy.
func (s *Session) Select(rec roster.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = rec.ID
	s.draft = editor.New(rec, !s.role.CanEdit())
	s.state = view.StateDashboardStaff
	if s.role == view.RoleStudent {
		s.state = view.StateDashboardStudent
	}
}

// CancelEdit discards the draft without committing. Staff return to the
// directory; students return home.
func (s *Session) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
	s.draft = nil
	if s.role == view.RoleAdmin {
		s.state = view.StateDashboardStaff
		return
	}
	s.state = view.StateHome
}

// Draft returns the active draft, or nil when no record is open.
func (s *Session) Draft() *editor.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// WithDraft runs fn with the draft under the session lock, so the edit
// operations of one session never interleave.
func (s *Session) WithDraft(fn func(*editor.Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return errors.New("no record selected")
	}
	return fn(s.draft)
}

// Begin marks a blocking request (login or save) in flight; a second one is
// rejected until End is called.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

// End clears the in-flight marker.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}
