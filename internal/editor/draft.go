// Package editor implements the record edit cycle: a working copy of one
// student record, field-level mutation with a keep-old-value policy for bad
// numeric input, and an explicit save that commits the whole draft back to
// the roster.
package editor

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"campusportal/internal/roster"
)

var (
	// ErrUnknownField is returned for a field name outside the editable set.
	ErrUnknownField = errors.New("unknown field")
	// ErrBadIndex is returned when a result-row index is out of range.
	ErrBadIndex = errors.New("result index out of range")
	// ErrSaveInFlight is returned when a save is requested while one is
	// already outstanding.
	ErrSaveInFlight = errors.New("save already in progress")
)

// MessageTTL is how long a save flash message stays visible.
const MessageTTL = 3 * time.Second

// Message is a transient success/error notice shown after a save attempt.
type Message struct {
	Kind    string `json:"kind"` // "success" or "error"
	Text    string `json:"text"`
	expires time.Time
}

// Draft is the editor's working copy of a selected record. It is owned by a
// single session; the session serializes access, so Draft itself carries no
// lock.
type Draft struct {
	Student  roster.Student
	ReadOnly bool

	Saving  bool
	Pending roster.SubjectResult

	msg *Message
}

// New starts an edit cycle over a copy of the given record. readOnly drafts
// reject every mutation.
func New(s roster.Student, readOnly bool) *Draft {
	return &Draft{
		Student:  s.Clone(),
		ReadOnly: readOnly,
		Pending:  emptyPending(),
	}
}

func emptyPending() roster.SubjectResult {
	return roster.SubjectResult{MaxMarks: 100, Status: roster.ResultPass}
}

// ErrReadOnly is returned for any mutation on a student-view draft.
var ErrReadOnly = errors.New("record is read-only")

// SetField replaces one scalar attribute of the draft. Numeric fields parse
// the string value; on parse failure the previous value is kept and no error
// is reported, matching the silent-reject input policy.
func (d *Draft) SetField(name, value string) error {
	if d.ReadOnly {
		return ErrReadOnly
	}
	s := &d.Student
	switch name {
	case "name":
		s.Name = value
	case "regNo":
		s.RegNo = value
	case "email":
		s.Email = value
	case "department":
		s.Department = value
	case "avatarUrl":
		s.AvatarURL = value
	case "contact":
		s.Contact = value
	case "address":
		s.Address = value
	case "feeStatus":
		s.FeeStatus = roster.FeeStatus(strings.ToUpper(value))
	case "year":
		setInt(&s.Year, value)
	case "semester":
		setInt(&s.Semester, value)
	case "totalClasses":
		setInt(&s.TotalClasses, value)
	case "attendedClasses":
		setInt(&s.AttendedClasses, value)
	case "cgpa":
		setFloat(&s.CGPA, value)
	case "totalFee":
		setFloat(&s.TotalFee, value)
	case "paidFee":
		setFloat(&s.PaidFee, value)
	default:
		return ErrUnknownField
	}
	return nil
}

// SetResultField replaces one field of the result row at idx. Marks are not
// validated against MaxMarks; values above the maximum are stored as
// entered.
func (d *Draft) SetResultField(idx int, field, value string) error {
	if d.ReadOnly {
		return ErrReadOnly
	}
	if idx < 0 || idx >= len(d.Student.Results) {
		return ErrBadIndex
	}
	return setResultField(&d.Student.Results[idx], field, value)
}

// SetPendingField edits the in-progress add-subject row.
func (d *Draft) SetPendingField(field, value string) error {
	if d.ReadOnly {
		return ErrReadOnly
	}
	return setResultField(&d.Pending, field, value)
}

func setResultField(r *roster.SubjectResult, field, value string) error {
	switch field {
	case "code":
		r.Code = value
	case "name":
		r.Name = value
	case "grade":
		r.Grade = value
	case "status":
		up := strings.ToUpper(value)
		if up == string(roster.ResultPass) || up == string(roster.ResultFail) {
			r.Status = roster.ResultStatus(up)
		}
	case "marks":
		setFloat(&r.Marks, value)
	case "maxMarks":
		setFloat(&r.MaxMarks, value)
	default:
		return ErrUnknownField
	}
	return nil
}

// AddSubject appends the pending row to the draft's results when both code
// and name are non-empty; otherwise it is a no-op with no error surfaced.
// After a successful add the pending row resets to empty defaults.
func (d *Draft) AddSubject() error {
	if d.ReadOnly {
		return ErrReadOnly
	}
	if d.Pending.Code == "" || d.Pending.Name == "" {
		return nil
	}
	d.Student.Results = append(d.Student.Results, d.Pending)
	d.Pending = emptyPending()
	return nil
}

// BeginSave marks a save in flight. A second save while one is outstanding
// is rejected rather than queued.
func (d *Draft) BeginSave() error {
	if d.ReadOnly {
		return ErrReadOnly
	}
	if d.Saving {
		return ErrSaveInFlight
	}
	d.Saving = true
	return nil
}

// FinishSave records the commit outcome, clears the in-flight flag and sets
// the flash message that auto-hides after MessageTTL.
func (d *Draft) FinishSave(err error, now time.Time) {
	d.Saving = false
	if err != nil {
		d.msg = &Message{Kind: "error", Text: "Failed to update profile", expires: now.Add(MessageTTL)}
		return
	}
	d.msg = &Message{Kind: "success", Text: "Profile updated successfully", expires: now.Add(MessageTTL)}
}

// Flash returns the current message, or nil once it has expired.
func (d *Draft) Flash(now time.Time) *Message {
	if d.msg == nil || now.After(d.msg.expires) {
		return nil
	}
	return d.msg
}

func setInt(dst *int, value string) {
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		*dst = v
	}
}

func setFloat(dst *float64, value string) {
	if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		*dst = v
	}
}
