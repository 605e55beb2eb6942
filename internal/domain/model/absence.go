package model

import (
	"errors"
	"strings"
	"time"
)

// AbsencePeriod identifies which part of the day a student missed.
type AbsencePeriod string

const (
	AbsencePeriodMorning   AbsencePeriod = "morning"
	AbsencePeriodAfternoon AbsencePeriod = "afternoon"
	AbsencePeriodFullDay   AbsencePeriod = "full_day"
)

// Valid reports whether the absence period is supported.
func (p AbsencePeriod) Valid() bool {
	switch p {
	case AbsencePeriodMorning, AbsencePeriodAfternoon, AbsencePeriodFullDay:
		return true
	default:
		return false
	}
}

// Absence represents a missed period for a student, marked by a teacher.
type Absence struct {
	ID          int64         `json:"id"           db:"id"`
	StudentID   int64         `json:"student_id"   db:"student_id"`
	Date        time.Time     `json:"date"         db:"date"`
	Period      AbsencePeriod `json:"period"       db:"period"`
	IsJustified bool          `json:"is_justified" db:"is_justified"`
	Reason      *string       `json:"reason,omitempty" db:"reason"`
	TeacherID   int64         `json:"teacher_id"   db:"teacher_id"`
	CreatedAt   time.Time     `json:"created_at"   db:"created_at"`
}

// CreateAbsenceRequest represents parameters to mark an Absence.
type CreateAbsenceRequest struct {
	StudentID   int64         `json:"student_id"`
	Date        time.Time     `json:"date"`
	Period      AbsencePeriod `json:"period"`
	IsJustified bool          `json:"is_justified"`
	Reason      *string       `json:"reason,omitempty"`
}

// Normalize lowercases the period.
func (r *CreateAbsenceRequest) Normalize() {
	r.Period = AbsencePeriod(strings.ToLower(strings.TrimSpace(string(r.Period))))
}

// Validate validates CreateAbsenceRequest.
func (r *CreateAbsenceRequest) Validate() error {
	if r.StudentID <= 0 {
		return errors.New("student_id is required")
	}
	if r.Date.IsZero() {
		return errors.New("date is required")
	}
	if !r.Period.Valid() {
		return errors.New("period must be one of: morning, afternoon, full_day")
	}
	return nil
}
