package model

import (
	"errors"
	"strings"
	"time"
)

// GradeType classifies how a grade was earned.
type GradeType string

const (
	GradeTypeTest     GradeType = "test"
	GradeTypeExam     GradeType = "exam"
	GradeTypeHomework GradeType = "homework"
)

// Valid reports whether the grade type is supported.
func (g GradeType) Valid() bool {
	switch g {
	case GradeTypeTest, GradeTypeExam, GradeTypeHomework:
		return true
	default:
		return false
	}
}

// Grade represents a recorded mark for a student in a course.
type Grade struct {
	ID           int64     `json:"id"            db:"id"`
	StudentID    int64     `json:"student_id"    db:"student_id"`
	CourseID     int64     `json:"course_id"     db:"course_id"`
	Value        float64   `json:"value"         db:"value"`
	Type         GradeType `json:"type"          db:"type"`
	TeacherID    int64     `json:"teacher_id"    db:"teacher_id"`
	Comments     *string   `json:"comments,omitempty" db:"comments"`
	DateRecorded time.Time `json:"date_recorded" db:"date_recorded"`
}

// CreateGradeRequest represents parameters to record a Grade.
type CreateGradeRequest struct {
	StudentID int64     `json:"student_id"`
	CourseID  int64     `json:"course_id"`
	Value     float64   `json:"value"`
	Type      GradeType `json:"type"`
	Comments  *string   `json:"comments,omitempty"`
}

// Normalize lowercases the grade type.
func (r *CreateGradeRequest) Normalize() {
	r.Type = GradeType(strings.ToLower(strings.TrimSpace(string(r.Type))))
}

// Validate validates CreateGradeRequest. Grades are on a 0-20 scale.
func (r *CreateGradeRequest) Validate() error {
	if r.StudentID <= 0 {
		return errors.New("student_id is required")
	}
	if r.CourseID <= 0 {
		return errors.New("course_id is required")
	}
	if r.Value < 0 || r.Value > 20 {
		return errors.New("value must be between 0 and 20")
	}
	if !r.Type.Valid() {
		return errors.New("type must be one of: test, exam, homework")
	}
	return nil
}
