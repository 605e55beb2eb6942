package model

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	maxCourseNameLen = 100
	maxCourseCodeLen = 20
)

// Course represents a taught course. TeacherID references the teaching
// user's account.
type Course struct {
	ID          int64   `json:"id"          db:"id"`
	Name        string  `json:"name"        db:"name"`
	Code        string  `json:"code"        db:"code"`
	Description *string `json:"description,omitempty" db:"description"`
	Credits     int     `json:"credits"     db:"credits"`
	TeacherID   int64   `json:"teacher_id"  db:"teacher_id"`
	ClassGroup  string  `json:"class_group" db:"class_group"`
}

// CreateCourseRequest represents parameters to create a Course.
type CreateCourseRequest struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
	Credits     int     `json:"credits"`
	TeacherID   int64   `json:"teacher_id"`
	ClassGroup  string  `json:"class_group"`
}

// UpdateCourseRequest represents parameters to update a Course.
type UpdateCourseRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Credits     *int    `json:"credits,omitempty"`
	TeacherID   *int64  `json:"teacher_id,omitempty"`
	ClassGroup  *string `json:"class_group,omitempty"`
}

// Normalize trims user-supplied fields and uppercases the course code.
func (r *CreateCourseRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.ClassGroup = strings.TrimSpace(r.ClassGroup)
	if r.Credits == 0 {
		r.Credits = 1
	}
}

// Validate validates CreateCourseRequest.
func (r *CreateCourseRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(r.Name) > maxCourseNameLen {
		return errors.New("name cannot exceed 100 characters")
	}
	if r.Code == "" {
		return errors.New("code is required")
	}
	if utf8.RuneCountInString(r.Code) > maxCourseCodeLen {
		return errors.New("code cannot exceed 20 characters")
	}
	if r.Credits <= 0 {
		return errors.New("credits must be > 0")
	}
	if r.TeacherID <= 0 {
		return errors.New("teacher_id is required")
	}
	if r.ClassGroup == "" {
		return errors.New("class_group is required")
	}
	return nil
}

// Validate validates UpdateCourseRequest.
func (r *UpdateCourseRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if r.Credits != nil && *r.Credits <= 0 {
		return errors.New("credits must be > 0")
	}
	if r.TeacherID != nil && *r.TeacherID <= 0 {
		return errors.New("teacher_id must be > 0")
	}
	return nil
}
