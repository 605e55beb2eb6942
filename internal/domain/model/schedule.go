package model

import (
	"errors"
	"strings"
)

// validDays holds the accepted day_of_week values, lowercased.
//
//nolint:gochecknoglobals // static read-only lookup
var validDays = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {}, "friday": {}, "saturday": {},
}

// Schedule represents one recurring slot of a course for a class group.
// StartTime/EndTime are "HH:MM" wall-clock strings, matching the TIME
// columns they map to.
type Schedule struct {
	ID         int64  `json:"id"          db:"id"`
	CourseID   int64  `json:"course_id"   db:"course_id"`
	DayOfWeek  string `json:"day_of_week" db:"day_of_week"`
	StartTime  string `json:"start_time"  db:"start_time"`
	EndTime    string `json:"end_time"    db:"end_time"`
	Classroom  string `json:"classroom"   db:"classroom"`
	ClassGroup string `json:"class_group" db:"class_group"`
}

// CreateScheduleRequest represents parameters to create a Schedule slot.
type CreateScheduleRequest struct {
	CourseID   int64  `json:"course_id"`
	DayOfWeek  string `json:"day_of_week"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Classroom  string `json:"classroom"`
	ClassGroup string `json:"class_group"`
}

// Normalize lowercases the day and trims free-text fields.
func (r *CreateScheduleRequest) Normalize() {
	r.DayOfWeek = strings.ToLower(strings.TrimSpace(r.DayOfWeek))
	r.Classroom = strings.TrimSpace(r.Classroom)
	r.ClassGroup = strings.TrimSpace(r.ClassGroup)
}

// Validate validates CreateScheduleRequest.
func (r *CreateScheduleRequest) Validate() error {
	if r.CourseID <= 0 {
		return errors.New("course_id is required")
	}
	if _, ok := validDays[r.DayOfWeek]; !ok {
		return errors.New("day_of_week must be a weekday name")
	}
	if !validWallClock(r.StartTime) || !validWallClock(r.EndTime) {
		return errors.New("start_time and end_time must be HH:MM")
	}
	if r.StartTime >= r.EndTime {
		return errors.New("start_time must be before end_time")
	}
	if r.Classroom == "" {
		return errors.New("classroom is required")
	}
	if r.ClassGroup == "" {
		return errors.New("class_group is required")
	}
	return nil
}

// validWallClock accepts "HH:MM" with HH 00-23 and MM 00-59. Lexicographic
// comparison of two valid values matches chronological order.
func validWallClock(v string) bool {
	if len(v) != 5 || v[2] != ':' {
		return false
	}
	for i, c := range []byte(v) {
		if i == 2 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return v[:2] < "24" && v[3:] < "60"
}
