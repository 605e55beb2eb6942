package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
)

func validCreateUser() CreateUserRequest {
	return CreateUserRequest{
		Email:     "alice@x.com",
		Password:  "StrongPass1!",
		FirstName: "Alice",
		LastName:  "Martin",
		Role:      domainauth.RoleStudent,
	}
}

func TestCreateUserRequestValidate(t *testing.T) {
	req := validCreateUser()
	req.Normalize()
	require.NoError(t, req.Validate())

	tests := []struct {
		name   string
		mutate func(*CreateUserRequest)
	}{
		{"missing email", func(r *CreateUserRequest) { r.Email = "" }},
		{"malformed email", func(r *CreateUserRequest) { r.Email = "not-an-email" }},
		{"missing password", func(r *CreateUserRequest) { r.Password = "" }},
		{"weak password", func(r *CreateUserRequest) { r.Password = "weakpass" }},
		{"missing first name", func(r *CreateUserRequest) { r.FirstName = "" }},
		{"missing last name", func(r *CreateUserRequest) { r.LastName = "" }},
		{"bad role", func(r *CreateUserRequest) { r.Role = "principal" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := validCreateUser()
			tt.mutate(&bad)
			bad.Normalize()
			assert.Error(t, bad.Validate())
		})
	}
}

func TestCreateUserRequestNormalize(t *testing.T) {
	req := validCreateUser()
	req.Email = "  Alice@X.COM "
	req.Normalize()
	assert.Equal(t, "alice@x.com", req.Email)
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"StrongPass1!", true},
		{"Abcdef1!", true},
		{"weakpass", false},     // no upper, digit, symbol
		{"Weakpass1", false},    // no symbol
		{"weakpass1!", false},   // no upper
		{"Weakpass!", false},    // no digit
		{"Sh0rt!", false},       // too short
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCreateScheduleRequestValidate(t *testing.T) {
	req := CreateScheduleRequest{
		CourseID:   1,
		DayOfWeek:  "Monday",
		StartTime:  "08:00",
		EndTime:    "10:00",
		Classroom:  "B204",
		ClassGroup: "6A",
	}
	req.Normalize()
	require.NoError(t, req.Validate())
	assert.Equal(t, "monday", req.DayOfWeek)

	bad := req
	bad.StartTime = "10:00"
	bad.EndTime = "08:00"
	assert.Error(t, bad.Validate())

	bad = req
	bad.StartTime = "25:00"
	assert.Error(t, bad.Validate())

	bad = req
	bad.DayOfWeek = "sunday"
	assert.Error(t, bad.Validate())
}
