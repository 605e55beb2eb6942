//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
)

const (
	maxEmailLen = 120
	maxNameLen  = 50
	maxPhoneLen = 20
)

// User represents an account in the intranet. PasswordHash is the only
// credential material ever persisted; plaintext passwords never leave the
// request that carried them.
type User struct {
	ID           int64           `json:"id"            db:"id"`
	Email        string          `json:"email"         db:"email"`
	PasswordHash string          `json:"-"             db:"password_hash"`
	FirstName    string          `json:"first_name"    db:"first_name"`
	LastName     string          `json:"last_name"     db:"last_name"`
	Phone        *string         `json:"phone,omitempty" db:"phone"`
	Role         domainauth.Role `json:"role"          db:"role"`
	IsActive     bool            `json:"is_active"     db:"is_active"`

	// MFASecret holds the single live verification code for the account.
	// Issuing a new code overwrites it; it is never serialized to clients.
	MFASecret   *string    `json:"-"           db:"mfa_secret"`
	MFAVerified bool       `json:"-"           db:"mfa_verified"`
	LastLogin   *time.Time `json:"last_login,omitempty" db:"last_login"`
	CreatedAt   time.Time  `json:"created_at"  db:"created_at"`
}

// CreateUserRequest represents parameters to register a User.
// Password is consumed by the service layer and hashed before storage.
type CreateUserRequest struct {
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Phone     *string         `json:"phone,omitempty"`
	Role      domainauth.Role `json:"role"`
}

// UpdateUserRequest represents parameters to update a User. Nil fields are
// left untouched.
type UpdateUserRequest struct {
	Email     *string          `json:"email,omitempty"`
	FirstName *string          `json:"first_name,omitempty"`
	LastName  *string          `json:"last_name,omitempty"`
	Phone     *string          `json:"phone,omitempty"`
	Role      *domainauth.Role `json:"role,omitempty"`
	IsActive  *bool            `json:"is_active,omitempty"`
}

// Normalize trims and lowercases fields that are compared case-insensitively.
func (r *CreateUserRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

// Validate validates CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if utf8.RuneCountInString(r.Email) > maxEmailLen {
		return errors.New("email cannot exceed 120 characters")
	}
	if !strings.Contains(r.Email, "@") {
		return errors.New("email is not valid")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	if err := ValidatePasswordStrength(r.Password); err != nil {
		return err
	}
	if r.FirstName == "" || r.LastName == "" {
		return errors.New("first_name and last_name are required")
	}
	if utf8.RuneCountInString(r.FirstName) > maxNameLen || utf8.RuneCountInString(r.LastName) > maxNameLen {
		return errors.New("names cannot exceed 50 characters")
	}
	if r.Phone != nil && utf8.RuneCountInString(*r.Phone) > maxPhoneLen {
		return errors.New("phone cannot exceed 20 characters")
	}
	if !r.Role.Valid() {
		return errors.New("role must be one of: student, parent, teacher, admin")
	}
	return nil
}

// Validate validates UpdateUserRequest.
func (r *UpdateUserRequest) Validate() error {
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		if email == "" || !strings.Contains(email, "@") {
			return errors.New("email is not valid")
		}
		if utf8.RuneCountInString(email) > maxEmailLen {
			return errors.New("email cannot exceed 120 characters")
		}
		r.Email = &email
	}
	if r.Role != nil && !r.Role.Valid() {
		return errors.New("role must be one of: student, parent, teacher, admin")
	}
	if r.FirstName != nil && strings.TrimSpace(*r.FirstName) == "" {
		return errors.New("first_name cannot be empty")
	}
	if r.LastName != nil && strings.TrimSpace(*r.LastName) == "" {
		return errors.New("last_name cannot be empty")
	}
	return nil
}

// ValidatePasswordStrength enforces the minimum password policy: at least
// 8 characters with one upper-case letter, one digit, and one symbol.
func ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	var hasUpper, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune("!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~", c):
			hasSymbol = true
		}
	}
	if !hasUpper || !hasDigit || !hasSymbol {
		return errors.New("password must contain an upper-case letter, a digit, and a symbol")
	}
	return nil
}

// ParentChildLink ties a parent account to a student account.
type ParentChildLink struct {
	ID           int64  `json:"id"            db:"id"`
	ParentID     int64  `json:"parent_id"     db:"parent_id"`
	StudentID    int64  `json:"student_id"    db:"student_id"`
	Relationship string `json:"relationship"  db:"relationship"` // father, mother, guardian
}

// UsersListOptions controls paging and filtering for listing users.
type UsersListOptions struct {
	Limit  int
	Offset int
	Role   *domainauth.Role // exact match
	Q      *string          // substring match on email or last name (ILIKE)
}

// Normalize applies defaults to list options.
func (o *UsersListOptions) Normalize() {
	if o.Limit <= 0 {
		o.Limit = 50
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}
