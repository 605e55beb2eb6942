package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionShapes(t *testing.T) {
	anon := Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, anon.IsPending())
	assert.False(t, anon.IsAuthenticated())
	assert.False(t, anon.IsStuck())

	pending := Session{ID: "s2", PendingUserID: 7, PendingIssuedAt: time.Now()}
	assert.True(t, pending.IsPending())
	assert.False(t, pending.IsAuthenticated())

	authed := Session{ID: "s3", UserID: 7, Role: RoleStudent, MFAVerified: true}
	assert.False(t, authed.IsPending())
	assert.True(t, authed.IsAuthenticated())
	assert.False(t, authed.IsStuck())

	// Authenticated marker without completed MFA is the repair case.
	stuck := Session{ID: "s4", UserID: 7, Role: RoleStudent}
	assert.True(t, stuck.IsStuck())
	assert.False(t, stuck.IsAuthenticated())
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleStudent, RoleParent, RoleTeacher, RoleAdmin} {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("principal").Valid())
	assert.False(t, Role("").Valid())
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleStudent, PermViewGrades, true},
		{RoleStudent, PermAddGrades, false},
		{RoleParent, PermViewChildGrades, true},
		{RoleParent, PermViewGrades, false},
		{RoleTeacher, PermAddGrades, true},
		{RoleTeacher, PermMarkAbsences, true},
		{RoleTeacher, PermManageUsers, false},
		{RoleAdmin, PermManageUsers, true},
		{RoleAdmin, PermManageCourses, true},
		{RoleAdmin, PermAddGrades, false},
		{Role("unknown"), PermViewGrades, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.perm), func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.perm))
		})
	}
}
