package auth

// Permission names a single capability a role may hold.
type Permission string

const (
	PermViewGrades        Permission = "view_grades"
	PermViewSchedule      Permission = "view_schedule"
	PermViewProfile       Permission = "view_profile"
	PermViewChildGrades   Permission = "view_child_grades"
	PermViewChildSchedule Permission = "view_child_schedule"
	PermViewChildAbsences Permission = "view_child_absences"
	PermAddGrades         Permission = "add_grades"
	PermMarkAbsences      Permission = "mark_absences"
	PermViewClasses       Permission = "view_classes"
	PermManageUsers       Permission = "manage_users"
	PermManageCourses     Permission = "manage_courses"
	PermManageSchedule    Permission = "manage_schedule"
	PermViewAuditLog      Permission = "view_audit_log"
)

// rolePermissions is the static role -> permission-set table, built once at
// process start and never mutated afterwards.
//
//nolint:gochecknoglobals // static read-only lookup table
var rolePermissions = map[Role]map[Permission]struct{}{
	RoleStudent: permSet(PermViewGrades, PermViewSchedule, PermViewProfile),
	RoleParent:  permSet(PermViewChildGrades, PermViewChildSchedule, PermViewChildAbsences, PermViewProfile),
	RoleTeacher: permSet(PermAddGrades, PermMarkAbsences, PermViewClasses, PermViewProfile),
	RoleAdmin: permSet(
		PermManageUsers,
		PermManageCourses,
		PermManageSchedule,
		PermViewAuditLog,
		PermViewProfile,
	),
}

func permSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// HasPermission reports whether the given role grants the given permission.
// Unknown roles hold no permissions.
func HasPermission(role Role, perm Permission) bool {
	set, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}
