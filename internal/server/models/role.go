package models

// Role is a named bundle of permission bits assigned to users.
// Exactly one role carries Default=true; it is assigned to new users
// that do not match the configured admin email.
type Role struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Default     bool       `db:"default"`
	Permissions Permission `db:"permissions"`
}

// Can reports whether the role grants every bit of the requested mask.
// Partial overlap is not sufficient. A nil role grants nothing.
func (r *Role) Can(p Permission) bool {
	return r != nil && r.Permissions&p == p
}

// SeedRoles returns the canonical role set. Seeding upserts by name,
// so re-running it updates existing rows instead of duplicating them.
func SeedRoles() []Role {
	return []Role{
		{
			Name:        "User",
			Default:     true,
			Permissions: PermissionComment | PermissionCreateMachineData,
		},
		{
			Name:    "Moderator",
			Default: false,
			Permissions: PermissionComment | PermissionCreateMachineData |
				PermissionDeleteMachineData | PermissionModerateComments,
		},
		{
			Name:        "Administrator",
			Default:     false,
			Permissions: 0xFF,
		},
	}
}
