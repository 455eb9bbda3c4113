package models

import "testing"

func TestRole_Can(t *testing.T) {
	t.Parallel()

	user := &Role{Name: "User", Permissions: PermissionComment | PermissionCreateMachineData}
	moderator := &Role{Name: "Moderator", Permissions: PermissionComment |
		PermissionCreateMachineData | PermissionDeleteMachineData | PermissionModerateComments}
	admin := &Role{Name: "Administrator", Permissions: 0xFF}

	tests := []struct {
		name string
		role *Role
		mask Permission
		want bool
	}{
		{"user can comment", user, PermissionComment, true},
		{"user can create machine data", user, PermissionCreateMachineData, true},
		{"user cannot moderate", user, PermissionModerateComments, false},
		{"user cannot administer", user, PermissionAdminister, false},
		{"partial overlap is insufficient", user, PermissionComment | PermissionModerateComments, false},
		{"moderator holds combined mask", moderator, PermissionDeleteMachineData | PermissionModerateComments, true},
		{"moderator cannot administer", moderator, PermissionAdminister, false},
		{"admin holds everything", admin, PermissionComment | PermissionCreateMachineData |
			PermissionDeleteMachineData | PermissionModerateComments | PermissionAdminister, true},
		{"nil role yields false", nil, PermissionComment, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.Can(tt.mask); got != tt.want {
				t.Fatalf("Can(%#x) = %v, want %v", tt.mask, got, tt.want)
			}
		})
	}
}

func TestSeedRoles_ExactlyOneDefault(t *testing.T) {
	t.Parallel()

	defaults := 0
	for _, r := range SeedRoles() {
		if r.Default {
			defaults++
			if r.Name != "User" {
				t.Fatalf("default role is %q, want User", r.Name)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default role, got %d", defaults)
	}
}

func TestUser_CanAndIsAdministrator(t *testing.T) {
	t.Parallel()

	var anonymous *User
	if anonymous.Can(PermissionComment) {
		t.Fatalf("anonymous user must not hold any permission")
	}
	if anonymous.IsAdministrator() {
		t.Fatalf("anonymous user must not be administrator")
	}

	noRole := &User{}
	if noRole.Can(PermissionComment) {
		t.Fatalf("user without loaded role must not hold permissions")
	}

	admin := &User{Role: &Role{Permissions: 0xFF}}
	if !admin.IsAdministrator() {
		t.Fatalf("0xFF role must satisfy Administer")
	}
}
