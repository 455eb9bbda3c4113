package models

// Permission is one bit in the role permission mask.
type Permission uint8

const (
	PermissionComment           Permission = 0x01
	PermissionCreateMachineData Permission = 0x02
	PermissionDeleteMachineData Permission = 0x04
	PermissionModerateComments  Permission = 0x08
	PermissionAdminister        Permission = 0x80
)
