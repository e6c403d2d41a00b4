package models

// Permission constants
const (
	// Account permissions
	PermissionAccountRead  = "account:read"
	PermissionAccountWrite = "account:write"

	// Transfer permissions
	PermissionTransferRead  = "transfer:read"
	PermissionTransferWrite = "transfer:write"

	// Fraud tooling permissions
	PermissionFraudRead = "fraud:read"

	// Operator permissions
	PermissionStatsRead = "stats:read"
)

// Operator roles
const (
	RoleAdmin   = "admin"
	RoleAgent   = "agent"
	RoleAuditor = "auditor"
)

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionAccountRead,
			PermissionAccountWrite,
			PermissionTransferRead,
			PermissionTransferWrite,
			PermissionFraudRead,
			PermissionStatsRead,
		}
	case RoleAgent:
		return []string{
			PermissionAccountRead,
			PermissionAccountWrite,
			PermissionTransferRead,
			PermissionTransferWrite,
			PermissionFraudRead,
		}
	case RoleAuditor:
		return []string{
			PermissionAccountRead,
			PermissionTransferRead,
			PermissionFraudRead,
			PermissionStatsRead,
		}
	default:
		return []string{}
	}
}
