package domain

// UserRole is the back-office role assigned to an employee account.
type UserRole string

const (
	RoleEmployee   UserRole = "EMPLOYEE"
	RoleApproverL1 UserRole = "APPROVER_L1"
	RoleApproverL2 UserRole = "APPROVER_L2"
	RoleHRAdmin    UserRole = "HR_ADMIN"
)

// Capability names an action a role may perform. Services check capabilities,
// never roles, so the ladder below is the single place the mapping lives.
type Capability string

const (
	CapManageLiquidation Capability = "manage_liquidation"
	CapApproveLevel1     Capability = "approve_liquidations_level1"
	CapApproveLevel2     Capability = "approve_liquidations_level2"
	CapApproveCashAdv    Capability = "approve_cash_advances"
	CapManageUsers       Capability = "manage_users"
)

var roleCapabilities = map[UserRole]map[Capability]bool{
	RoleEmployee: {},
	RoleApproverL1: {
		CapApproveLevel1: true,
	},
	RoleApproverL2: {
		CapApproveLevel2: true,
	},
	RoleHRAdmin: {
		CapManageLiquidation: true,
		CapApproveLevel1:     true,
		CapApproveLevel2:     true,
		CapApproveCashAdv:    true,
		CapManageUsers:       true,
	},
}

// HasCapability reports whether the role grants the capability.
func (r UserRole) HasCapability(cap Capability) bool {
	return roleCapabilities[r][cap]
}

// User represents an employee account of the back office.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"` // bcrypt hash, never serialized
	Role         UserRole `json:"role"`
	AuditFields
}
