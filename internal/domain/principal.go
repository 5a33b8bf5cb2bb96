package domain

// Principal is the authenticated caller, resolved by the auth middleware and
// passed explicitly to whatever needs it. The evaluator itself never reads
// identity: authorization and eligibility are separate concerns.
type Principal struct {
	ID    string
	Email string
	Role  Role
}

// Role is a caller's access level.
type Role string

const (
	// RoleTeller can run eligibility evaluations and view accounts.
	RoleTeller Role = "teller"

	// RoleSupervisor can do everything a teller can, plus read the decision log.
	RoleSupervisor Role = "supervisor"

	// RoleAuditor can only read the decision log.
	RoleAuditor Role = "auditor"
)

var validRoles = map[Role]bool{
	RoleTeller:     true,
	RoleSupervisor: true,
	RoleAuditor:    true,
}

// IsValid checks if the role is a known role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanEvaluate checks if the role may run eligibility evaluations.
func (r Role) CanEvaluate() bool {
	return r == RoleTeller || r == RoleSupervisor
}

// CanViewDecisions checks if the role may read the decision log.
func (r Role) CanViewDecisions() bool {
	return r == RoleSupervisor || r == RoleAuditor
}

// CanViewAccounts checks if the role may read account snapshots.
func (r Role) CanViewAccounts() bool {
	return r.IsValid()
}
