package identity

// Role names are data supplied by the external auth layer. Workflow code
// never branches on a Role literal; it asks for capabilities instead, so
// adding a role only touches the table below.
type Role string

const (
	RoleAgent         Role = "agent"
	RoleCreditOfficer Role = "credit_officer"
	RoleSupervisor    Role = "supervisor"
	RoleAdmin         Role = "admin"
)

type Capability uint8

const (
	// CanDecideReview: may approve or deny review requests in scope.
	CanDecideReview Capability = 1 << iota
	// CanEditAnyLoan: may mutate protected records directly, bypassing review.
	CanEditAnyLoan
	// CanSeeAllReviews: sees every review request in the tenant.
	CanSeeAllReviews
	// ScopedToAssignedLoans: review visibility is limited to loan-typed
	// requests whose target loan is assigned to the actor.
	ScopedToAssignedLoans
)

var roleCaps = map[Role]Capability{
	RoleAgent:         0,
	RoleCreditOfficer: CanDecideReview | ScopedToAssignedLoans,
	RoleSupervisor:    CanDecideReview | CanEditAnyLoan | CanSeeAllReviews,
	RoleAdmin:         CanDecideReview | CanEditAnyLoan | CanSeeAllReviews,
}

func (r Role) Known() bool {
	_, ok := roleCaps[r]
	return ok
}

func (r Role) Can(c Capability) bool { return roleCaps[r]&c == c }

// Actor is the identity context resolved by the external authentication
// layer. The core trusts it; it never authenticates credentials itself.
type Actor struct {
	ID       string
	TenantID string
	Role     Role
}

func (a Actor) Can(c Capability) bool { return a.Role.Can(c) }
