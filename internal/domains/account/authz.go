package account

// Role labels carried by a principal.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Principal is the authenticated identity acting on a request, resolved by
// the transport layer before any service method runs. It is request-scoped
// and never persisted here.
type Principal struct {
	AccountID int64
	Roles     []string
}

// HasRole reports whether the principal carries the given role label.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanAct is the authorization policy gating every mutating or
// principal-scoped account operation: an admin may act on any account, a
// regular principal only on its own. Pure, no I/O; it must run before any
// store mutation.
func CanAct(p Principal, targetAccountID int64) bool {
	return p.HasRole(RoleAdmin) || p.AccountID == targetAccountID
}
