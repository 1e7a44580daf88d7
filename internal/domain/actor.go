package domain

import "fmt"

type ActorRole string

const (
	RoleStaff   ActorRole = "staff"
	RoleCourier ActorRole = "courier"
	RoleAdmin   ActorRole = "admin"
)

func (r ActorRole) Valid() bool {
	return r == RoleStaff || r == RoleCourier || r == RoleAdmin
}

// Actor identifies who is performing a fulfillment operation. Every core
// call takes an explicit actor; there is no ambient session state.
type Actor struct {
	ID   int64
	Role ActorRole
}

// Ref is the audit-trail representation, e.g. "courier_7".
func (a Actor) Ref() string {
	return fmt.Sprintf("%s_%d", a.Role, a.ID)
}
