package domain

import "time"

// Worker is a packaging staff member or a courier. City is the operating
// region used for assignment matching; FallbackPool marks members of the
// default pool that absorbs orders with no city match.
type Worker struct {
	ID           int64
	Name         string
	Role         ActorRole
	City         string
	Active       bool
	FallbackPool bool
	CreatedAt    time.Time
}
