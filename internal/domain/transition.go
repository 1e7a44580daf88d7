package domain

type transitionKey struct {
	From OrderStatus
	Role ActorRole
}

// legalEdges is the full lifecycle DAG, role-agnostic. Administrators may
// apply any of these edges; cancellation is reachable from every
// non-terminal state (force-cancel).
var legalEdges = map[OrderStatus][]OrderStatus{
	StatusPending:         {StatusConfirmed, StatusProcessing, StatusCancelled},
	StatusConfirmed:       {StatusProcessing, StatusPickedUp, StatusCancelled},
	StatusProcessing:      {StatusReadyForPickup, StatusPickedUp, StatusCancelled},
	StatusReadyForPickup:  {StatusPickedUp, StatusCancelled},
	StatusPickedUp:        {StatusInTransit, StatusDelivered, StatusReturnRequested, StatusCancelled},
	StatusInTransit:       {StatusDelivered, StatusReturnRequested, StatusCancelled},
	StatusShipped:         {StatusProcessing, StatusPickedUp, StatusInTransit, StatusDelivered, StatusReturnRequested, StatusCancelled},
	StatusReturnRequested: {StatusReturnPickedUp, StatusCancelled},
	StatusReturnPickedUp:  {StatusReturnInTransit, StatusCancelled},
	StatusReturnInTransit: {StatusReturned, StatusCancelled},
}

// transitionTable is the role-scoped transition map, looked up directly by
// (current state, role). Packaging staff only ever move orders into
// processing; couriers own the pickup/transit/delivery leg and the return
// leg; admins get the whole DAG via legalEdges.
var transitionTable = map[transitionKey][]OrderStatus{
	{StatusPending, RoleStaff}:   {StatusProcessing},
	{StatusConfirmed, RoleStaff}: {StatusProcessing},
	{StatusShipped, RoleStaff}:   {StatusProcessing},

	{StatusProcessing, RoleCourier}:      {StatusPickedUp},
	{StatusConfirmed, RoleCourier}:       {StatusPickedUp},
	{StatusShipped, RoleCourier}:         {StatusPickedUp, StatusInTransit, StatusDelivered, StatusReturnRequested},
	{StatusPickedUp, RoleCourier}:        {StatusInTransit, StatusDelivered, StatusReturnRequested},
	{StatusInTransit, RoleCourier}:       {StatusDelivered, StatusReturnRequested},
	{StatusReturnRequested, RoleCourier}: {StatusReturnPickedUp},
	{StatusReturnPickedUp, RoleCourier}:  {StatusReturnInTransit},
	{StatusReturnInTransit, RoleCourier}: {StatusReturned},
}

// TargetsFor returns the set of states the role may move an order into
// from the given state.
func TargetsFor(from OrderStatus, role ActorRole) []OrderStatus {
	if from.Terminal() {
		return nil
	}
	if role == RoleAdmin {
		return legalEdges[from]
	}
	return transitionTable[transitionKey{From: from, Role: role}]
}

// CanTransition reports whether the (from, to, role) triple is in the
// transition table. It returns *InvalidTransitionError otherwise.
func CanTransition(from, to OrderStatus, role ActorRole) error {
	for _, allowed := range TargetsFor(from, role) {
		if allowed == to {
			return nil
		}
	}
	return &InvalidTransitionError{Current: from, Requested: to, Role: role}
}
