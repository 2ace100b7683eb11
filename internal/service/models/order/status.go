package order

// Status is the lifecycle state of an order.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// Terminal reports whether no further transitions are permitted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ParseStatus parses a stored status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusWaiting, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrValidation
	}
}

// EventKind names a lifecycle transition.
type EventKind string

const (
	EventAssign   EventKind = "assign"
	EventStart    EventKind = "start"
	EventComplete EventKind = "complete"
	EventCancel   EventKind = "cancel"
)

var transitionMap = map[EventKind][]Status{
	EventAssign:   {StatusWaiting},
	EventStart:    {StatusAssigned},
	EventComplete: {StatusInProgress},
	EventCancel:   {StatusWaiting, StatusAssigned},
}

var eventTarget = map[EventKind]Status{
	EventAssign:   StatusAssigned,
	EventStart:    StatusInProgress,
	EventComplete: StatusCompleted,
	EventCancel:   StatusCancelled,
}

// ValidTransition reports whether kind is a legal edge from the given status.
func ValidTransition(kind EventKind, from Status) bool {
	allowed, ok := transitionMap[kind]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == from {
			return true
		}
	}
	return false
}

// Target returns the status an event transitions into.
func Target(kind EventKind) (Status, bool) {
	s, ok := eventTarget[kind]
	return s, ok
}
