package physics

// EventKind names something the simulation wants collaborators to react to.
type EventKind int

const (
	EventJump EventKind = iota
	EventBounce
	EventIncident
	EventTargetReached
)

func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventBounce:
		return "bounce"
	case EventIncident:
		return "incident"
	case EventTargetReached:
		return "target"
	default:
		return "unknown"
	}
}

// Cause tells why a player incident happened.
type Cause int

const (
	CauseNone Cause = iota
	CauseEnemy
	CauseFall
)

func (c Cause) String() string {
	switch c {
	case CauseEnemy:
		return "enemy"
	case CauseFall:
		return "fall"
	default:
		return "none"
	}
}

// Event is emitted by Step. Index is the shape (bounce, target) or enemy
// (enemy incident) involved, -1 otherwise.
type Event struct {
	Kind  EventKind
	Cause Cause
	Index int
}
