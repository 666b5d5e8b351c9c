package log

// EventType enumerates all observable field events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventPhaseChange
	EventDraw
	EventShuffle
	EventPlace
	EventNormalSummon
	EventNormalSet
	EventSpecialSummon
	EventMove
	EventAttach
	EventDetach
	EventFlip
	EventChangePosition
	EventTribute
	EventReturnAll
	EventReturnToDeck
	EventSideSwap
	EventChainLink
	EventChainResolve
)

func (e EventType) String() string {
	switch e {
	case EventNewTurn:
		return "NewTurn"
	case EventPhaseChange:
		return "PhaseChange"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventPlace:
		return "Place"
	case EventNormalSummon:
		return "NormalSummon"
	case EventNormalSet:
		return "NormalSet"
	case EventSpecialSummon:
		return "SpecialSummon"
	case EventMove:
		return "Move"
	case EventAttach:
		return "Attach"
	case EventDetach:
		return "Detach"
	case EventFlip:
		return "Flip"
	case EventChangePosition:
		return "ChangePosition"
	case EventTribute:
		return "Tribute"
	case EventReturnAll:
		return "ReturnAll"
	case EventReturnToDeck:
		return "ReturnToDeck"
	case EventSideSwap:
		return "SideSwap"
	case EventChainLink:
		return "ChainLink"
	case EventChainResolve:
		return "ChainResolve"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a duel.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // current phase name (e.g. "main1")
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Zone    string    // wire name of the zone involved (if applicable)
	Details string    // human-readable detail string
}
