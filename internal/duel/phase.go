// Package duel owns per-session turn and phase state and the session
// controller that composes validation, movement and broadcasting.
package duel

// Phase is one step of a turn.
type Phase int

const (
	PhaseDraw Phase = iota
	PhaseStandby
	PhaseMain1
	PhaseBattle
	PhaseMain2
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseDraw:
		return "draw"
	case PhaseStandby:
		return "standby"
	case PhaseMain1:
		return "main1"
	case PhaseBattle:
		return "battle"
	case PhaseMain2:
		return "main2"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Next returns the following phase, wrapping end back to draw.
func (p Phase) Next() Phase {
	if p == PhaseEnd {
		return PhaseDraw
	}
	return p + 1
}

// IsMain reports whether the phase permits summons.
func (p Phase) IsMain() bool {
	return p == PhaseMain1 || p == PhaseMain2
}

// ParsePhase converts a wire name back to its Phase.
func ParsePhase(name string) (Phase, bool) {
	for p := PhaseDraw; p <= PhaseEnd; p++ {
		if p.String() == name {
			return p, true
		}
	}
	return 0, false
}
