package field

import "errors"

// Sentinel errors for rejected operations. A rejected operation never
// leaves the field partially mutated.
var (
	ErrIllegalPlacement = errors.New("card cannot be placed in that zone")
	ErrOccupied         = errors.New("slot is already occupied")
	ErrEmptySlot        = errors.New("slot is empty")
	ErrNotXYZHost       = errors.New("materials can only attach to an xyz monster on the field")
	ErrLinkPosition     = errors.New("link monsters have no defense position")
	ErrSideDeckMismatch = errors.New("side deck exchange must swap equal, non-zero counts")
	ErrUnknownInstance  = errors.New("no such card instance")
)
