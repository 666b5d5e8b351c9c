package duel

import "errors"

var (
	ErrNotYourTurn      = errors.New("not this player's turn")
	ErrWrongPhase       = errors.New("summons are only allowed in a main phase")
	ErrSummonUsed       = errors.New("normal summon already used this turn")
	ErrSetUsed          = errors.New("normal set already used this turn")
	ErrTributesRequired = errors.New("summon requires tributes")
	ErrNotSpecialLegal  = errors.New("card is not special-summon legal from that zone")
)
