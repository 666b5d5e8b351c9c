package mcp

import (
	"fmt"

	"github.com/duelverse/duelfield/internal/card"
	"github.com/duelverse/duelfield/internal/deck"
	"github.com/duelverse/duelfield/internal/duel"
	"github.com/duelverse/duelfield/internal/log"
)

// SandboxSession wraps one offline duel session for MCP-driven field
// testing. There is no opponent and no broadcast transport; the
// get_opponent_view tool shows what would cross the wire.
type SandboxSession struct {
	session *duel.Session
	logger  *log.MemoryLogger
	lastSeq int
}

// NewSandboxSession loads the card library and deck file and builds a
// fresh field.
func NewSandboxSession(cardsFile, deckFile string) (*SandboxSession, error) {
	lib, err := card.LoadLibrary(cardsFile)
	if err != nil {
		return nil, fmt.Errorf("load card library: %w", err)
	}
	list, err := deck.Load(deckFile, lib)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}

	logger := log.NewMemoryLogger()
	sess := duel.NewSession(duel.SessionConfig{
		DuelID: "sandbox",
		Seat:   0,
		Deck:   list,
		Logger: logger,
	})
	return &SandboxSession{session: sess, logger: logger}, nil
}

// drainEvents returns the events journaled since the last drain.
func (s *SandboxSession) drainEvents() []EventView {
	all := s.logger.Events()
	fresh := all[s.lastSeq:]
	s.lastSeq = len(all)

	views := make([]EventView, 0, len(fresh))
	for _, e := range fresh {
		views = append(views, EventView{
			Type:    e.Type.String(),
			Turn:    e.Turn,
			Phase:   e.Phase,
			Details: e.Details,
		})
	}
	return views
}

// respond builds the standard tool response envelope: fresh events
// plus the current full field view.
func (s *SandboxSession) respond() *ToolResponse {
	return &ToolResponse{
		Events: s.drainEvents(),
		Field:  BuildFieldView(s.session),
	}
}
