package broadcast

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// OpponentView consumes the duel channel and keeps the latest
// snapshot of the opponent's side. Last write wins: each snapshot
// fully replaces the previous one, and a missed message is healed by
// the next publish.
type OpponentView struct {
	mu   sync.RWMutex
	seat int // local seat; snapshots from this seat are ignored
	last *Snapshot
}

// NewOpponentView creates a view for the given local seat.
func NewOpponentView(seat int) *OpponentView {
	return &OpponentView{seat: seat}
}

// Watch consumes snapshots until ctx is cancelled or the channel
// closes. Run it in its own goroutine.
func (v *OpponentView) Watch(ctx context.Context, ch Channel) error {
	snaps, err := ch.Subscribe(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-snaps:
			if !ok {
				return nil
			}
			v.apply(snap)
		}
	}
}

func (v *OpponentView) apply(snap Snapshot) {
	if snap.Seat == v.seat {
		return
	}
	v.mu.Lock()
	v.last = &snap
	v.mu.Unlock()
	logrus.WithFields(logrus.Fields{
		"duel_id": snap.DuelID,
		"seat":    snap.Seat,
	}).Debug("opponent snapshot applied")
}

// Latest returns the most recent opponent snapshot, or nil before the
// first one arrives.
func (v *OpponentView) Latest() *Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.last
}
