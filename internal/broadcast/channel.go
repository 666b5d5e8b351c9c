package broadcast

import "context"

// Channel is the per-duel pub/sub transport. Publish is
// fire-and-forget: delivery is not acknowledged and snapshots may be
// missed, so receivers rely on the next publish rather than replay.
type Channel interface {
	Publish(ctx context.Context, snap Snapshot) error
	Subscribe(ctx context.Context) (<-chan Snapshot, error)
	Close() error
}
