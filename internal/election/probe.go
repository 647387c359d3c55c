package election

import (
	"context"
	"time"
)

// DefaultWaitQuantum bounds how long HandleProbe waits, as a fallback, for
// a racing driver to emit its phase-local probe before re-checking the
// node's role. The primary wakeup is event-driven (Node.Changed); this is
// only a backstop against a missed signal.
const DefaultWaitQuantum = 20 * time.Millisecond

// HandleProbe handles receipt of a ProbeMessage: either act on it (compare
// ids, advance phase, declare leadership, accept defeat) or report that it
// must be forwarded onward unchanged. It never performs network I/O
// itself — the caller forwards to msg.HeadedLeft ? node.LeftAddr :
// node.RightAddr when forward is true.
func HandleProbe(ctx context.Context, node *Node, msg ProbeMessage) (forward bool, err error) {
	return HandleProbeWithQuantum(ctx, node, msg, DefaultWaitQuantum)
}

// HandleProbeWithQuantum is HandleProbe with an explicit fallback quantum,
// exposed so tests can run the race between a received probe and this
// node's own not-yet-sent probe without waiting out the production
// default.
func HandleProbeWithQuantum(ctx context.Context, node *Node, msg ProbeMessage, quantum time.Duration) (forward bool, err error) {
	for {
		role, ch := node.Changed()

		switch r := role.(type) {
		case CandidatePhase:
			if r.Phase == r.LastPhaseProbed {
				// This node has already emitted its own probe for the
				// current phase and is now observing one travelling back
				// around the ring: compare ids and apply the outcome in
				// one atomic step.
				node.resolveProbe(msg.SenderID)
				return false, nil
			}
			// A new phase has just begun and the driver has not yet
			// emitted its probe for it. Wait for that to happen (or a
			// bounded quantum to elapse) and re-evaluate.
			select {
			case <-ch:
			case <-time.After(quantum):
			case <-ctx.Done():
				return false, ctx.Err()
			}

		case DefeatedInfo, LeaderRole:
			// A probe whose sender is this node itself has circled back
			// to a node that already knows it lost (or won); drop it
			// rather than re-forwarding in a loop.
			if msg.SenderID == node.ID {
				return false, nil
			}
			return true, nil
		}
	}
}
