package election

import (
	"context"
	"sync"
	"time"
)

// RunDriver is the per-node client loop that emits outgoing probes at each
// new phase, alternates direction, announces leadership, and stops once
// the node is Defeated. It never holds the node's state lock across a
// network call — Transport.Probe and Transport.NotifyElected are invoked
// after the lock has been released, and outgoing probes are fired without
// waiting for their result so a send failure never stalls the state
// machine.
func RunDriver(ctx context.Context, node *Node, transport Transport) {
	RunDriverWithQuantum(ctx, node, transport, DefaultWaitQuantum)
}

// RunDriverWithQuantum is RunDriver with an explicit fallback quantum for
// the own-phase race (tests exercise this directly).
func RunDriverWithQuantum(ctx context.Context, node *Node, transport Transport, quantum time.Duration) {
	for {
		role, ch := node.Changed()

		switch r := role.(type) {
		case CandidatePhase:
			if r.LastPhaseProbed < r.Phase {
				dir := probeDirection(r.Phase)
				addr := node.RightAddr
				if dir == Left {
					addr = node.LeftAddr
				}
				node.MarkProbed()
				msg := ProbeMessage{SenderID: node.ID, HeadedLeft: dir == Left, Phase: r.Phase}
				node.log.WithFields(map[string]any{"phase": r.Phase, "direction": dir.String()}).Debug("sending probe")
				go sendProbe(ctx, node, transport, addr, msg)
				continue
			}
			// Already probed for this phase; wait for the reply to
			// conclude it (NextPhase/Lead/Defeat) rather than busy-loop.
			select {
			case <-ch:
			case <-time.After(quantum):
			case <-ctx.Done():
				return
			}

		case DefeatedInfo:
			return

		case LeaderRole:
			// Both announcements go out concurrently, and the driver
			// returns only once both sends have completed.
			left := NotifyMessage{LeaderID: node.ID, HeadedLeft: true}
			right := NotifyMessage{LeaderID: node.ID, HeadedLeft: false}
			var wg sync.WaitGroup
			wg.Add(2)
			go func() { defer wg.Done(); sendNotify(ctx, node, transport, node.LeftAddr, left) }()
			go func() { defer wg.Done(); sendNotify(ctx, node, transport, node.RightAddr, right) }()
			wg.Wait()
			return
		}
	}
}

// probeDirection alternates by phase parity: even phases probe left, odd
// phases probe right (phase 1 probes right, phase 2 probes left, ...).
func probeDirection(phase uint64) Direction {
	if phase%2 == 0 {
		return Left
	}
	return Right
}

func sendProbe(ctx context.Context, node *Node, transport Transport, addr string, msg ProbeMessage) {
	if err := transport.Probe(ctx, addr, msg); err != nil {
		node.log.WithError(err).WithField("addr", addr).Warn("probe send failed")
	}
}

func sendNotify(ctx context.Context, node *Node, transport Transport, addr string, msg NotifyMessage) {
	if err := transport.NotifyElected(ctx, addr, msg); err != nil {
		node.log.WithError(err).WithField("addr", addr).Warn("notify send failed")
	}
}
