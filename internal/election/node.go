package election

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Node is a single ring participant: its identity, its two static neighbour
// addresses, and the mutable Role guarded by mu. Neighbours are addresses,
// not references, so the cyclic ring topology never becomes an object-graph
// cycle; each Node owns only itself.
type Node struct {
	ID        NodeID
	LeftAddr  string
	RightAddr string

	log *logrus.Entry

	mu   sync.Mutex
	role Role
	// changed is closed and replaced under mu every time role (or a field
	// within it) is mutated. Waiters snapshot the channel under the lock,
	// release it, then select on the channel closing (or a bounded
	// fallback tick) instead of busy-polling — the event-driven wakeup
	// called for in place of the original sleep-and-recheck loop.
	changed chan struct{}
}

// NewNode constructs a Node in its initial Candidate{phase: 1} role.
func NewNode(id NodeID, leftAddr, rightAddr string, log *logrus.Entry) *Node {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Node{
		ID:        id,
		LeftAddr:  leftAddr,
		RightAddr: rightAddr,
		log:       log.WithField("node", uint64(id)),
		role:      initialRole(),
		changed:   make(chan struct{}),
	}
}

// Role returns a snapshot of the current role.
func (n *Node) Role() Role {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.role
}

// Changed returns the current wakeup channel and the role it was observed
// alongside. Callers release the lock implicitly (this method takes and
// drops it) and then select on the returned channel to be woken on the next
// mutation.
func (n *Node) Changed() (role Role, ch <-chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.role, n.changed
}

// wake must be called under mu. It broadcasts the mutation to any waiter
// blocked in Changed by closing the current channel and installing a fresh
// one for the next round of waiters.
func (n *Node) wake() {
	close(n.changed)
	n.changed = make(chan struct{})
}

func (n *Node) fatalf(format string, args ...any) {
	n.log.Errorf(format, args...)
	panic(fmt.Sprintf(format, args...))
}

// NextPhase advances a Candidate from phase p to p+1, recording that phase
// p was already probed. Precondition: role is Candidate{phase: p, last: p}.
// Calling it in any other state is a protocol violation and aborts the
// process.
func (n *Node) NextPhase() {
	n.mu.Lock()
	defer n.mu.Unlock()

	c, ok := n.role.(CandidatePhase)
	if !ok || c.Phase != c.LastPhaseProbed {
		n.fatalf("next_phase() called on node %d in invalid state %v", n.ID, n.role)
	}
	n.role = CandidatePhase{Phase: c.Phase + 1, LastPhaseProbed: c.Phase}
	n.log.WithField("phase", c.Phase+1).Debug("advanced to new phase")
	n.wake()
}

// resolveProbe is the atomic compare-and-transition the probe handler uses
// once this node has already sent its own probe for the current phase and
// now sees one travelling back around the ring: comparing senderID against
// this node's id and applying whichever transition the comparison implies
// (advance, win, or lose) both happen under a single lock acquisition, so
// no other mutation can land between deciding the outcome and applying it.
// Precondition: role is Candidate{phase: p, last: p}, the same as
// NextPhase's; violated, it aborts the process the same way.
func (n *Node) resolveProbe(senderID NodeID) {
	n.mu.Lock()
	defer n.mu.Unlock()

	c, ok := n.role.(CandidatePhase)
	if !ok || c.Phase != c.LastPhaseProbed {
		n.fatalf("resolve_probe() called on node %d in invalid state %v", n.ID, n.role)
	}

	switch {
	case n.ID < senderID:
		n.role = CandidatePhase{Phase: c.Phase + 1, LastPhaseProbed: c.Phase}
		n.log.WithField("phase", c.Phase+1).Debug("advanced to new phase")
	case n.ID == senderID:
		n.role = LeaderRole{}
		n.log.Info("elected leader")
	default:
		n.role = DefeatedInfo{Leader: nil}
		n.log.Info("defeated")
	}
	n.wake()
}

// MarkProbed records that the driver has emitted its probe for the current
// phase, without advancing the phase itself. Precondition: role is
// Candidate; fails fatally otherwise.
func (n *Node) MarkProbed() {
	n.mu.Lock()
	defer n.mu.Unlock()

	c, ok := n.role.(CandidatePhase)
	if !ok {
		n.fatalf("mark_probed() called on node %d in invalid state %v", n.ID, n.role)
	}
	n.role = CandidatePhase{Phase: c.Phase, LastPhaseProbed: c.Phase}
	n.wake()
}

// Defeat transitions a Candidate to Defeated{leader: nil}. A Defeated node
// is left unchanged (idempotent). Calling Defeat on a Leader is a protocol
// violation and aborts the process.
func (n *Node) Defeat() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.defeatLocked(nil)
}

// DefeatWithLeader transitions to Defeated{leader: Some(l)}, overwriting any
// previously recorded leader. Same precondition as Defeat.
func (n *Node) DefeatWithLeader(l NodeID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.defeatLocked(&l)
}

func (n *Node) defeatLocked(leader *NodeID) {
	switch n.role.(type) {
	case CandidatePhase:
		n.role = DefeatedInfo{Leader: leader}
	case DefeatedInfo:
		if leader != nil {
			n.role = DefeatedInfo{Leader: leader}
		}
	case LeaderRole:
		n.fatalf("defeat() called on the leader node %d", n.ID)
	}
	if leader != nil {
		n.log.WithField("leader", uint64(*leader)).Info("learned the leader")
	} else {
		n.log.Info("defeated")
	}
	n.wake()
}

// Lead transitions a Candidate to Leader. Calling Lead while already Leader
// is a no-op. Calling it on a Defeated node is a protocol violation and
// aborts the process.
func (n *Node) Lead() {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch n.role.(type) {
	case LeaderRole:
		return
	case CandidatePhase:
		n.role = LeaderRole{}
		n.log.Info("elected leader")
		n.wake()
	case DefeatedInfo:
		n.fatalf("lead() called on a defeated node %d", n.ID)
	}
}
