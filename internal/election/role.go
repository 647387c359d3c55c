// Package election implements the per-node state machine and message
// handlers for ring leader election: a phase-based, Chang-Roberts/Franklin
// style bidirectional probing protocol.
package election

import "fmt"

// NodeID uniquely identifies a node on the ring. Ordering by NodeID is the
// sole tie-break the protocol uses.
type NodeID uint64

// Direction names one of a node's two static ring links.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Role is the sum type a Node's mutable state is drawn from: exactly one of
// Candidate, Defeated or Leader holds at any instant. It is intentionally
// not modelled with booleans or a role hierarchy; CandidatePhase and
// DefeatedInfo carry the payload each variant needs.
type Role interface {
	isRole()
	String() string
}

// CandidatePhase is the Candidate variant: the node is still competing.
//
// Invariant: LastPhaseProbed <= Phase and Phase-LastPhaseProbed is 0 or 1.
// Equal means this node has already sent its probe for Phase and is
// awaiting the reply that will conclude it; Phase == LastPhaseProbed+1
// means a new phase has begun and the driver has not yet emitted its probe.
type CandidatePhase struct {
	Phase           uint64
	LastPhaseProbed uint64
}

func (CandidatePhase) isRole() {}

func (c CandidatePhase) String() string {
	return fmt.Sprintf("Candidate{phase=%d, last_probed=%d}", c.Phase, c.LastPhaseProbed)
}

// DefeatedInfo is the Defeated variant: the node has lost. Leader is nil
// until a leadership notification arrives, at which point it is set once
// and may later be overwritten by a newer notification, but never cleared.
type DefeatedInfo struct {
	Leader *NodeID
}

func (DefeatedInfo) isRole() {}

func (d DefeatedInfo) String() string {
	if d.Leader == nil {
		return "Defeated{leader=<unknown>}"
	}
	return fmt.Sprintf("Defeated{leader=%d}", *d.Leader)
}

// LeaderRole is the terminal Leader variant: this node won the election.
type LeaderRole struct{}

func (LeaderRole) isRole() {}

func (LeaderRole) String() string { return "Leader" }

// initialRole is the role every Node begins an election in.
func initialRole() Role {
	return CandidatePhase{Phase: 1, LastPhaseProbed: 0}
}
