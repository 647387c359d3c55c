// Package ring builds the static ring topology: given an ordered list of
// node ids, it assigns each node its left and right neighbour addresses.
// The order of the input list defines physical ring position — ids are
// never sorted.
package ring

import (
	"fmt"

	"github.com/viluon/ringelect/internal/election"
)

// NodeSpec is one node's static configuration: its id and the addresses of
// its two ring neighbours, ready to hand to election.NewNode.
type NodeSpec struct {
	ID        election.NodeID
	LeftAddr  string
	RightAddr string
	// ListenAddr is the address this node's own server binds to.
	ListenAddr string
}

// AddressBook derives a loopback listen address for a node id from a base
// port plus the id.
type AddressBook struct {
	Host     string
	BasePort uint64
}

// Addr returns the address a node with the given id listens on.
func (a AddressBook) Addr(id election.NodeID) string {
	return fmt.Sprintf("%s:%d", a.Host, a.BasePort+uint64(id))
}

// Build lays out the ring for the given ids in the order supplied: node at
// index i gets left = ids[i-1 mod n], right = ids[i+1 mod n]. A singleton
// ring (n=1) is the degenerate case where both neighbours are the node
// itself, so it immediately elects itself leader at phase 1 (its own
// probe circles straight back).
func Build(ids []election.NodeID, addrs AddressBook) ([]NodeSpec, error) {
	n := len(ids)
	if n == 0 {
		return nil, fmt.Errorf("ring: at least one node id is required")
	}

	seen := make(map[election.NodeID]struct{}, n)
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("ring: duplicate node id %d", id)
		}
		seen[id] = struct{}{}
	}

	specs := make([]NodeSpec, n)
	for i, id := range ids {
		left := ids[(i-1+n)%n]
		right := ids[(i+1)%n]
		specs[i] = NodeSpec{
			ID:         id,
			LeftAddr:   addrs.Addr(left),
			RightAddr:  addrs.Addr(right),
			ListenAddr: addrs.Addr(id),
		}
	}
	return specs, nil
}
