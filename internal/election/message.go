package election

import "context"

// ProbeMessage carries a candidate's id around the ring so it can discover
// whether a larger candidate exists. HeadedLeft records the direction the
// message is currently travelling in, which matters only when a Defeated or
// Leader node has to forward it onward unchanged.
type ProbeMessage struct {
	SenderID   NodeID
	HeadedLeft bool
	Phase      uint64
}

// NotifyMessage announces that LeaderID has won; HeadedLeft records which of
// the leader's two announcement sweeps this message belongs to.
type NotifyMessage struct {
	LeaderID   NodeID
	HeadedLeft bool
}

// Transport is the only thing the election core requires of the RPC layer:
// the ability to deliver a Probe or a NotifyElected to a neighbour address.
// The concrete implementation (internal/transport) is an external
// collaborator — wire framing, serialization and connection management are
// none of this package's concern.
type Transport interface {
	Probe(ctx context.Context, addr string, msg ProbeMessage) error
	NotifyElected(ctx context.Context, addr string, msg NotifyMessage) error
}
