package election_test

import (
	"context"
	"sync"
	"time"

	"github.com/viluon/ringelect/internal/election"
	"github.com/viluon/ringelect/internal/ring"
)

// fataler is the subset of *testing.T and *rapid.T this harness needs,
// so the same election-wiring code serves both the scenario tests and the
// rapid property test in property_test.go.
type fataler interface {
	Fatalf(format string, args ...any)
	Helper()
}

// memTransport is an in-memory election.Transport: Probe/NotifyElected
// dispatch straight into the target node's handler instead of going over
// the network, so property tests over many random rings run fast. It still
// exercises the real forwarding loop one hop at a time.
type memTransport struct {
	mu    sync.Mutex
	nodes map[string]*election.Node
}

func newMemTransport() *memTransport {
	return &memTransport{nodes: make(map[string]*election.Node)}
}

func (m *memTransport) register(addr string, n *election.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes[addr] = n
}

func (m *memTransport) get(addr string) *election.Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nodes[addr]
}

func nextHop(node *election.Node, headedLeft bool) string {
	if headedLeft {
		return node.LeftAddr
	}
	return node.RightAddr
}

func (m *memTransport) Probe(ctx context.Context, addr string, msg election.ProbeMessage) error {
	for {
		node := m.get(addr)
		forward, err := election.HandleProbe(ctx, node, msg)
		if err != nil {
			return err
		}
		if !forward {
			return nil
		}
		addr = nextHop(node, msg.HeadedLeft)
	}
}

func (m *memTransport) NotifyElected(ctx context.Context, addr string, msg election.NotifyMessage) error {
	for {
		node := m.get(addr)
		if !election.HandleNotify(node, msg) {
			return nil
		}
		addr = nextHop(node, msg.HeadedLeft)
	}
}

// runElection wires a node per id in ring order (via the real ring
// builder) and runs every driver to completion, returning each node's
// final role.
func runElection(t fataler, ids []election.NodeID) map[election.NodeID]election.Role {
	t.Helper()

	specs, err := ring.Build(ids, ring.AddressBook{Host: "mem", BasePort: 1})
	if err != nil {
		t.Fatalf("ring.Build: %v", err)
	}

	transport := newMemTransport()
	nodes := make([]*election.Node, len(specs))
	for i, spec := range specs {
		nodes[i] = election.NewNode(spec.ID, spec.LeftAddr, spec.RightAddr, nil)
		transport.register(spec.ListenAddr, nodes[i])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, node := range nodes {
		node := node
		wg.Add(1)
		go func() {
			defer wg.Done()
			election.RunDriverWithQuantum(ctx, node, transport, time.Millisecond)
		}()
	}
	wg.Wait()

	out := make(map[election.NodeID]election.Role, len(nodes))
	for _, node := range nodes {
		out[node.ID] = node.Role()
	}
	return out
}
