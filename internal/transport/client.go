package transport

import (
	"context"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/viluon/ringelect/api/electionpb"
	"github.com/viluon/ringelect/internal/election"
)

// Client implements election.Transport over real gRPC connections. A
// node's own Client only ever dials the two addresses its driver sends to
// (its left and right neighbour), so the connection cache never grows
// beyond those two outbound handles; it is not a general-purpose
// unbounded connection pool.
type Client struct {
	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

// NewClient returns a Client with no connections yet open.
func NewClient() *Client {
	return &Client{conns: make(map[string]*grpc.ClientConn)}
}

func (c *Client) dial(addr string) (*grpc.ClientConn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if conn, ok := c.conns[addr]; ok {
		return conn, nil
	}
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	c.conns[addr] = conn
	return conn, nil
}

// Probe sends a ProbeMessage to addr.
func (c *Client) Probe(ctx context.Context, addr string, msg election.ProbeMessage) error {
	conn, err := c.dial(addr)
	if err != nil {
		return err
	}
	_, err = electionpb.NewElectionClient(conn).Probe(ctx, &electionpb.ProbeRequest{
		SenderId:   uint64(msg.SenderID),
		HeadedLeft: msg.HeadedLeft,
		Phase:      msg.Phase,
	})
	return err
}

// NotifyElected sends a NotifyMessage to addr.
func (c *Client) NotifyElected(ctx context.Context, addr string, msg election.NotifyMessage) error {
	conn, err := c.dial(addr)
	if err != nil {
		return err
	}
	_, err = electionpb.NewElectionClient(conn).NotifyElected(ctx, &electionpb.NotifyRequest{
		LeaderId:   uint64(msg.LeaderID),
		HeadedLeft: msg.HeadedLeft,
	})
	return err
}

// Close tears down every cached connection. Safe to call once the node's
// driver and server have both exited.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for addr, conn := range c.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.conns, addr)
	}
	return firstErr
}
