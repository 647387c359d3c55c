// Package coordinator starts n nodes, connects their ring links, and owns
// the shutdown boundary: for each election round it builds the ring,
// starts every node's server and driver, waits for every driver to exit
// (all nodes Defeated or Leader), and then tears the round's servers down
// before the next line of input is read.
package coordinator

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/viluon/ringelect/internal/config"
	"github.com/viluon/ringelect/internal/election"
	"github.com/viluon/ringelect/internal/ring"
	"github.com/viluon/ringelect/internal/transport"
)

// Coordinator runs election rounds per config.Config.
type Coordinator struct {
	cfg config.Config
	log *logrus.Entry
}

// New constructs a Coordinator. cfg is assumed already validated.
func New(cfg config.Config, log *logrus.Entry) *Coordinator {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Coordinator{cfg: cfg, log: log}
}

// RoundResult is the terminal state of every node after one election round.
type RoundResult struct {
	Leader   election.NodeID
	Outcomes map[election.NodeID]election.Role
}

// RunRounds reads whitespace-separated node-id lines from r until EOF (or
// cfg.Rounds rounds have run, when non-zero; blank lines are skipped and
// not counted) and runs each to
// completion before the next line is read, so a fresh round always starts
// from a clean slate.
func (c *Coordinator) RunRounds(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	rounds := 0
	for scanner.Scan() {
		if c.cfg.Rounds > 0 && rounds >= c.cfg.Rounds {
			break
		}
		ids, err := parseIDs(scanner.Text())
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			continue
		}

		result, err := c.RunRound(ctx, ids)
		if err != nil {
			return err
		}
		c.log.WithField("leader", uint64(result.Leader)).Info("election round complete")
		rounds++
	}
	return scanner.Err()
}

// RunRound builds a ring over ids, runs one election to quiescence, and
// returns the final role of every node.
func (c *Coordinator) RunRound(ctx context.Context, ids []election.NodeID) (*RoundResult, error) {
	addrs := ring.AddressBook{Host: c.cfg.ListenHost, BasePort: c.cfg.BasePort}
	specs, err := ring.Build(ids, addrs)
	if err != nil {
		return nil, err
	}

	roundCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	nodes := make([]*election.Node, len(specs))
	clients := make([]*transport.Client, len(specs))
	for i, spec := range specs {
		nodes[i] = election.NewNode(spec.ID, spec.LeftAddr, spec.RightAddr, c.log)
		clients[i] = transport.NewClient()
	}

	g, gctx := errgroup.WithContext(roundCtx)
	for i, spec := range specs {
		node, client, listenAddr := nodes[i], clients[i], spec.ListenAddr
		g.Go(func() error {
			return transport.Serve(gctx, listenAddr, transport.NewServer(node, client, c.log))
		})
	}

	// Let every node's server finish binding before any driver starts
	// dialing its neighbours, so the first probe never races a peer's
	// listener coming up.
	select {
	case <-time.After(c.cfg.StartupDelay):
	case <-gctx.Done():
		return nil, g.Wait()
	}

	driverDone := make(chan struct{}, len(specs))
	for i := range specs {
		node, client := nodes[i], clients[i]
		go func() {
			election.RunDriver(gctx, node, client)
			driverDone <- struct{}{}
		}()
	}
	for range specs {
		<-driverDone
	}

	// Every driver has exited, so every node is Defeated or Leader. Tear
	// the servers down; stragglers still in flight are absorbed by the
	// forwarding rule, not awaited here.
	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}

	for _, client := range clients {
		_ = client.Close()
	}

	result := &RoundResult{Outcomes: make(map[election.NodeID]election.Role, len(nodes))}
	for _, node := range nodes {
		role := node.Role()
		result.Outcomes[node.ID] = role
		if _, ok := role.(election.LeaderRole); ok {
			result.Leader = node.ID
		}
	}
	return result, nil
}
