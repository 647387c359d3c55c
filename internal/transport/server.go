// Package transport is the gRPC collaborator the election core requires:
// a server that turns incoming Probe/NotifyElected calls into
// election.HandleProbe/HandleNotify invocations and forwards as directed,
// and a client that implements election.Transport over real network
// connections. Everything here is plumbing; the protocol's decisions live
// entirely in package election.
package transport

import (
	"context"
	"net"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/viluon/ringelect/api/electionpb"
	"github.com/viluon/ringelect/internal/election"
)

// Server adapts a *election.Node to electionpb.ElectionServer: it decodes
// the wire request, hands it to the election core, and forwards onward
// over forwarder when the core reports that forwarding is required.
type Server struct {
	node      *election.Node
	forwarder election.Transport
	log       *logrus.Entry
}

// NewServer constructs a Server. forwarder is used only to relay messages
// this node does not act on itself.
func NewServer(node *election.Node, forwarder election.Transport, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{node: node, forwarder: forwarder, log: log.WithField("node", uint64(node.ID))}
}

func (s *Server) Probe(ctx context.Context, req *electionpb.ProbeRequest) (*electionpb.ProbeResponse, error) {
	msg := election.ProbeMessage{
		SenderID:   election.NodeID(req.SenderId),
		HeadedLeft: req.HeadedLeft,
		Phase:      req.Phase,
	}

	forward, err := election.HandleProbe(ctx, s.node, msg)
	if err != nil {
		return nil, status.Errorf(codes.Canceled, "probe handling canceled: %v", err)
	}
	if forward {
		addr := forwardAddr(s.node, msg.HeadedLeft)
		if err := s.forwarder.Probe(ctx, addr, msg); err != nil {
			s.log.WithError(err).WithField("addr", addr).Warn("forwarding probe failed")
		}
	}
	return &electionpb.ProbeResponse{}, nil
}

func (s *Server) NotifyElected(ctx context.Context, req *electionpb.NotifyRequest) (*electionpb.NotifyResponse, error) {
	msg := election.NotifyMessage{
		LeaderID:   election.NodeID(req.LeaderId),
		HeadedLeft: req.HeadedLeft,
	}

	if election.HandleNotify(s.node, msg) {
		addr := forwardAddr(s.node, msg.HeadedLeft)
		if err := s.forwarder.NotifyElected(ctx, addr, msg); err != nil {
			s.log.WithError(err).WithField("addr", addr).Warn("forwarding notification failed")
		}
	}
	return &electionpb.NotifyResponse{}, nil
}

func forwardAddr(node *election.Node, headedLeft bool) string {
	if headedLeft {
		return node.LeftAddr
	}
	return node.RightAddr
}

// Serve starts a gRPC server for srv on addr and blocks until ctx is
// cancelled, then stops it gracefully. It is the per-node server half of
// the server/driver pair a coordinator runs for each node.
func Serve(ctx context.Context, addr string, srv electionpb.ElectionServer) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	grpcServer := grpc.NewServer()
	electionpb.RegisterElectionServer(grpcServer, srv)

	errCh := make(chan error, 1)
	go func() { errCh <- grpcServer.Serve(lis) }()

	select {
	case <-ctx.Done():
		grpcServer.GracefulStop()
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}
