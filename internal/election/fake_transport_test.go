package election

import (
	"context"
	"sync"
)

// recordingTransport is an in-memory Transport used by the driver tests: it
// records every message sent and optionally routes it straight into a
// node's handler, avoiding real network I/O entirely.
type recordingTransport struct {
	mu      sync.Mutex
	probes  []ProbeMessage
	notifys []NotifyMessage

	// route, if set, delivers a message to the node listening at addr
	// instead of merely recording it.
	route func(ctx context.Context, addr string, probe *ProbeMessage, notify *NotifyMessage) error
}

func (f *recordingTransport) Probe(ctx context.Context, addr string, msg ProbeMessage) error {
	f.mu.Lock()
	f.probes = append(f.probes, msg)
	f.mu.Unlock()
	if f.route != nil {
		return f.route(ctx, addr, &msg, nil)
	}
	return nil
}

func (f *recordingTransport) NotifyElected(ctx context.Context, addr string, msg NotifyMessage) error {
	f.mu.Lock()
	f.notifys = append(f.notifys, msg)
	f.mu.Unlock()
	if f.route != nil {
		return f.route(ctx, addr, nil, &msg)
	}
	return nil
}

func (f *recordingTransport) snapshotProbes() []ProbeMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ProbeMessage, len(f.probes))
	copy(out, f.probes)
	return out
}

func (f *recordingTransport) snapshotNotifys() []NotifyMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]NotifyMessage, len(f.notifys))
	copy(out, f.notifys)
	return out
}
