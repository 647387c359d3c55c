// Package electionpb is the wire layer for the two-call RPC surface
// between ring neighbours: Probe and NotifyElected. It mirrors the shape
// protoc-gen-go and protoc-gen-go-grpc would emit from election.proto
// (message structs, ServiceDesc, client/server interfaces), kept
// hand-written and in sync with the .proto by hand; see DESIGN.md for why
// the wire messages use a small registered gRPC codec rather than generated
// protobuf marshaling.
package electionpb

// ProbeRequest is the wire form of election.ProbeMessage.
type ProbeRequest struct {
	SenderId   uint64
	HeadedLeft bool
	Phase      uint64
}

// ProbeResponse is empty: Probe's only meaningful content is that it was
// delivered.
type ProbeResponse struct{}

// NotifyRequest is the wire form of election.NotifyMessage.
type NotifyRequest struct {
	LeaderId   uint64
	HeadedLeft bool
}

// NotifyResponse is empty, for the same reason as ProbeResponse.
type NotifyResponse struct{}
