package electionpb

import (
	"encoding/binary"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype this package's codec registers
// under. Clients select it per call with grpc.CallContentSubtype(CodecName);
// the server picks the matching registered codec from the incoming
// request's content-type header automatically, no server-side option
// needed.
const CodecName = "ringelect"

func init() {
	encoding.RegisterCodec(wireCodec{})
}

// wireCodec is a minimal fixed-layout binary codec for the four message
// types in this package. It replaces protobuf wire marshaling (see
// wire.go's doc comment for why) while still running over real gRPC
// framing, flow control and status handling.
type wireCodec struct{}

func (wireCodec) Name() string { return CodecName }

func (wireCodec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case *ProbeRequest:
		buf := make([]byte, 17)
		binary.BigEndian.PutUint64(buf[0:8], m.SenderId)
		buf[8] = boolByte(m.HeadedLeft)
		binary.BigEndian.PutUint64(buf[9:17], m.Phase)
		return buf, nil
	case *ProbeResponse:
		return nil, nil
	case *NotifyRequest:
		buf := make([]byte, 9)
		binary.BigEndian.PutUint64(buf[0:8], m.LeaderId)
		buf[8] = boolByte(m.HeadedLeft)
		return buf, nil
	case *NotifyResponse:
		return nil, nil
	default:
		return nil, fmt.Errorf("electionpb: cannot marshal %T", v)
	}
}

func (wireCodec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case *ProbeRequest:
		if len(data) < 17 {
			return fmt.Errorf("electionpb: short ProbeRequest payload (%d bytes)", len(data))
		}
		m.SenderId = binary.BigEndian.Uint64(data[0:8])
		m.HeadedLeft = data[8] != 0
		m.Phase = binary.BigEndian.Uint64(data[9:17])
		return nil
	case *ProbeResponse:
		return nil
	case *NotifyRequest:
		if len(data) < 9 {
			return fmt.Errorf("electionpb: short NotifyRequest payload (%d bytes)", len(data))
		}
		m.LeaderId = binary.BigEndian.Uint64(data[0:8])
		m.HeadedLeft = data[8] != 0
		return nil
	case *NotifyResponse:
		return nil
	default:
		return fmt.Errorf("electionpb: cannot unmarshal into %T", v)
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
