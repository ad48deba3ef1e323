package frames

import "github.com/quicwire/quic-recovery/protocol"

// A StreamFrame of QUIC
type StreamFrame struct {
	StreamID protocol.StreamID
	FinBit   bool
	Offset   protocol.ByteCount
	Data     []byte
}

// DataLen gives the length of data in bytes
func (f *StreamFrame) DataLen() protocol.ByteCount {
	return protocol.ByteCount(len(f.Data))
}
