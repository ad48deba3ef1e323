package frames

import "github.com/quicwire/quic-recovery/protocol"

// A StopWaitingFrame in QUIC
type StopWaitingFrame struct {
	LeastUnacked protocol.PacketNumber
}
