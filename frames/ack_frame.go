package frames

import (
	"time"

	"github.com/quicwire/quic-recovery/protocol"
)

// An AckFrame is the received packet info reported by the peer: the largest
// observed sequence number, the peer's ack delay, the sequence numbers it is
// still missing, and the ones it revived through FEC.
type AckFrame struct {
	LargestObserved protocol.PacketNumber
	// DelayTime is the time the peer held the largest observed packet before
	// sending this ack.
	DelayTime      time.Duration
	MissingPackets protocol.SequenceNumberSet
	RevivedPackets protocol.SequenceNumberSet
	// IsTruncated is set when the peer had to cut the missing ranges to fit
	// the frame into a packet. The missing set then underreports the holes.
	IsTruncated bool
}

// IsAwaitingPacket says if the peer reported the packet as still missing.
// Only valid for sequence numbers up to the largest observed.
func (f *AckFrame) IsAwaitingPacket(sequenceNumber protocol.PacketNumber) bool {
	return f.MissingPackets.Contains(sequenceNumber)
}
