package ackhandler

import (
	"github.com/quicwire/quic-recovery/frames"
	"github.com/quicwire/quic-recovery/protocol"
)

// A SerializedPacket is a packet that has been handed to the wire, as the
// sent packet manager sees it: the sequence number, the width it was encoded
// with, and the frames that must be delivered, if any.
type SerializedPacket struct {
	SequenceNumber        protocol.PacketNumber
	SequenceNumberLength  protocol.PacketNumberLen
	RetransmittableFrames *frames.RetransmittableFrames
}

// A PendingRetransmission is a payload that has been chosen for
// retransmission, together with the reason it was chosen.
type PendingRetransmission struct {
	SequenceNumber        protocol.PacketNumber
	TransmissionType      protocol.TransmissionType
	RetransmittableFrames *frames.RetransmittableFrames
	SequenceNumberLength  protocol.PacketNumberLen
}
