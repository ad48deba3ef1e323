package ackhandler

import (
	"time"

	"github.com/quicwire/quic-recovery/congestion"
	"github.com/quicwire/quic-recovery/frames"
	"github.com/quicwire/quic-recovery/protocol"
)

// SentPacketManager tracks sent packets until they are acked, lost or
// abandoned, drives retransmission decisions and feeds the send algorithm.
// All methods must be called from the connection's event loop, the manager
// does not lock.
type SentPacketManager interface {
	// SetFromConfig applies the negotiated connection parameters
	SetFromConfig(config *protocol.Config)

	// OnSerializedPacket starts tracking a packet that has been serialized
	// for transmission
	OnSerializedPacket(packet *SerializedPacket) error
	// OnRetransmittedPacket is called when a queued retransmission has been
	// reserialized under a new sequence number
	OnRetransmittedPacket(oldSequenceNumber, newSequenceNumber protocol.PacketNumber) error
	// OnPacketSent is called when a tracked packet has been handed to the
	// wire. It returns whether the caller should (re)arm the retransmission timer.
	OnPacketSent(sequenceNumber protocol.PacketNumber, sentTime time.Time, bytes protocol.ByteCount, transmissionType protocol.TransmissionType, hasRetransmittableData bool) bool

	// OnIncomingAck processes an ack frame: it retires acked packets, runs
	// loss detection and queues lost payloads for retransmission
	OnIncomingAck(ackFrame *frames.AckFrame, ackReceiveTime time.Time)
	// OnIncomingCongestionFeedback hands congestion feedback to the send algorithm
	OnIncomingCongestionFeedback(feedback *frames.CongestionFeedbackFrame, receiveTime time.Time)

	// OnRetransmissionTimeout must be called when the timer reported by
	// GetRetransmissionTime fires. Calling it without pending packets is a
	// programmer error.
	OnRetransmissionTimeout()
	// RetransmitUnackedPackets queues unacked packets for retransmission in
	// bulk, used on encryption level changes
	RetransmitUnackedPackets(retransmissionType protocol.RetransmissionType)
	// DiscardUnackedPacket retires a packet that the connection gave up on
	DiscardUnackedPacket(sequenceNumber protocol.PacketNumber)

	HasPendingRetransmissions() bool
	// NextPendingRetransmission returns the oldest queued retransmission
	// without removing it. Removal happens in OnRetransmittedPacket, once the
	// payload has been reserialized.
	NextPendingRetransmission() *PendingRetransmission

	HasRetransmittableFrames(sequenceNumber protocol.PacketNumber) bool
	IsUnacked(sequenceNumber protocol.PacketNumber) bool
	HasUnackedPackets() bool
	GetLeastUnackedSentPacket() protocol.PacketNumber

	// GetRetransmissionTime reports the deadline the connection should arm
	// its timer with. The zero time means no deadline.
	GetRetransmissionTime() time.Time
	DelayedAckTime() time.Duration

	TimeUntilSend(now time.Time, transmissionType protocol.TransmissionType, hasRetransmittableData bool, isHandshake bool) time.Duration
	SmoothedRTT() time.Duration
	BandwidthEstimate() congestion.Bandwidth
	GetCongestionWindow() protocol.ByteCount
}
