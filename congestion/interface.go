package congestion

import (
	"time"

	"github.com/quicwire/quic-recovery/frames"
	"github.com/quicwire/quic-recovery/protocol"
)

// A SendAlgorithm performs congestion control and calculates the congestion window
type SendAlgorithm interface {
	TimeUntilSend(now time.Time, transmissionType protocol.TransmissionType, hasRetransmittableData bool, isHandshake bool) time.Duration
	// OnPacketSent returns false if the send algorithm doesn't want the packet
	// to be tracked
	OnPacketSent(sentTime time.Time, sequenceNumber protocol.PacketNumber, bytes protocol.ByteCount, transmissionType protocol.TransmissionType, hasRetransmittableData bool) bool
	OnPacketAcked(sequenceNumber protocol.PacketNumber, ackedBytes protocol.ByteCount)
	OnPacketLost(sequenceNumber protocol.PacketNumber, lossTime time.Time)
	OnPacketAbandoned(sequenceNumber protocol.PacketNumber, bytes protocol.ByteCount)
	OnRetransmissionTimeout(packetsRetransmitted bool)
	OnIncomingCongestionFeedback(feedback *frames.CongestionFeedbackFrame, receiveTime time.Time)
	UpdateRTT(rttSample time.Duration)
	SmoothedRTT() time.Duration
	RetransmissionDelay() time.Duration
	BandwidthEstimate() Bandwidth
	GetCongestionWindow() protocol.ByteCount
	SetFromConfig(config *protocol.Config, isServer bool)
}

// NewSendAlgorithm creates the send algorithm for the requested variant
func NewSendAlgorithm(clock Clock, algorithm protocol.CongestionControlAlgorithm) SendAlgorithm {
	switch algorithm {
	case protocol.CongestionControlReno:
		return NewCubicSender(
			clock,
			NewRTTStats(),
			true,
			protocol.InitialCongestionWindow,
			protocol.DefaultMaxCongestionWindow,
		)
	default:
		return NewCubicSender(
			clock,
			NewRTTStats(),
			false, /* don't use reno since chromium doesn't (why?) */
			protocol.InitialCongestionWindow,
			protocol.DefaultMaxCongestionWindow,
		)
	}
}
