package congestion

import (
	"time"

	"github.com/quicwire/quic-recovery/protocol"
	"github.com/quicwire/quic-recovery/utils"
)

// The pacer can queue up to this many full size packets as a burst after a
// period of quiescence, so short flows still start quickly.
const maxBurstPackets = 10

// pacingSender wraps a send algorithm and delays packets so they leave evenly
// spaced, instead of in line-rate bursts of a full congestion window.
type pacingSender struct {
	SendAlgorithm

	// Smallest pacing delay that is reported to the caller. A positive delay
	// below this granularity is rounded up to it.
	alarmGranularity time.Duration

	burstTokens        int
	nextPacketSendTime time.Time
	lastSendTime       time.Time
}

var _ SendAlgorithm = &pacingSender{}

// NewPacingSender wraps a send algorithm with pacing. Wrapping an already
// paced sender is the caller's mistake, the sent packet manager wraps at most
// once.
func NewPacingSender(wrapped SendAlgorithm, alarmGranularity time.Duration) SendAlgorithm {
	return &pacingSender{
		SendAlgorithm:    wrapped,
		alarmGranularity: alarmGranularity,
		burstTokens:      maxBurstPackets,
	}
}

func (p *pacingSender) TimeUntilSend(now time.Time, transmissionType protocol.TransmissionType, hasRetransmittableData bool, isHandshake bool) time.Duration {
	delay := p.SendAlgorithm.TimeUntilSend(now, transmissionType, hasRetransmittableData, isHandshake)
	if delay != 0 {
		// Congestion blocked, pacing cannot make it sooner.
		return delay
	}
	if !hasRetransmittableData || isHandshake {
		return 0
	}
	if p.burstTokens > 0 {
		return 0
	}
	if !p.nextPacketSendTime.After(now) {
		return 0
	}
	return utils.Max(p.alarmGranularity, p.nextPacketSendTime.Sub(now))
}

func (p *pacingSender) OnPacketSent(sentTime time.Time, sequenceNumber protocol.PacketNumber, bytes protocol.ByteCount, transmissionType protocol.TransmissionType, hasRetransmittableData bool) bool {
	tracked := p.SendAlgorithm.OnPacketSent(sentTime, sequenceNumber, bytes, transmissionType, hasRetransmittableData)
	if !hasRetransmittableData {
		return tracked
	}
	// Refill the burst allowance after quiescence.
	if p.lastSendTime.IsZero() || sentTime.Sub(p.lastSendTime) > p.SendAlgorithm.RetransmissionDelay() {
		p.burstTokens = maxBurstPackets
	}
	p.lastSendTime = sentTime
	if p.burstTokens > 0 {
		p.burstTokens--
		p.nextPacketSendTime = sentTime
		return tracked
	}
	if bw := p.SendAlgorithm.BandwidthEstimate(); bw != 0 {
		// Time it takes bytes to drain at the estimated bandwidth.
		delay := time.Duration(protocol.ByteCount(time.Second) * bytes * protocol.ByteCount(BytesPerSecond) / protocol.ByteCount(bw))
		p.nextPacketSendTime = utils.MaxTime(p.nextPacketSendTime, sentTime).Add(delay)
	}
	return tracked
}
