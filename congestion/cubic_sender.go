package congestion

import (
	"time"

	"github.com/quicwire/quic-recovery/frames"
	"github.com/quicwire/quic-recovery/protocol"
	"github.com/quicwire/quic-recovery/utils"
)

const (
	maxBurstBytes                                        = 3 * protocol.DefaultTCPMSS
	defaultMinimumCongestionWindow protocol.PacketNumber = 2
	defaultNumConnections                                = 2
	// renoBeta is the backoff factor applied to the congestion window after a
	// loss in Reno mode. It is used as is, not scaled by the number of
	// emulated connections.
	renoBeta float32 = 0.7
)

type cubicSender struct {
	hybridSlowStart HybridSlowStart
	prr             PrrSender
	rttStats        *RTTStats
	stats           connectionStats
	cubic           *Cubic
	reno            bool

	// Track the largest packet that has been sent.
	largestSentPacketNumber protocol.PacketNumber

	// Track the largest packet that has been acked.
	largestAckedPacketNumber protocol.PacketNumber

	// Track the largest packet number outstanding when a CWND cutback occurs.
	largestSentAtLastCutback protocol.PacketNumber

	// Bytes sent and not yet acked, lost or abandoned.
	bytesInFlight protocol.ByteCount

	// Congestion window in packets.
	congestionWindow protocol.PacketNumber

	// ACK counter for the Reno implementation.
	congestionWindowCount protocol.ByteCount

	// Slow start congestion window in packets, aka ssthresh.
	slowstartThreshold protocol.PacketNumber

	// Whether the last loss event caused us to exit slowstart.
	// Used for stats collection of slowstartPacketsLost
	lastCutbackExitedSlowstart bool

	// Minimum congestion window in packets.
	minCongestionWindow protocol.PacketNumber

	// Maximum number of outstanding packets for tcp.
	maxTCPCongestionWindow protocol.PacketNumber
}

var _ SendAlgorithm = &cubicSender{}

// NewCubicSender makes a new cubic sender
func NewCubicSender(clock Clock, rttStats *RTTStats, reno bool, initialCongestionWindow, initialMaxCongestionWindow protocol.PacketNumber) SendAlgorithm {
	return &cubicSender{
		rttStats:               rttStats,
		reno:                   reno,
		minCongestionWindow:    defaultMinimumCongestionWindow,
		congestionWindow:       initialCongestionWindow,
		maxTCPCongestionWindow: initialMaxCongestionWindow,
		slowstartThreshold:     initialMaxCongestionWindow,
		cubic:                  NewCubic(clock),
	}
}

func (c *cubicSender) TimeUntilSend(now time.Time, transmissionType protocol.TransmissionType, hasRetransmittableData bool, isHandshake bool) time.Duration {
	// Non-retransmittable packets and loss probes are not congestion controlled.
	if !hasRetransmittableData || transmissionType == protocol.TlpRetransmission {
		return 0
	}
	if c.InRecovery() {
		// PRR is used when in recovery.
		return c.prr.TimeUntilSend(c.GetCongestionWindow(), c.bytesInFlight, c.GetSlowStartThreshold())
	}
	if c.GetCongestionWindow() > c.bytesInFlight {
		return 0
	}
	return utils.InfDuration
}

func (c *cubicSender) OnPacketSent(sentTime time.Time, sequenceNumber protocol.PacketNumber, bytes protocol.ByteCount, transmissionType protocol.TransmissionType, hasRetransmittableData bool) bool {
	// Only track packets that contribute to the congestion window.
	if !hasRetransmittableData {
		return false
	}
	if c.InRecovery() {
		// PRR is used when in recovery.
		c.prr.OnPacketSent(bytes)
	}
	c.largestSentPacketNumber = sequenceNumber
	c.bytesInFlight += bytes
	c.hybridSlowStart.OnPacketSent(sequenceNumber)
	return true
}

func (c *cubicSender) OnPacketAcked(sequenceNumber protocol.PacketNumber, ackedBytes protocol.ByteCount) {
	c.largestAckedPacketNumber = utils.Max(sequenceNumber, c.largestAckedPacketNumber)
	if ackedBytes > c.bytesInFlight {
		ackedBytes = c.bytesInFlight
	}
	c.bytesInFlight -= ackedBytes
	if c.InRecovery() {
		// PRR is used when in recovery.
		c.prr.OnPacketAcked(ackedBytes)
		return
	}
	c.maybeIncreaseCwnd(sequenceNumber, ackedBytes)
	if c.InSlowStart() {
		c.hybridSlowStart.OnPacketAcked(sequenceNumber)
	}
}

func (c *cubicSender) OnPacketLost(sequenceNumber protocol.PacketNumber, lossTime time.Time) {
	// TCP NewReno (RFC6582) says that once a loss occurs, any losses in packets
	// already sent should be treated as a single loss event, since it's expected.
	if sequenceNumber <= c.largestSentAtLastCutback {
		if c.lastCutbackExitedSlowstart {
			c.stats.slowstartPacketsLost++
		}
		return
	}
	c.lastCutbackExitedSlowstart = c.InSlowStart()

	c.prr.OnPacketLost(c.bytesInFlight)

	if c.reno {
		c.congestionWindow = protocol.PacketNumber(float32(c.congestionWindow) * renoBeta)
	} else {
		c.congestionWindow = c.cubic.CongestionWindowAfterPacketLoss(c.congestionWindow)
	}
	// Enforce a minimum congestion window.
	if c.congestionWindow < c.minCongestionWindow {
		c.congestionWindow = c.minCongestionWindow
	}
	c.slowstartThreshold = c.congestionWindow
	c.largestSentAtLastCutback = c.largestSentPacketNumber
}

func (c *cubicSender) OnPacketAbandoned(sequenceNumber protocol.PacketNumber, bytes protocol.ByteCount) {
	if bytes > c.bytesInFlight {
		bytes = c.bytesInFlight
	}
	c.bytesInFlight -= bytes
}

func (c *cubicSender) OnRetransmissionTimeout(packetsRetransmitted bool) {
	// The sent packet manager has marked every pending packet as no longer
	// pending before firing the timeout, so nothing is left in flight.
	c.bytesInFlight = 0
	c.largestSentAtLastCutback = 0
	if !packetsRetransmitted {
		return
	}
	c.rttStats.ExpireSmoothedMetrics()
	c.hybridSlowStart.Restart()
	c.cubic.Reset()
	c.slowstartThreshold = c.congestionWindow / 2
	c.congestionWindow = c.minCongestionWindow
}

func (c *cubicSender) OnIncomingCongestionFeedback(feedback *frames.CongestionFeedbackFrame, receiveTime time.Time) {
	// TCP style senders derive everything they need from acks.
}

func (c *cubicSender) UpdateRTT(rttSample time.Duration) {
	c.rttStats.UpdateRTT(rttSample, 0, time.Time{})
	if c.InSlowStart() && c.hybridSlowStart.ShouldExitSlowStart(c.rttStats.LatestRTT(), c.rttStats.MinRTT(), c.congestionWindow) {
		c.ExitSlowstart()
	}
}

func (c *cubicSender) SmoothedRTT() time.Duration {
	return c.rttStats.SmoothedRTT()
}

func (c *cubicSender) RetransmissionDelay() time.Duration {
	if c.rttStats.SmoothedRTT() == 0 {
		return 0
	}
	return c.rttStats.SmoothedRTT() + 4*c.rttStats.MeanDeviation()
}

// BandwidthEstimate returns the current bandwidth estimate
func (c *cubicSender) BandwidthEstimate() Bandwidth {
	srtt := c.rttStats.SmoothedRTT()
	if srtt == 0 {
		// If we haven't measured an rtt, the bandwidth estimate is unknown.
		return 0
	}
	return BandwidthFromDelta(c.GetCongestionWindow(), srtt)
}

func (c *cubicSender) GetCongestionWindow() protocol.ByteCount {
	return protocol.ByteCount(c.congestionWindow) * protocol.DefaultTCPMSS
}

// GetSlowStartThreshold returns the slow start threshold in bytes
func (c *cubicSender) GetSlowStartThreshold() protocol.ByteCount {
	return protocol.ByteCount(c.slowstartThreshold) * protocol.DefaultTCPMSS
}

func (c *cubicSender) SetFromConfig(config *protocol.Config, isServer bool) {
	if config == nil {
		return
	}
	if config.InitialCongestionWindow > 0 {
		c.congestionWindow = utils.Min(config.InitialCongestionWindow, c.maxTCPCongestionWindow)
	}
}

// InRecovery says if the sender is currently in a recovery period
func (c *cubicSender) InRecovery() bool {
	return c.largestAckedPacketNumber <= c.largestSentAtLastCutback && c.largestAckedPacketNumber != 0
}

// InSlowStart says if the sender is in slow start
func (c *cubicSender) InSlowStart() bool {
	return c.GetCongestionWindow() < c.GetSlowStartThreshold()
}

// ExitSlowstart leaves the slow start phase
func (c *cubicSender) ExitSlowstart() {
	c.slowstartThreshold = c.congestionWindow
}

// Called when we receive an ack. Normal TCP tracks how many packets one ack
// represents, but quic has a separate ack for each packet.
func (c *cubicSender) maybeIncreaseCwnd(ackedSequenceNumber protocol.PacketNumber, ackedBytes protocol.ByteCount) {
	// Do not increase the congestion window unless the sender is close to using
	// the current window.
	if !c.isCwndLimited() {
		c.cubic.OnApplicationLimited()
		return
	}
	if c.congestionWindow >= c.maxTCPCongestionWindow {
		return
	}
	if c.InSlowStart() {
		// TCP slow start, exponential growth, increase by one for each ACK.
		c.congestionWindow++
		return
	}
	if c.reno {
		// Classic Reno congestion avoidance provided for testing.
		c.congestionWindowCount++
		// Divide by num_connections to smoothly increase the CWND at a faster
		// rate than conventional Reno.
		if protocol.PacketNumber(c.congestionWindowCount*protocol.ByteCount(defaultNumConnections)) >= c.congestionWindow {
			c.congestionWindow++
			c.congestionWindowCount = 0
		}
	} else {
		c.congestionWindow = utils.Min(c.maxTCPCongestionWindow, c.cubic.CongestionWindowAfterAck(c.congestionWindow, c.rttStats.MinRTT()))
	}
}

func (c *cubicSender) isCwndLimited() bool {
	congestionWindow := c.GetCongestionWindow()
	if c.bytesInFlight >= congestionWindow {
		return true
	}
	availableBytes := congestionWindow - c.bytesInFlight
	slowStartLimited := c.InSlowStart() && c.bytesInFlight > congestionWindow/2
	return slowStartLimited || availableBytes <= maxBurstBytes
}
