package ackhandler

import (
	"time"

	"github.com/quicwire/quic-recovery/congestion"
	"github.com/quicwire/quic-recovery/frames"
	"github.com/quicwire/quic-recovery/protocol"
	"github.com/quicwire/quic-recovery/qtrace"
	"github.com/quicwire/quic-recovery/utils"
)

const (
	defaultRetransmissionTime = 500 * time.Millisecond
	// TCP RFC calls for 1 second RTO however Linux differs from this default
	// and defines the minimum RTO to 200ms, we will use the same until we have
	// data to support a higher or lower value.
	minRetransmissionTime = 200 * time.Millisecond
	maxRetransmissionTime = 60 * time.Second
	maxRetransmissions    = 10

	// TCP retransmits after 3 nacks.
	numberOfNacksBeforeRetransmission = 3

	// Only exponentially back off the handshake timer 5 times due to a timeout.
	maxHandshakeRetransmissionBackoffs = 5
	minHandshakeTimeout                = 10 * time.Millisecond

	// Sends up to two tail loss probes before firing an RTO, per
	// draft RFC draft-dukkipati-tcpm-tcp-loss-probe.
	defaultMaxTailLossProbes = 2
	minTailLossProbeTimeout  = 10 * time.Millisecond
)

const (
	receivedByPeer    = true
	notReceivedByPeer = false
)

// retransmissionMode is the state of the shared retransmission timer
type retransmissionMode uint8

const (
	// handshakeMode retransmits all pending crypto packets on expiry
	handshakeMode retransmissionMode = iota
	// tlpMode probes with the oldest retransmittable packet on expiry
	tlpMode
	// rtoMode abandons and requeues every pending packet on expiry
	rtoMode
)

type sentPacketManager struct {
	unackedPackets         *unackedPacketMap
	pendingRetransmissions *pendingRetransmissionQueue
	ackNotifierManager     AckNotifierManager

	isServer bool
	clock    congestion.Clock
	stats    *ConnectionStats

	sendAlgorithm congestion.SendAlgorithm
	// The most recent RTT sample, InfDuration until one has been taken.
	rttSample time.Duration

	// Number of retransmittable crypto handshake packets not yet processed by
	// the peer.
	pendingCryptoPacketCount int

	consecutiveRTOCount                  uint
	consecutiveTLPCount                  uint
	consecutiveCryptoRetransmissionCount uint
	maxTailLossProbes                    uint

	trackRetransmissionHistory bool
	usingPacing                bool

	tracer *qtrace.Tracer
	logger utils.Logger
}

var _ SentPacketManager = &sentPacketManager{}

// NewSentPacketManager creates a sent packet manager. The clock must be
// monotone and is shared with the owning connection, the stats sink is
// written by the manager and may be read between calls. The tracer may be nil.
func NewSentPacketManager(
	isServer bool,
	clock congestion.Clock,
	stats *ConnectionStats,
	congestionType protocol.CongestionControlAlgorithm,
	tracer *qtrace.Tracer,
) SentPacketManager {
	prefix := "Client:"
	if isServer {
		prefix = "Server:"
	}
	return &sentPacketManager{
		unackedPackets:             newUnackedPacketMap(),
		pendingRetransmissions:     newPendingRetransmissionQueue(),
		ackNotifierManager:         NewAckNotifierManager(),
		isServer:                   isServer,
		clock:                      clock,
		stats:                      stats,
		sendAlgorithm:              congestion.NewSendAlgorithm(clock, congestionType),
		rttSample:                  utils.InfDuration,
		maxTailLossProbes:          defaultMaxTailLossProbes,
		trackRetransmissionHistory: true,
		tracer:                     tracer,
		logger:                     utils.DefaultLogger.WithPrefix(prefix),
	}
}

func (m *sentPacketManager) SetFromConfig(config *protocol.Config) {
	if config.InitialRoundTripTimeUs > 0 && m.rttSample == utils.InfDuration {
		// The initial RTT should already be set on the client side.
		if !m.isServer {
			m.logger.Debugf("Client did not set an initial RTT, but did negotiate one")
		}
		m.rttSample = time.Duration(config.InitialRoundTripTimeUs) * time.Microsecond
		m.sendAlgorithm.UpdateRTT(m.rttSample)
	}
	m.trackRetransmissionHistory = config.TrackRetransmissionHistory
	if config.CongestionControl == protocol.CongestionControlPace {
		m.maybeEnablePacing(config)
	}
	m.sendAlgorithm.SetFromConfig(config, m.isServer)
}

func (m *sentPacketManager) maybeEnablePacing(config *protocol.Config) {
	if !config.EnablePacing {
		return
	}
	if m.usingPacing {
		return
	}
	m.usingPacing = true
	m.sendAlgorithm = congestion.NewPacingSender(m.sendAlgorithm, time.Microsecond)
}

func (m *sentPacketManager) OnSerializedPacket(packet *SerializedPacket) error {
	if err := m.unackedPackets.AddPacket(packet); err != nil {
		m.logger.Errorf("Cannot track packet %d: %s", packet.SequenceNumber, err)
		return err
	}
	if packet.RetransmittableFrames != nil {
		m.ackNotifierManager.OnSerializedPacket(packet)
		if packet.RetransmittableFrames.HasCryptoHandshake() {
			m.pendingCryptoPacketCount++
		}
	}
	return nil
}

func (m *sentPacketManager) OnRetransmittedPacket(oldSequenceNumber, newSequenceNumber protocol.PacketNumber) error {
	if !m.pendingRetransmissions.Contains(oldSequenceNumber) {
		m.logger.Errorf("Packet %d was not queued for retransmission", oldSequenceNumber)
		return ErrUnknownSequenceNumber
	}
	if err := m.unackedPackets.OnRetransmittedPacket(oldSequenceNumber, newSequenceNumber); err != nil {
		return err
	}
	m.pendingRetransmissions.Remove(oldSequenceNumber)

	// A notifier may be waiting to hear about acks for the original sequence
	// number. Inform it that the sequence number has changed.
	m.ackNotifierManager.UpdateSequenceNumber(oldSequenceNumber, newSequenceNumber)
	return nil
}

func (m *sentPacketManager) OnPacketSent(
	sequenceNumber protocol.PacketNumber,
	sentTime time.Time,
	bytes protocol.ByteCount,
	transmissionType protocol.TransmissionType,
	hasRetransmittableData bool,
) bool {
	if sequenceNumber == 0 || bytes == 0 {
		m.logger.Errorf("Cannot send empty packets")
		return false
	}
	// In rare circumstances, the packet could be serialized, sent, and then
	// acked before OnPacketSent is called.
	if !m.unackedPackets.IsUnacked(sequenceNumber) {
		return false
	}

	// Only track packets the send algorithm wants us to track.
	if !m.sendAlgorithm.OnPacketSent(sentTime, sequenceNumber, bytes, transmissionType, hasRetransmittableData) {
		m.unackedPackets.RemovePacket(sequenceNumber)
		// Do not reset the retransmission timer, since the packet isn't tracked.
		return false
	}

	setRetransmissionTimer := !m.unackedPackets.HasPendingPackets()

	if err := m.unackedPackets.SetPending(sequenceNumber, sentTime, bytes); err != nil {
		m.logger.Errorf("Cannot mark packet %d as pending: %s", sequenceNumber, err)
		return false
	}
	if m.tracer != nil {
		m.tracer.PacketSent(sentTime, sequenceNumber, bytes)
	}

	// Reset the retransmission timer anytime a packet is sent in tail loss
	// probe mode or before the crypto handshake has completed.
	return setRetransmissionTimer || m.retransmissionMode() != rtoMode
}

func (m *sentPacketManager) OnIncomingAck(ackFrame *frames.AckFrame, ackReceiveTime time.Time) {
	// We rely on the ack delay to compute an RTT estimate, so the RTT is only
	// updated when the largest observed gets acked.
	largestObservedAcked := m.unackedPackets.IsUnacked(ackFrame.LargestObserved)
	m.maybeUpdateRTT(ackFrame, ackReceiveTime)
	m.handleAckForSentPackets(ackFrame)
	m.maybeRetransmitOnAckFrame(ackFrame, ackReceiveTime)

	if largestObservedAcked {
		// Reset all retransmit counters any time a new packet is acked.
		m.consecutiveRTOCount = 0
		m.consecutiveTLPCount = 0
		m.consecutiveCryptoRetransmissionCount = 0
	}
}

func (m *sentPacketManager) OnIncomingCongestionFeedback(feedback *frames.CongestionFeedbackFrame, receiveTime time.Time) {
	m.sendAlgorithm.OnIncomingCongestionFeedback(feedback, receiveTime)
}

func (m *sentPacketManager) DiscardUnackedPacket(sequenceNumber protocol.PacketNumber) {
	m.markPacketHandled(sequenceNumber, notReceivedByPeer)
}

func (m *sentPacketManager) maybeUpdateRTT(ackFrame *frames.AckFrame, ackReceiveTime time.Time) {
	// The RTT is calculated from the largest observed packet, the lower
	// sequence numbers would include the peer's ack aggregation delay.
	info := m.unackedPackets.GetTransmissionInfo(ackFrame.LargestObserved)
	if info == nil {
		return
	}
	// Don't update the RTT if the packet has not been sent yet.
	if info.sentTime.IsZero() {
		return
	}

	sendDelta := ackReceiveTime.Sub(info.sentTime)
	if sendDelta > ackFrame.DelayTime {
		m.rttSample = sendDelta - ackFrame.DelayTime
	} else if m.rttSample == utils.InfDuration {
		// The peer reported an ack delay larger than the send delta, which
		// would be a negative RTT. Use the send delta as an approximation
		// until a valid sample arrives.
		m.rttSample = sendDelta
	}
	if m.rttSample != utils.InfDuration {
		m.sendAlgorithm.UpdateRTT(m.rttSample)
		if m.logger.Debug() {
			m.logger.Debugf("\tEstimated RTT: %s", m.SmoothedRTT())
		}
	}
}

func (m *sentPacketManager) handleAckForSentPackets(ackFrame *frames.AckFrame) {
	// First pass: collect everything this ack retires. Retiring a packet can
	// remove its whole retransmission chain from the registry, so the walk
	// must not keep positional state across mutations.
	var ackedPackets []protocol.PacketNumber
	for _, p := range m.unackedPackets.sequenceNumbers {
		if p > ackFrame.LargestObserved {
			// These are very new sequence numbers.
			break
		}
		if ackFrame.IsAwaitingPacket(p) {
			continue
		}
		ackedPackets = append(ackedPackets, p)
	}
	for _, p := range ackedPackets {
		if !m.unackedPackets.IsUnacked(p) {
			// Already retired as the chain sibling of an earlier acked packet.
			continue
		}
		m.logger.Debugf("Got an ack for packet %d", p)
		m.markPacketHandled(p, receivedByPeer)

		// The AckNotifierManager is informed of every acked sequence number.
		m.ackNotifierManager.OnPacketAcked(p)
	}

	// Discard any retransmittable frames associated with revived packets.
	// A pending revived packet stays in the registry as a placeholder, its
	// bytes remain outstanding until the send algorithm retires them through
	// a later abandonment.
	for p := range ackFrame.RevivedPackets {
		if !m.unackedPackets.IsUnacked(p) {
			continue
		}
		if !m.unackedPackets.IsPending(p) {
			m.unackedPackets.RemovePacket(p)
		} else {
			if err := m.unackedPackets.NeuterPacket(p); err != nil {
				m.logger.Errorf("Cannot neuter revived packet %d: %s", p, err)
			}
		}
	}

	// If we have received a truncated ack, we need to clear out some previous
	// transmissions to allow the peer to actually ACK new packets.
	if ackFrame.IsTruncated {
		m.unackedPackets.ClearPreviousRetransmissions(len(ackFrame.MissingPackets) / 2)
	}
}

// markPacketHandled retires a payload: on a positive verdict the peer
// received it, otherwise it is abandoned. All transmissions of the payload
// are taken out of the registry, or neutered if they are still pending.
func (m *sentPacketManager) markPacketHandled(p protocol.PacketNumber, receivedByPeer bool) {
	info := m.unackedPackets.GetTransmissionInfo(p)
	if info == nil {
		m.logger.Errorf("Packet is not unacked: %d", p)
		return
	}
	// If this packet is pending, remove it and inform the send algorithm.
	if info.pending {
		if receivedByPeer {
			m.sendAlgorithm.OnPacketAcked(p, info.bytesSent)
		} else {
			// It's been abandoned.
			m.sendAlgorithm.OnPacketAbandoned(p, info.bytesSent)
		}
		m.unackedPackets.SetNotPending(p)
	}

	if !m.trackRetransmissionHistory {
		// Without retransmission history, only this transmission is retired.
		m.pendingRetransmissions.Remove(p)
		if hasCryptoHandshake(info) {
			m.pendingCryptoPacketCount--
		}
		if !info.pending {
			m.unackedPackets.RemovePacket(p)
		} else {
			m.unackedPackets.NeuterPacket(p)
		}
		return
	}

	// The chain shrinks while its members are removed, walk a snapshot.
	allTransmissions := info.allTransmissions.DescendingSnapshot()
	newestTransmission := allTransmissions[0]
	if newestTransmission != p {
		m.stats.PacketsSpuriouslyRetransmitted++
		if m.tracer != nil {
			m.tracer.SpuriousRetransmission(m.clock.Now(), newestTransmission)
		}
	}

	hasCrypto := hasCryptoHandshake(m.unackedPackets.GetTransmissionInfo(newestTransmission))
	if hasCrypto {
		// The handshake obligation is discharged.
		m.pendingCryptoPacketCount--
	}
	for _, previousTransmission := range allTransmissions {
		transmissionInfo := m.unackedPackets.GetTransmissionInfo(previousTransmission)
		if transmissionInfo == nil {
			continue
		}
		// Don't bother retransmitting this packet, if it has been marked for
		// retransmission.
		m.pendingRetransmissions.Remove(previousTransmission)
		if hasCrypto {
			// If it's a crypto handshake packet, discard it and all
			// retransmissions, since they won't be acked now that one has been
			// processed.
			m.onPacketAbandoned(previousTransmission)
			m.unackedPackets.SetNotPending(previousTransmission)
		}
		if !transmissionInfo.pending {
			m.unackedPackets.RemovePacket(previousTransmission)
		} else {
			m.unackedPackets.NeuterPacket(previousTransmission)
		}
	}
}

func (m *sentPacketManager) onPacketAbandoned(p protocol.PacketNumber) {
	info := m.unackedPackets.GetTransmissionInfo(p)
	if info == nil || !info.pending {
		return
	}
	if info.bytesSent == 0 {
		m.logger.Errorf("Abandoning packet %d with zero bytes sent", p)
	}
	m.sendAlgorithm.OnPacketAbandoned(p, info.bytesSent)
	m.unackedPackets.SetNotPending(p)
}

func (m *sentPacketManager) maybeRetransmitOnAckFrame(ackFrame *frames.AckFrame, ackReceiveTime time.Time) {
	// Go through all pending packets up to the largest observed. A gap between
	// a missing packet and the largest observed counts as multiple nacks,
	// since the purpose of the nack threshold is to tolerate reordering. This
	// handles both StretchAcks and Forward Acks.
	for _, p := range m.unackedPackets.sequenceNumbers {
		if p > ackFrame.LargestObserved {
			break
		}
		if !m.unackedPackets.IsPending(p) {
			continue
		}
		m.logger.Debugf("Still missing packet %d", p)
		m.unackedPackets.NackPacket(p, uint32(ackFrame.LargestObserved-p))
	}

	lostPackets := detectLostPackets(m.unackedPackets, ackReceiveTime, ackFrame.LargestObserved)
	for _, p := range lostPackets {
		m.stats.PacketsLost++
		if m.tracer != nil {
			m.tracer.PacketLost(ackReceiveTime, p)
		}
		m.sendAlgorithm.OnPacketLost(p, ackReceiveTime)
		m.onPacketAbandoned(p)

		if m.unackedPackets.HasRetransmittableFrames(p) {
			m.logger.Debugf("\tQueueing packet %d for retransmission (fast)", p)
			m.markForRetransmission(p, protocol.NackRetransmission)
		} else {
			// Nothing is left to retransmit. This is either the current
			// transmission of a packet whose previous transmission has been
			// acked, or a packet that has been TLP retransmitted.
			m.unackedPackets.RemovePacket(p)
		}
	}
}

// detectLostPackets returns the pending sequence numbers up to the largest
// observed whose nack counts crossed the retransmission threshold. It
// inspects the registry without modifying it, retransmission decisions are
// the caller's.
func detectLostPackets(unackedPackets *unackedPacketMap, now time.Time, largestObserved protocol.PacketNumber) []protocol.PacketNumber {
	var lostPackets []protocol.PacketNumber
	for _, p := range unackedPackets.sequenceNumbers {
		if p > largestObserved {
			break
		}
		info := unackedPackets.packets[p]
		if !info.pending {
			continue
		}
		nacksNeeded := uint32(numberOfNacksBeforeRetransmission)
		// Early retransmit (RFC 5827): when the largest observed equals the
		// largest sent, nothing newer remains in flight to elicit further
		// nacks, so the threshold becomes the distance to the largest observed.
		if info.retransmittableFrames != nil && unackedPackets.largestSentPacket == largestObserved {
			nacksNeeded = uint32(largestObserved - p)
		}
		if info.nackCount < nacksNeeded {
			continue
		}
		lostPackets = append(lostPackets, p)
	}
	return lostPackets
}

func (m *sentPacketManager) markForRetransmission(p protocol.PacketNumber, transmissionType protocol.TransmissionType) {
	info := m.unackedPackets.GetTransmissionInfo(p)
	if info == nil || info.retransmittableFrames == nil || info.sentTime.IsZero() {
		m.logger.Errorf("Cannot mark packet %d for retransmission", p)
		return
	}
	// The RTO can fire while a NACK retransmission of the same payload is
	// still queued. The first reason wins.
	m.pendingRetransmissions.Add(p, transmissionType)
}

func (m *sentPacketManager) RetransmitUnackedPackets(retransmissionType protocol.RetransmissionType) {
	for _, p := range m.unackedPackets.AscendingSnapshot() {
		info := m.unackedPackets.GetTransmissionInfo(p)
		if info == nil {
			// Retired as a chain sibling earlier in this walk.
			continue
		}
		retransmittableFrames := info.retransmittableFrames
		// Only mark it as handled if it can't be retransmitted and there are
		// no pending retransmissions which would be cleared.
		if retransmittableFrames == nil && info.allTransmissions.Len() == 1 && retransmissionType == protocol.RetransmitAllPackets {
			m.markPacketHandled(p, notReceivedByPeer)
			continue
		}
		// If it had no other transmissions, it is handled above. If it has
		// other transmissions, one of them must have retransmittable frames,
		// so that gets resolved the same way as other retransmissions.
		if retransmittableFrames != nil && (retransmissionType == protocol.RetransmitAllPackets ||
			retransmittableFrames.EncryptionLevel() == protocol.EncryptionSecure) {
			m.onPacketAbandoned(p)
			m.markForRetransmission(p, protocol.NackRetransmission)
		}
	}
}

func (m *sentPacketManager) HasPendingRetransmissions() bool {
	return m.pendingRetransmissions.Len() > 0
}

func (m *sentPacketManager) NextPendingRetransmission() *PendingRetransmission {
	if m.pendingRetransmissions.Len() == 0 {
		m.logger.Errorf("NextPendingRetransmission called with no pending retransmissions")
		return nil
	}
	p, transmissionType := m.pendingRetransmissions.Oldest()
	info := m.unackedPackets.GetTransmissionInfo(p)
	if info == nil || info.retransmittableFrames == nil {
		m.logger.Errorf("Pending retransmission %d has no retransmittable frames", p)
		return nil
	}
	return &PendingRetransmission{
		SequenceNumber:        p,
		TransmissionType:      transmissionType,
		RetransmittableFrames: info.retransmittableFrames,
		SequenceNumberLength:  info.sequenceNumberLength,
	}
}

func (m *sentPacketManager) HasRetransmittableFrames(sequenceNumber protocol.PacketNumber) bool {
	return m.unackedPackets.HasRetransmittableFrames(sequenceNumber)
}

func (m *sentPacketManager) IsUnacked(sequenceNumber protocol.PacketNumber) bool {
	return m.unackedPackets.IsUnacked(sequenceNumber)
}

func (m *sentPacketManager) HasUnackedPackets() bool {
	return m.unackedPackets.HasUnackedPackets()
}

func (m *sentPacketManager) GetLeastUnackedSentPacket() protocol.PacketNumber {
	return m.unackedPackets.GetLeastUnackedSentPacket()
}

func (m *sentPacketManager) OnRetransmissionTimeout() {
	if !m.unackedPackets.HasPendingPackets() {
		m.logger.Errorf("Retransmission timer fired with no pending packets")
		return
	}
	// Handshake retransmission, TLP and RTO are implemented with a single
	// alarm. The handshake alarm is set when the handshake has not completed,
	// the TLP and RTO alarms after that. The TLP alarm always runs out before
	// an RTO would.
	switch m.retransmissionMode() {
	case handshakeMode:
		m.stats.CryptoRetransmitCount++
		if m.tracer != nil {
			m.tracer.RetransmissionTimerFired(m.clock.Now(), "handshake")
		}
		m.retransmitCryptoPackets()
	case tlpMode:
		m.stats.TLPCount++
		if m.tracer != nil {
			m.tracer.RetransmissionTimerFired(m.clock.Now(), "tlp")
		}
		m.retransmitOldestPacket()
	case rtoMode:
		m.stats.RTOCount++
		if m.tracer != nil {
			m.tracer.RetransmissionTimerFired(m.clock.Now(), "rto")
		}
		m.retransmitAllPackets()
	}
}

func (m *sentPacketManager) retransmitCryptoPackets() {
	m.consecutiveCryptoRetransmissionCount = utils.Min(m.consecutiveCryptoRetransmissionCount+1, uint(maxHandshakeRetransmissionBackoffs))
	packetRetransmitted := false
	for _, p := range m.unackedPackets.sequenceNumbers {
		info := m.unackedPackets.packets[p]
		// Only retransmit frames which are pending, and therefore have been sent.
		if !info.pending || !hasCryptoHandshake(info) {
			continue
		}
		packetRetransmitted = true
		m.markForRetransmission(p, protocol.HandshakeRetransmission)
		// Abandon all the crypto retransmissions now so they're not lost later.
		m.onPacketAbandoned(p)
	}
	if !packetRetransmitted {
		m.logger.Errorf("No crypto packets found to retransmit")
	}
}

func (m *sentPacketManager) retransmitOldestPacket() {
	m.consecutiveTLPCount++
	for _, p := range m.unackedPackets.sequenceNumbers {
		info := m.unackedPackets.packets[p]
		// Only retransmit frames which are pending, and therefore have been sent.
		if !info.pending || info.retransmittableFrames == nil {
			continue
		}
		if info.retransmittableFrames.HasCryptoHandshake() {
			m.logger.Errorf("Crypto packet %d reached the tail loss probe", p)
		}
		m.markForRetransmission(p, protocol.TlpRetransmission)
		return
	}
	m.logger.Errorf("No retransmittable packets, so RetransmitOldestPacket failed")
}

func (m *sentPacketManager) retransmitAllPackets() {
	m.logger.Debugf("OnRetransmissionTimeout fired with %d unacked packets", m.unackedPackets.Len())
	// Request retransmission of all retransmittable packets when the RTO
	// fires, and let the congestion manager decide how many to send
	// immediately. The remaining packets stay queued. Non-retransmittable
	// packets simply leave the in-flight accounting.
	packetsRetransmitted := false
	for _, p := range m.unackedPackets.sequenceNumbers {
		info := m.unackedPackets.packets[p]
		m.unackedPackets.SetNotPending(p)
		if info.retransmittableFrames != nil {
			packetsRetransmitted = true
			m.markForRetransmission(p, protocol.RtoRetransmission)
		}
	}

	// The send algorithm expects zero bytes in flight at this point.
	m.sendAlgorithm.OnRetransmissionTimeout(packetsRetransmitted)
	if packetsRetransmitted {
		m.consecutiveRTOCount++
	}
}

func (m *sentPacketManager) retransmissionMode() retransmissionMode {
	if m.pendingCryptoPacketCount > 0 {
		return handshakeMode
	}
	if m.consecutiveTLPCount < m.maxTailLossProbes && m.unackedPackets.HasUnackedRetransmittableFrames() {
		return tlpMode
	}
	return rtoMode
}

func (m *sentPacketManager) GetRetransmissionTime() time.Time {
	// Don't set the timer if there are no pending packets.
	if !m.unackedPackets.HasPendingPackets() {
		return time.Time{}
	}
	switch m.retransmissionMode() {
	case handshakeMode:
		return m.clock.Now().Add(m.cryptoRetransmissionDelay())
	case tlpMode:
		// The timer is based on the send time of the last pending packet,
		// even if that packet no longer carries retransmittable frames.
		tlpTime := m.unackedPackets.GetLastPacketSentTime().Add(m.tailLossProbeDelay())
		// Ensure the TLP timer never gets set to a time in the past.
		return utils.MaxTime(m.clock.Now(), tlpTime)
	default:
		// The RTO is based on the first pending packet, but always waits at
		// least 1.5 * SRTT from now.
		sentTime := m.unackedPackets.GetFirstPendingPacketSentTime()
		minTimeout := m.clock.Now().Add(m.SmoothedRTT() * 3 / 2)
		rtoTimeout := sentTime.Add(m.retransmissionDelay())
		return utils.MaxTime(minTimeout, rtoTimeout)
	}
}

func (m *sentPacketManager) cryptoRetransmissionDelay() time.Duration {
	// This is equivalent to the tail loss probe delay, but slightly more
	// aggressive because crypto handshake messages don't incur a delayed ack time.
	delay := utils.Max(minHandshakeTimeout, m.SmoothedRTT()*3/2)
	return delay << m.consecutiveCryptoRetransmissionCount
}

func (m *sentPacketManager) tailLossProbeDelay() time.Duration {
	srtt := m.SmoothedRTT()
	if !m.unackedPackets.HasMultiplePendingPackets() {
		return utils.Max(srtt*3/2+m.DelayedAckTime(), 2*srtt)
	}
	return utils.Max(minTailLossProbeTimeout, 2*srtt)
}

func (m *sentPacketManager) retransmissionDelay() time.Duration {
	retransmissionDelay := m.sendAlgorithm.RetransmissionDelay()
	if retransmissionDelay == 0 {
		// We are in the initial state, use default timeout values.
		retransmissionDelay = defaultRetransmissionTime
	} else if retransmissionDelay < minRetransmissionTime {
		retransmissionDelay = minRetransmissionTime
	}

	// Calculate exponential back off.
	retransmissionDelay = retransmissionDelay << utils.Min(m.consecutiveRTOCount, uint(maxRetransmissions))

	if retransmissionDelay > maxRetransmissionTime {
		return maxRetransmissionTime
	}
	return retransmissionDelay
}

// DelayedAckTime is the expected peer delayed ack time. It is kept below
// half of the minimum RTO, so the delayed ack can get back to this endpoint
// before the retransmission timer fires, assuming equal forward and reverse
// path delays.
func (m *sentPacketManager) DelayedAckTime() time.Duration {
	return minRetransmissionTime / 2
}

func (m *sentPacketManager) TimeUntilSend(now time.Time, transmissionType protocol.TransmissionType, hasRetransmittableData bool, isHandshake bool) time.Duration {
	return m.sendAlgorithm.TimeUntilSend(now, transmissionType, hasRetransmittableData, isHandshake)
}

func (m *sentPacketManager) SmoothedRTT() time.Duration {
	return m.sendAlgorithm.SmoothedRTT()
}

func (m *sentPacketManager) BandwidthEstimate() congestion.Bandwidth {
	return m.sendAlgorithm.BandwidthEstimate()
}

func (m *sentPacketManager) GetCongestionWindow() protocol.ByteCount {
	return m.sendAlgorithm.GetCongestionWindow()
}

func hasCryptoHandshake(info *transmissionInfo) bool {
	return info != nil && info.retransmittableFrames != nil && info.retransmittableFrames.HasCryptoHandshake()
}
