package congestion

import (
	"time"

	"github.com/quicwire/quic-recovery/frames"
	"github.com/quicwire/quic-recovery/protocol"
	"github.com/quicwire/quic-recovery/utils"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// stubSendAlgorithm is an unlimited sender with a fixed bandwidth estimate,
// so the tests below observe the pacing delays in isolation.
type stubSendAlgorithm struct {
	bandwidth           Bandwidth
	retransmissionDelay time.Duration
	timeUntilSend       time.Duration
}

var _ SendAlgorithm = &stubSendAlgorithm{}

func (s *stubSendAlgorithm) TimeUntilSend(time.Time, protocol.TransmissionType, bool, bool) time.Duration {
	return s.timeUntilSend
}

func (s *stubSendAlgorithm) OnPacketSent(time.Time, protocol.PacketNumber, protocol.ByteCount, protocol.TransmissionType, bool) bool {
	return true
}

func (s *stubSendAlgorithm) OnPacketAcked(protocol.PacketNumber, protocol.ByteCount)     {}
func (s *stubSendAlgorithm) OnPacketLost(protocol.PacketNumber, time.Time)               {}
func (s *stubSendAlgorithm) OnPacketAbandoned(protocol.PacketNumber, protocol.ByteCount) {}
func (s *stubSendAlgorithm) OnRetransmissionTimeout(bool)                                {}
func (s *stubSendAlgorithm) OnIncomingCongestionFeedback(*frames.CongestionFeedbackFrame, time.Time) {
}
func (s *stubSendAlgorithm) UpdateRTT(time.Duration)                 {}
func (s *stubSendAlgorithm) SmoothedRTT() time.Duration              { return 0 }
func (s *stubSendAlgorithm) RetransmissionDelay() time.Duration      { return s.retransmissionDelay }
func (s *stubSendAlgorithm) BandwidthEstimate() Bandwidth            { return s.bandwidth }
func (s *stubSendAlgorithm) GetCongestionWindow() protocol.ByteCount { return protocol.ByteCount(1) << 30 }
func (s *stubSendAlgorithm) SetFromConfig(*protocol.Config, bool)    {}

var _ = Describe("Pacing sender", func() {
	var (
		wrapped *stubSendAlgorithm
		pacer   SendAlgorithm
		now     time.Time
	)

	// one full size packet per millisecond
	bandwidth := BandwidthFromDelta(protocol.DefaultTCPMSS, time.Millisecond)

	sendPacket := func(p protocol.PacketNumber) {
		pacer.OnPacketSent(now, p, protocol.DefaultTCPMSS, protocol.NotRetransmission, true)
	}

	BeforeEach(func() {
		wrapped = &stubSendAlgorithm{
			bandwidth:           bandwidth,
			retransmissionDelay: 200 * time.Millisecond,
		}
		pacer = NewPacingSender(wrapped, time.Microsecond)
		now = time.Date(2016, 5, 25, 23, 0, 0, 0, time.UTC)
	})

	It("sends a burst immediately", func() {
		for p := protocol.PacketNumber(1); p <= maxBurstPackets; p++ {
			Expect(pacer.TimeUntilSend(now, protocol.NotRetransmission, true, false)).To(BeZero())
			sendPacket(p)
		}
		// the burst allowance is used up, the next packet is paced
		sendPacket(maxBurstPackets + 1)
		Expect(pacer.TimeUntilSend(now, protocol.NotRetransmission, true, false)).To(Equal(time.Millisecond))
	})

	It("spaces packets at the estimated bandwidth", func() {
		for p := protocol.PacketNumber(1); p <= maxBurstPackets+2; p++ {
			sendPacket(p)
		}
		// two packets beyond the burst allowance, each takes a millisecond to drain
		Expect(pacer.TimeUntilSend(now, protocol.NotRetransmission, true, false)).To(Equal(2 * time.Millisecond))
	})

	It("doesn't pace handshake packets", func() {
		for p := protocol.PacketNumber(1); p <= maxBurstPackets+1; p++ {
			sendPacket(p)
		}
		Expect(pacer.TimeUntilSend(now, protocol.NotRetransmission, true, true)).To(BeZero())
	})

	It("doesn't pace non-retransmittable packets", func() {
		for p := protocol.PacketNumber(1); p <= maxBurstPackets+1; p++ {
			sendPacket(p)
		}
		Expect(pacer.TimeUntilSend(now, protocol.NotRetransmission, false, false)).To(BeZero())
	})

	It("passes congestion blocking through unchanged", func() {
		wrapped.timeUntilSend = utils.InfDuration
		Expect(pacer.TimeUntilSend(now, protocol.NotRetransmission, true, false)).To(Equal(utils.InfDuration))
	})

	It("refills the burst allowance after quiescence", func() {
		for p := protocol.PacketNumber(1); p <= maxBurstPackets+1; p++ {
			sendPacket(p)
		}
		Expect(pacer.TimeUntilSend(now, protocol.NotRetransmission, true, false)).ToNot(BeZero())

		// idle for longer than the retransmission delay
		now = now.Add(time.Second)
		sendPacket(maxBurstPackets + 2)
		Expect(pacer.TimeUntilSend(now, protocol.NotRetransmission, true, false)).To(BeZero())
	})
})
