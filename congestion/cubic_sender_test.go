package congestion_test

import (
	"time"

	"github.com/quicwire/quic-recovery/congestion"
	"github.com/quicwire/quic-recovery/protocol"
	"github.com/quicwire/quic-recovery/utils"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const defaultWindowTCP = protocol.ByteCount(protocol.InitialCongestionWindow) * protocol.DefaultTCPMSS

type mockClock time.Time

func (c *mockClock) Now() time.Time {
	return time.Time(*c)
}

func (c *mockClock) Advance(d time.Duration) {
	*c = mockClock(time.Time(*c).Add(d))
}

var _ = Describe("Cubic Sender", func() {
	var (
		sender            congestion.SendAlgorithm
		clock             mockClock
		packetNumber      protocol.PacketNumber
		ackedPacketNumber protocol.PacketNumber
	)

	BeforeEach(func() {
		clock = mockClock{}
		packetNumber = 1
		ackedPacketNumber = 0
		sender = congestion.NewCubicSender(&clock, congestion.NewRTTStats(), true /* reno */, protocol.InitialCongestionWindow, protocol.DefaultMaxCongestionWindow)
	})

	canSend := func() bool {
		return sender.TimeUntilSend(clock.Now(), protocol.NotRetransmission, true, false) == 0
	}

	// Send as long as TimeUntilSend returns zero.
	sendAvailableSendWindow := func() int {
		packetsSent := 0
		for canSend() {
			sender.OnPacketSent(clock.Now(), packetNumber, protocol.DefaultTCPMSS, protocol.NotRetransmission, true)
			packetNumber++
			packetsSent++
		}
		return packetsSent
	}

	ackNPackets := func(n int) {
		for i := 0; i < n; i++ {
			ackedPacketNumber++
			sender.OnPacketAcked(ackedPacketNumber, protocol.DefaultTCPMSS)
		}
	}

	It("works with default values", func() {
		Expect(sender.GetCongestionWindow()).To(Equal(defaultWindowTCP))
		Expect(canSend()).To(BeTrue())
		// Fill the send window with data, then verify that we can't send.
		Expect(sendAvailableSendWindow()).To(Equal(int(protocol.InitialCongestionWindow)))
		Expect(sender.TimeUntilSend(clock.Now(), protocol.NotRetransmission, true, false)).To(Equal(utils.InfDuration))
	})

	It("doesn't congestion control non-retransmittable packets", func() {
		sendAvailableSendWindow()
		Expect(sender.TimeUntilSend(clock.Now(), protocol.NotRetransmission, false, false)).To(BeZero())
	})

	It("doesn't congestion control tail loss probes", func() {
		sendAvailableSendWindow()
		Expect(sender.TimeUntilSend(clock.Now(), protocol.TlpRetransmission, true, false)).To(BeZero())
	})

	It("grows the window by one packet per ack in slow start", func() {
		const numberOfAcks = 20
		for i := 0; i < numberOfAcks; i++ {
			sendAvailableSendWindow()
			ackNPackets(2)
		}
		expected := defaultWindowTCP + protocol.ByteCount(2*numberOfAcks)*protocol.DefaultTCPMSS
		Expect(sender.GetCongestionWindow()).To(Equal(expected))
	})

	It("reduces the window on packet loss", func() {
		sendAvailableSendWindow()
		sender.OnPacketLost(1, clock.Now())
		factor := float32(protocol.InitialCongestionWindow) * 0.7
		expected := protocol.ByteCount(factor) * protocol.DefaultTCPMSS
		Expect(sender.GetCongestionWindow()).To(Equal(expected))
	})

	It("treats further losses in the same window as a single loss event", func() {
		sendAvailableSendWindow()
		sender.OnPacketLost(5, clock.Now())
		windowAfterFirstLoss := sender.GetCongestionWindow()
		sender.OnPacketLost(3, clock.Now())
		Expect(sender.GetCongestionWindow()).To(Equal(windowAfterFirstLoss))
	})

	It("collapses the window on a retransmission timeout", func() {
		sendAvailableSendWindow()
		sender.OnRetransmissionTimeout(true)
		Expect(sender.GetCongestionWindow()).To(Equal(2 * protocol.DefaultTCPMSS))
	})

	It("keeps the window if the timeout didn't requeue anything", func() {
		sendAvailableSendWindow()
		sender.OnRetransmissionTimeout(false)
		Expect(sender.GetCongestionWindow()).To(Equal(defaultWindowTCP))
	})

	It("abandoned packets leave the in-flight accounting", func() {
		Expect(sendAvailableSendWindow()).To(Equal(int(protocol.InitialCongestionWindow)))
		for p := protocol.PacketNumber(1); p <= protocol.PacketNumber(protocol.InitialCongestionWindow); p++ {
			sender.OnPacketAbandoned(p, protocol.DefaultTCPMSS)
		}
		Expect(canSend()).To(BeTrue())
	})

	It("has no retransmission delay without an RTT sample", func() {
		Expect(sender.RetransmissionDelay()).To(BeZero())
	})

	It("computes the retransmission delay from the smoothed RTT", func() {
		sender.UpdateRTT(100 * time.Millisecond)
		Expect(sender.SmoothedRTT()).To(Equal(100 * time.Millisecond))
		// srtt + 4 * mean deviation, the first sample sets the deviation to srtt/2
		Expect(sender.RetransmissionDelay()).To(Equal(300 * time.Millisecond))
	})

	It("estimates bandwidth from the window and the smoothed RTT", func() {
		Expect(sender.BandwidthEstimate()).To(BeZero())
		sender.UpdateRTT(100 * time.Millisecond)
		Expect(sender.BandwidthEstimate()).To(Equal(congestion.BandwidthFromDelta(sender.GetCongestionWindow(), 100*time.Millisecond)))
	})

	It("applies the negotiated initial congestion window", func() {
		sender.SetFromConfig(&protocol.Config{InitialCongestionWindow: 50}, true)
		Expect(sender.GetCongestionWindow()).To(Equal(50 * protocol.DefaultTCPMSS))
	})

	It("caps the negotiated window at the maximum", func() {
		sender.SetFromConfig(&protocol.Config{InitialCongestionWindow: 10000}, true)
		Expect(sender.GetCongestionWindow()).To(Equal(protocol.ByteCount(protocol.DefaultMaxCongestionWindow) * protocol.DefaultTCPMSS))
	})

	It("backs off less aggressively in cubic mode", func() {
		sender = congestion.NewCubicSender(&clock, congestion.NewRTTStats(), false /* cubic */, protocol.InitialCongestionWindow, protocol.DefaultMaxCongestionWindow)
		sendAvailableSendWindow()
		sender.OnPacketLost(1, clock.Now())
		factor := float32(protocol.InitialCongestionWindow) * 0.85
		expected := protocol.ByteCount(factor) * protocol.DefaultTCPMSS
		Expect(sender.GetCongestionWindow()).To(Equal(expected))
	})
})
