package congestion

import (
	"time"

	"github.com/quicwire/quic-recovery/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Hybrid slow start", func() {
	var slowStart HybridSlowStart

	BeforeEach(func() {
		slowStart = HybridSlowStart{}
	})

	It("detects the end of a receive round", func() {
		packetNumber := protocol.PacketNumber(1)
		endPacketNumber := protocol.PacketNumber(3)
		slowStart.StartReceiveRound(endPacketNumber)

		packetNumber++
		Expect(slowStart.IsEndOfRound(packetNumber)).To(BeFalse())

		// Test duplicates.
		Expect(slowStart.IsEndOfRound(packetNumber)).To(BeFalse())

		packetNumber++
		Expect(slowStart.IsEndOfRound(packetNumber)).To(BeFalse())
		packetNumber++
		Expect(slowStart.IsEndOfRound(packetNumber)).To(BeTrue())

		// Test without a new registered endPacketNumber.
		packetNumber++
		Expect(slowStart.IsEndOfRound(packetNumber)).To(BeTrue())

		endPacketNumber = 20
		slowStart.StartReceiveRound(endPacketNumber)
		for packetNumber < endPacketNumber {
			packetNumber++
			Expect(slowStart.IsEndOfRound(packetNumber)).To(BeFalse())
		}
		packetNumber++
		Expect(slowStart.IsEndOfRound(packetNumber)).To(BeTrue())
	})

	It("exits slow start on a sustained delay increase", func() {
		rtt := 60 * time.Millisecond
		// The increase is detected at +1/8 of the min RTT, so at 67.5ms.

		endPacketNumber := protocol.PacketNumber(1)
		endPacketNumber++
		slowStart.StartReceiveRound(endPacketNumber)

		// Will not trigger since the lowest RTT of the burst is the same as
		// the long term RTT provided.
		for n := uint32(0); n < hybridStartMinSamples; n++ {
			Expect(slowStart.ShouldExitSlowStart(rtt+time.Duration(n)*time.Millisecond, rtt, 100)).To(BeFalse())
		}
		endPacketNumber++
		slowStart.StartReceiveRound(endPacketNumber)
		for n := uint32(1); n < hybridStartMinSamples; n++ {
			Expect(slowStart.ShouldExitSlowStart(rtt+(time.Duration(n)+10)*time.Millisecond, rtt, 100)).To(BeFalse())
		}
		// Triggers since all packets in this burst are above the long term RTT.
		Expect(slowStart.ShouldExitSlowStart(rtt+10*time.Millisecond, rtt, 100)).To(BeTrue())
	})

	It("does not exit slow start below the low window", func() {
		rtt := 60 * time.Millisecond
		slowStart.StartReceiveRound(1)
		for n := uint32(0); n < hybridStartMinSamples; n++ {
			Expect(slowStart.ShouldExitSlowStart(rtt+100*time.Millisecond, rtt, hybridStartLowWindow-1)).To(BeFalse())
		}
	})
})
