package congestion

import (
	"github.com/quicwire/quic-recovery/protocol"
	"github.com/quicwire/quic-recovery/utils"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PRR sender", func() {
	var prr PrrSender

	BeforeEach(func() {
		prr = PrrSender{}
	})

	It("paces a single loss through every other ack", func() {
		numPacketsInFlight := protocol.ByteCount(50)
		bytesInFlight := numPacketsInFlight * protocol.DefaultTCPMSS
		ssthreshAfterLoss := numPacketsInFlight / 2
		congestionWindow := ssthreshAfterLoss * protocol.DefaultTCPMSS

		prr.OnPacketLost(bytesInFlight)
		// Ack a packet. PRR allows one packet to leave immediately.
		prr.OnPacketAcked(protocol.DefaultTCPMSS)
		bytesInFlight -= protocol.DefaultTCPMSS
		Expect(prr.TimeUntilSend(congestionWindow, bytesInFlight, ssthreshAfterLoss*protocol.DefaultTCPMSS)).To(BeZero())
		// Send retransmission.
		prr.OnPacketSent(protocol.DefaultTCPMSS)
		// PRR shouldn't allow sending any more packets.
		Expect(prr.TimeUntilSend(congestionWindow, bytesInFlight, ssthreshAfterLoss*protocol.DefaultTCPMSS)).To(Equal(utils.InfDuration))

		// One packet is lost, and one ack was consumed above. PRR now paces
		// transmissions through the remaining 48 acks. PRR will alternatively
		// disallow and allow a packet to be sent in response to an ack.
		for i := protocol.ByteCount(0); i < ssthreshAfterLoss-1; i++ {
			// Ack a packet. PRR shouldn't allow sending a packet in response.
			prr.OnPacketAcked(protocol.DefaultTCPMSS)
			bytesInFlight -= protocol.DefaultTCPMSS
			Expect(prr.TimeUntilSend(congestionWindow, bytesInFlight, ssthreshAfterLoss*protocol.DefaultTCPMSS)).To(Equal(utils.InfDuration))
			// Ack another packet. PRR should now allow sending a packet in response.
			prr.OnPacketAcked(protocol.DefaultTCPMSS)
			bytesInFlight -= protocol.DefaultTCPMSS
			Expect(prr.TimeUntilSend(congestionWindow, bytesInFlight, ssthreshAfterLoss*protocol.DefaultTCPMSS)).To(BeZero())
			// Send a packet in response.
			prr.OnPacketSent(protocol.DefaultTCPMSS)
			bytesInFlight += protocol.DefaultTCPMSS
		}

		// Since bytesInFlight is now equal to the congestion window, PRR
		// maintains packet conservation, allowing one packet per ack.
		Expect(bytesInFlight).To(Equal(congestionWindow))
		for i := 0; i < 10; i++ {
			prr.OnPacketAcked(protocol.DefaultTCPMSS)
			bytesInFlight -= protocol.DefaultTCPMSS
			Expect(prr.TimeUntilSend(congestionWindow, bytesInFlight, ssthreshAfterLoss*protocol.DefaultTCPMSS)).To(BeZero())
			prr.OnPacketSent(protocol.DefaultTCPMSS)
			bytesInFlight += protocol.DefaultTCPMSS
			Expect(bytesInFlight).To(Equal(congestionWindow))
			Expect(prr.TimeUntilSend(congestionWindow, bytesInFlight, ssthreshAfterLoss*protocol.DefaultTCPMSS)).To(Equal(utils.InfDuration))
		}
	})

	It("enters slow start rate based reduction after a burst loss", func() {
		bytesInFlight := protocol.ByteCount(20 * protocol.DefaultTCPMSS)
		const numPacketsLost = 13
		const ssthreshAfterLoss = 10
		const congestionWindow = ssthreshAfterLoss * protocol.DefaultTCPMSS

		// Lose 13 packets.
		bytesInFlight -= numPacketsLost * protocol.DefaultTCPMSS
		prr.OnPacketLost(bytesInFlight)

		// PRR-SSRB will allow the following 3 acks to send up to 2 packets.
		for i := 0; i < 3; i++ {
			prr.OnPacketAcked(protocol.DefaultTCPMSS)
			bytesInFlight -= protocol.DefaultTCPMSS
			for j := 0; j < 2; j++ {
				Expect(prr.TimeUntilSend(congestionWindow, bytesInFlight, ssthreshAfterLoss*protocol.DefaultTCPMSS)).To(BeZero())
				// Send a packet in response.
				prr.OnPacketSent(protocol.DefaultTCPMSS)
				bytesInFlight += protocol.DefaultTCPMSS
			}
			// PRR should allow no more than 2 packets in response to an ack.
			Expect(prr.TimeUntilSend(congestionWindow, bytesInFlight, ssthreshAfterLoss*protocol.DefaultTCPMSS)).To(Equal(utils.InfDuration))
		}

		// Out of SSRB mode, PRR allows one send in response to each ack.
		for i := 0; i < 10; i++ {
			prr.OnPacketAcked(protocol.DefaultTCPMSS)
			bytesInFlight -= protocol.DefaultTCPMSS
			Expect(prr.TimeUntilSend(congestionWindow, bytesInFlight, ssthreshAfterLoss*protocol.DefaultTCPMSS)).To(BeZero())
			prr.OnPacketSent(protocol.DefaultTCPMSS)
			bytesInFlight += protocol.DefaultTCPMSS
		}
	})
})
