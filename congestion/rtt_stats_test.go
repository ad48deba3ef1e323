package congestion_test

import (
	"time"

	"github.com/quicwire/quic-recovery/congestion"
	"github.com/quicwire/quic-recovery/utils"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RTT stats", func() {
	var rttStats *congestion.RTTStats

	BeforeEach(func() {
		rttStats = congestion.NewRTTStats()
	})

	It("has sane defaults", func() {
		Expect(rttStats.InitialRTTus()).To(BeEquivalentTo(100 * 1000))
		Expect(rttStats.MinRTT()).To(BeZero())
		Expect(rttStats.SmoothedRTT()).To(BeZero())
	})

	It("uses the first sample as the smoothed RTT", func() {
		rttStats.UpdateRTT(100*time.Millisecond, 0, time.Time{})
		Expect(rttStats.LatestRTT()).To(Equal(100 * time.Millisecond))
		Expect(rttStats.SmoothedRTT()).To(Equal(100 * time.Millisecond))
		Expect(rttStats.MeanDeviation()).To(Equal(50 * time.Millisecond))
	})

	It("smooths with an EWMA", func() {
		rttStats.UpdateRTT(100*time.Millisecond, 0, time.Time{})
		rttStats.UpdateRTT(50*time.Millisecond, 0, time.Time{})
		// alpha 1/8, beta 1/4
		Expect(rttStats.SmoothedRTT()).To(Equal(93750 * time.Microsecond))
		Expect(rttStats.MeanDeviation()).To(Equal(50 * time.Millisecond))
	})

	It("tracks the minimum RTT over the connection", func() {
		rttStats.UpdateRTT(200*time.Millisecond, 0, time.Time{})
		rttStats.UpdateRTT(100*time.Millisecond, 0, time.Time{})
		rttStats.UpdateRTT(300*time.Millisecond, 0, time.Time{})
		Expect(rttStats.MinRTT()).To(Equal(100 * time.Millisecond))
	})

	It("subtracts the ack delay if the result stays above the min RTT", func() {
		rttStats.UpdateRTT(100*time.Millisecond, 0, time.Time{})
		rttStats.UpdateRTT(200*time.Millisecond, 50*time.Millisecond, time.Time{})
		Expect(rttStats.LatestRTT()).To(Equal(150 * time.Millisecond))
	})

	It("ignores the ack delay if it would push the sample below the min RTT", func() {
		rttStats.UpdateRTT(100*time.Millisecond, 0, time.Time{})
		rttStats.UpdateRTT(120*time.Millisecond, 50*time.Millisecond, time.Time{})
		Expect(rttStats.LatestRTT()).To(Equal(120 * time.Millisecond))
	})

	It("ignores invalid samples", func() {
		rttStats.UpdateRTT(0, 0, time.Time{})
		rttStats.UpdateRTT(-10*time.Millisecond, 0, time.Time{})
		rttStats.UpdateRTT(utils.InfDuration, 0, time.Time{})
		Expect(rttStats.SmoothedRTT()).To(BeZero())
		Expect(rttStats.MinRTT()).To(BeZero())
	})

	It("expires the smoothed metrics after a timeout", func() {
		rttStats.UpdateRTT(100*time.Millisecond, 0, time.Time{})
		rttStats.UpdateRTT(300*time.Millisecond, 0, time.Time{})
		smoothed := rttStats.SmoothedRTT()
		Expect(smoothed).To(BeNumerically("<", rttStats.LatestRTT()))
		rttStats.ExpireSmoothedMetrics()
		Expect(rttStats.SmoothedRTT()).To(Equal(rttStats.LatestRTT()))
	})
})
