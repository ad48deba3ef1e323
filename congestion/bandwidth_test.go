package congestion_test

import (
	"time"

	"github.com/quicwire/quic-recovery/congestion"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Bandwidth", func() {
	It("converts from a byte count and a time delta", func() {
		Expect(congestion.BandwidthFromDelta(1, time.Millisecond)).To(Equal(1000 * congestion.BytesPerSecond))
	})
})
