package frames

// A Frame in QUIC. This package carries the in-memory representation only,
// serialization is done by the packet packer of the owning connection.
type Frame interface{}

// IsRetransmittable says if a frame must be delivered and therefore needs to
// be retransmitted when the packet carrying it is lost.
// ACKs, stop waitings and congestion feedback describe transient receiver
// state and are never retransmitted.
func IsRetransmittable(f Frame) bool {
	switch f.(type) {
	case *AckFrame, *StopWaitingFrame, *CongestionFeedbackFrame:
		return false
	default:
		return true
	}
}
