package frames

// A CongestionFeedbackFrame is the inter-arrival congestion feedback sent by
// the peer. It is passed through to the send algorithm unmodified.
type CongestionFeedbackFrame struct{}
