package protocol

// Config holds the connection parameters that affect loss recovery.
// The negotiated options come from the handshake, the feature toggles from
// the owner of the connection.
type Config struct {
	// InitialRoundTripTimeUs seeds the RTT estimator, if no sample has been
	// taken yet. Zero means no initial estimate was negotiated.
	InitialRoundTripTimeUs uint64
	// CongestionControl is the congestion control tag negotiated with the peer.
	CongestionControl CongestionControlType
	// InitialCongestionWindow overrides the sender's initial window, in packets.
	// Zero keeps the default.
	InitialCongestionWindow PacketNumber

	// TrackRetransmissionHistory links all transmissions of the same payload,
	// so that an ack of a previous transmission acks the data of all of them.
	TrackRetransmissionHistory bool
	// EnablePacing allows wrapping the send algorithm with a pacer, if the
	// peer negotiated paced sending.
	EnablePacing bool
}
