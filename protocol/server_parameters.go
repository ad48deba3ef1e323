package protocol

// MaxCongestionWindow is the maximum size of the CWND, in packets
const MaxCongestionWindow PacketNumber = 200

// DefaultMaxCongestionWindow is the default for the max congestion window
// Taken from Chrome
const DefaultMaxCongestionWindow PacketNumber = 107

// InitialCongestionWindow is the initial congestion window in QUIC packets
const InitialCongestionWindow PacketNumber = 32

// DefaultTCPMSS is the default maximum packet size used in the Linux TCP implementation.
// Used in QUIC for congestion window computations in bytes.
const DefaultTCPMSS ByteCount = 1460

// MaxTrackedSentPackets is the maximum number of sent packets tracked at any moment
const MaxTrackedSentPackets uint32 = 2000

// RetransmissionThreshold is the number of NACKs that a packet needs to be
// reported missing before fast retransmission kicks in
const RetransmissionThreshold uint32 = 3

// CryptoStreamID is the stream ID of the crypto stream
const CryptoStreamID StreamID = 1
