package ackhandler

// ConnectionStats collects loss recovery statistics for a connection.
// The owner of the connection provides it and may read it at any time
// between calls into the sent packet manager.
type ConnectionStats struct {
	PacketsLost                    uint64
	PacketsSpuriouslyRetransmitted uint64
	TLPCount                       uint64
	RTOCount                       uint64
	CryptoRetransmitCount          uint64
}
