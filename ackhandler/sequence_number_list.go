package ackhandler

import "github.com/quicwire/quic-recovery/protocol"

// A sequenceNumberList is the set of sequence numbers that carried the same
// retransmittable payload. Every transmission of the payload holds a pointer
// to the same list, so an ack for any member can retire all of them.
// Sequence numbers are kept in ascending order. Appends are always of a
// larger number, since retransmissions get fresh sequence numbers.
type sequenceNumberList struct {
	sequenceNumbers []protocol.PacketNumber
}

func newSequenceNumberList(first protocol.PacketNumber) *sequenceNumberList {
	return &sequenceNumberList{sequenceNumbers: []protocol.PacketNumber{first}}
}

func (l *sequenceNumberList) Append(p protocol.PacketNumber) {
	l.sequenceNumbers = append(l.sequenceNumbers, p)
}

func (l *sequenceNumberList) Remove(p protocol.PacketNumber) {
	for i, s := range l.sequenceNumbers {
		if s == p {
			l.sequenceNumbers = append(l.sequenceNumbers[:i], l.sequenceNumbers[i+1:]...)
			return
		}
	}
}

func (l *sequenceNumberList) Len() int {
	return len(l.sequenceNumbers)
}

// Newest returns the sequence number of the most recent transmission
func (l *sequenceNumberList) Newest() protocol.PacketNumber {
	return l.sequenceNumbers[len(l.sequenceNumbers)-1]
}

// DescendingSnapshot copies the members in newest-first order. The copy stays
// valid while the caller removes members from the registry.
func (l *sequenceNumberList) DescendingSnapshot() []protocol.PacketNumber {
	snapshot := make([]protocol.PacketNumber, len(l.sequenceNumbers))
	for i, s := range l.sequenceNumbers {
		snapshot[len(l.sequenceNumbers)-1-i] = s
	}
	return snapshot
}
