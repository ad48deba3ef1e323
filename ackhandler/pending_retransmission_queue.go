package ackhandler

import (
	"sort"

	"github.com/quicwire/quic-recovery/protocol"
)

// pendingRetransmissionQueue is an ordered mapping from sequence number to
// the reason the payload was chosen for retransmission. Insertion is
// idempotent per sequence number, the first reason wins. The oldest entry is
// the one with the smallest sequence number.
type pendingRetransmissionQueue struct {
	transmissionTypes map[protocol.PacketNumber]protocol.TransmissionType
	sequenceNumbers   []protocol.PacketNumber // ascending
}

func newPendingRetransmissionQueue() *pendingRetransmissionQueue {
	return &pendingRetransmissionQueue{
		transmissionTypes: make(map[protocol.PacketNumber]protocol.TransmissionType),
	}
}

func (q *pendingRetransmissionQueue) Add(p protocol.PacketNumber, transmissionType protocol.TransmissionType) {
	if _, ok := q.transmissionTypes[p]; ok {
		return
	}
	q.transmissionTypes[p] = transmissionType
	i := sort.Search(len(q.sequenceNumbers), func(i int) bool { return q.sequenceNumbers[i] >= p })
	q.sequenceNumbers = append(q.sequenceNumbers, 0)
	copy(q.sequenceNumbers[i+1:], q.sequenceNumbers[i:])
	q.sequenceNumbers[i] = p
}

func (q *pendingRetransmissionQueue) Remove(p protocol.PacketNumber) {
	if _, ok := q.transmissionTypes[p]; !ok {
		return
	}
	delete(q.transmissionTypes, p)
	i := sort.Search(len(q.sequenceNumbers), func(i int) bool { return q.sequenceNumbers[i] >= p })
	q.sequenceNumbers = append(q.sequenceNumbers[:i], q.sequenceNumbers[i+1:]...)
}

func (q *pendingRetransmissionQueue) Contains(p protocol.PacketNumber) bool {
	_, ok := q.transmissionTypes[p]
	return ok
}

func (q *pendingRetransmissionQueue) Len() int {
	return len(q.sequenceNumbers)
}

// Oldest returns the smallest queued sequence number and its transmission
// type, without removing it. Only valid if the queue is not empty.
func (q *pendingRetransmissionQueue) Oldest() (protocol.PacketNumber, protocol.TransmissionType) {
	p := q.sequenceNumbers[0]
	return p, q.transmissionTypes[p]
}
