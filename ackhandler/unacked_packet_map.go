package ackhandler

import (
	"errors"
	"sort"
	"time"

	"github.com/quicwire/quic-recovery/frames"
	"github.com/quicwire/quic-recovery/protocol"
	"github.com/quicwire/quic-recovery/utils"
)

var (
	// ErrDuplicateSequenceNumber occurs when a sequence number is added to the
	// unacked packet map twice
	ErrDuplicateSequenceNumber = errors.New("UnackedPacketMap: sequence number already tracked")
	// ErrUnknownSequenceNumber occurs when an operation refers to a sequence
	// number that is not tracked
	ErrUnknownSequenceNumber = errors.New("UnackedPacketMap: sequence number not tracked")
	// ErrAlreadyPending occurs when a packet is marked as sent twice
	ErrAlreadyPending = errors.New("UnackedPacketMap: packet is already pending")
	// ErrNotRetransmittable occurs when a packet without retransmittable
	// frames is set up for retransmission
	ErrNotRetransmittable = errors.New("UnackedPacketMap: packet has no retransmittable frames")
)

// transmissionInfo is the state of a single transmission: the payload it
// carried (nil once the payload moved to a newer transmission or was
// retired), the send stamp, the nack accounting and the shared list of all
// transmissions of the same payload.
type transmissionInfo struct {
	retransmittableFrames *frames.RetransmittableFrames
	sentTime              time.Time
	bytesSent             protocol.ByteCount
	sequenceNumberLength  protocol.PacketNumberLen
	nackCount             uint32
	// pending packets count against the congestion window. They have been
	// sent, but not yet acked, lost or abandoned.
	pending          bool
	allTransmissions *sequenceNumberList
}

// unackedPacketMap tracks every sent packet that has not been retired yet,
// for three purposes:
// 1) track retransmittable payloads, including multiple transmissions of the
// same payload,
// 2) track pending packets for congestion control,
// 3) track sent times to provide RTT measurements from acks.
// It is the only component that mutates transmissionInfo.
type unackedPacketMap struct {
	packets map[protocol.PacketNumber]*transmissionInfo
	// The tracked sequence numbers in ascending order.
	sequenceNumbers []protocol.PacketNumber

	// The largest sequence number that was handed to the wire.
	largestSentPacket protocol.PacketNumber
	numPending        int
}

func newUnackedPacketMap() *unackedPacketMap {
	return &unackedPacketMap{
		packets: make(map[protocol.PacketNumber]*transmissionInfo),
	}
}

// AddPacket starts tracking a serialized packet. The packet starts out not
// pending with a zero sent time, a fresh single-element transmission chain is
// installed.
func (u *unackedPacketMap) AddPacket(packet *SerializedPacket) error {
	if _, ok := u.packets[packet.SequenceNumber]; ok {
		return ErrDuplicateSequenceNumber
	}
	u.packets[packet.SequenceNumber] = &transmissionInfo{
		retransmittableFrames: packet.RetransmittableFrames,
		sequenceNumberLength:  packet.SequenceNumberLength,
		allTransmissions:      newSequenceNumberList(packet.SequenceNumber),
	}
	u.insertSequenceNumber(packet.SequenceNumber)
	return nil
}

// OnRetransmittedPacket starts tracking the new transmission of a payload.
// The payload moves from the old transmission to the new one, the new entry
// joins the old entry's transmission chain. The old entry can no longer be
// retransmitted on its own.
func (u *unackedPacketMap) OnRetransmittedPacket(oldSequenceNumber, newSequenceNumber protocol.PacketNumber) error {
	oldInfo, ok := u.packets[oldSequenceNumber]
	if !ok {
		return ErrUnknownSequenceNumber
	}
	if oldInfo.retransmittableFrames == nil {
		return ErrNotRetransmittable
	}
	if _, ok := u.packets[newSequenceNumber]; ok {
		return ErrDuplicateSequenceNumber
	}
	oldInfo.allTransmissions.Append(newSequenceNumber)
	u.packets[newSequenceNumber] = &transmissionInfo{
		retransmittableFrames: oldInfo.retransmittableFrames,
		sequenceNumberLength:  oldInfo.sequenceNumberLength,
		allTransmissions:      oldInfo.allTransmissions,
	}
	oldInfo.retransmittableFrames = nil
	u.insertSequenceNumber(newSequenceNumber)
	return nil
}

// SetPending marks a packet as in flight and stamps the send time and size.
func (u *unackedPacketMap) SetPending(p protocol.PacketNumber, sentTime time.Time, bytes protocol.ByteCount) error {
	info, ok := u.packets[p]
	if !ok {
		return ErrUnknownSequenceNumber
	}
	if info.pending {
		return ErrAlreadyPending
	}
	info.sentTime = sentTime
	info.bytesSent = bytes
	info.pending = true
	u.numPending++
	u.largestSentPacket = utils.Max(u.largestSentPacket, p)
	return nil
}

// SetNotPending takes a packet out of flight. It is idempotent and ignores
// unknown sequence numbers.
func (u *unackedPacketMap) SetNotPending(p protocol.PacketNumber) {
	info, ok := u.packets[p]
	if !ok || !info.pending {
		return
	}
	info.pending = false
	u.numPending--
}

// RemovePacket stops tracking a packet and drops it from its transmission chain.
func (u *unackedPacketMap) RemovePacket(p protocol.PacketNumber) {
	info, ok := u.packets[p]
	if !ok {
		return
	}
	if info.pending {
		u.numPending--
	}
	info.allTransmissions.Remove(p)
	delete(u.packets, p)
	u.removeSequenceNumber(p)
}

// NeuterPacket drops the retransmittable payload but keeps the entry, so a
// revived packet can stay around as a pending placeholder.
func (u *unackedPacketMap) NeuterPacket(p protocol.PacketNumber) error {
	info, ok := u.packets[p]
	if !ok {
		return ErrUnknownSequenceNumber
	}
	info.retransmittableFrames = nil
	return nil
}

// NackPacket records that the peer reported the packet missing. A gap to the
// largest observed counts as multiple nacks, so the count is raised to
// minNacks when that is larger than a single increment.
func (u *unackedPacketMap) NackPacket(p protocol.PacketNumber, minNacks uint32) error {
	info, ok := u.packets[p]
	if !ok {
		return ErrUnknownSequenceNumber
	}
	info.nackCount = utils.Max(info.nackCount+1, minNacks)
	return nil
}

// ClearPreviousRetransmissions removes up to num of the oldest entries that
// are no longer pending and whose payload lives in a newer chain member.
// A truncated ack leaves the peer unable to ack anything above its cut-off,
// so these slots must be freed for the acks to reach live packets.
func (u *unackedPacketMap) ClearPreviousRetransmissions(num int) {
	for num > 0 && len(u.sequenceNumbers) > 0 {
		p := u.sequenceNumbers[0]
		info := u.packets[p]
		if info.pending {
			// Pending packets still matter for acks, stop clearing.
			break
		}
		if info.allTransmissions.Newest() == p {
			break
		}
		info.allTransmissions.Remove(p)
		delete(u.packets, p)
		u.sequenceNumbers = u.sequenceNumbers[1:]
		num--
	}
}

// IsUnacked says if the sequence number is still tracked
func (u *unackedPacketMap) IsUnacked(p protocol.PacketNumber) bool {
	_, ok := u.packets[p]
	return ok
}

// IsPending says if the packet is in flight
func (u *unackedPacketMap) IsPending(p protocol.PacketNumber) bool {
	info, ok := u.packets[p]
	return ok && info.pending
}

// GetTransmissionInfo returns the state of a tracked packet, nil for unknown
// sequence numbers
func (u *unackedPacketMap) GetTransmissionInfo(p protocol.PacketNumber) *transmissionInfo {
	return u.packets[p]
}

// HasRetransmittableFrames says if the packet still owns its payload
func (u *unackedPacketMap) HasRetransmittableFrames(p protocol.PacketNumber) bool {
	info, ok := u.packets[p]
	return ok && info.retransmittableFrames != nil
}

func (u *unackedPacketMap) HasUnackedPackets() bool {
	return len(u.sequenceNumbers) > 0
}

func (u *unackedPacketMap) Len() int {
	return len(u.sequenceNumbers)
}

func (u *unackedPacketMap) HasPendingPackets() bool {
	return u.numPending > 0
}

func (u *unackedPacketMap) HasMultiplePendingPackets() bool {
	return u.numPending > 1
}

// HasUnackedRetransmittableFrames says if any pending packet still owns a
// retransmittable payload
func (u *unackedPacketMap) HasUnackedRetransmittableFrames() bool {
	for _, p := range u.sequenceNumbers {
		info := u.packets[p]
		if info.pending && info.retransmittableFrames != nil {
			return true
		}
	}
	return false
}

// GetLeastUnackedSentPacket returns the smallest tracked sequence number. If
// nothing is tracked, everything up to the largest sent packet has been
// retired, so the least unacked is the next sequence number.
func (u *unackedPacketMap) GetLeastUnackedSentPacket() protocol.PacketNumber {
	if len(u.sequenceNumbers) == 0 {
		return u.largestSentPacket + 1
	}
	return u.sequenceNumbers[0]
}

// LargestSentPacket is the largest sequence number that was made pending
func (u *unackedPacketMap) LargestSentPacket() protocol.PacketNumber {
	return u.largestSentPacket
}

// GetFirstPendingPacketSentTime returns the send time of the oldest pending packet
func (u *unackedPacketMap) GetFirstPendingPacketSentTime() time.Time {
	for _, p := range u.sequenceNumbers {
		if u.packets[p].pending {
			return u.packets[p].sentTime
		}
	}
	return time.Time{}
}

// GetLastPacketSentTime returns the send time of the newest pending packet
func (u *unackedPacketMap) GetLastPacketSentTime() time.Time {
	for i := len(u.sequenceNumbers) - 1; i >= 0; i-- {
		p := u.sequenceNumbers[i]
		if u.packets[p].pending {
			return u.packets[p].sentTime
		}
	}
	return time.Time{}
}

// AscendingSnapshot copies the tracked sequence numbers in ascending order,
// so callers can keep walking while they retire packets.
func (u *unackedPacketMap) AscendingSnapshot() []protocol.PacketNumber {
	snapshot := make([]protocol.PacketNumber, len(u.sequenceNumbers))
	copy(snapshot, u.sequenceNumbers)
	return snapshot
}

func (u *unackedPacketMap) insertSequenceNumber(p protocol.PacketNumber) {
	// Sequence numbers mostly arrive in increasing order, appending is the
	// common case.
	if n := len(u.sequenceNumbers); n == 0 || u.sequenceNumbers[n-1] < p {
		u.sequenceNumbers = append(u.sequenceNumbers, p)
		return
	}
	i := sort.Search(len(u.sequenceNumbers), func(i int) bool { return u.sequenceNumbers[i] >= p })
	u.sequenceNumbers = append(u.sequenceNumbers, 0)
	copy(u.sequenceNumbers[i+1:], u.sequenceNumbers[i:])
	u.sequenceNumbers[i] = p
}

func (u *unackedPacketMap) removeSequenceNumber(p protocol.PacketNumber) {
	i := sort.Search(len(u.sequenceNumbers), func(i int) bool { return u.sequenceNumbers[i] >= p })
	if i < len(u.sequenceNumbers) && u.sequenceNumbers[i] == p {
		u.sequenceNumbers = append(u.sequenceNumbers[:i], u.sequenceNumbers[i+1:]...)
	}
}
