package ackhandler

import (
	"github.com/quicwire/quic-recovery/frames"
	"github.com/quicwire/quic-recovery/protocol"
)

// An AckNotifierManager is informed about the fate of sequence numbers that
// carry payloads with registered ack listeners.
type AckNotifierManager interface {
	// OnSerializedPacket registers the ack listeners of a freshly serialized packet
	OnSerializedPacket(packet *SerializedPacket)
	// OnPacketAcked is called once per retired sequence number
	OnPacketAcked(sequenceNumber protocol.PacketNumber)
	// UpdateSequenceNumber rewires listeners when a payload is reserialized
	// under a new sequence number
	UpdateSequenceNumber(oldSequenceNumber, newSequenceNumber protocol.PacketNumber)
}

type ackNotifierManager struct {
	ackListeners map[protocol.PacketNumber][]frames.AckListener
}

var _ AckNotifierManager = &ackNotifierManager{}

// NewAckNotifierManager creates a new ackNotifierManager
func NewAckNotifierManager() AckNotifierManager {
	return &ackNotifierManager{
		ackListeners: make(map[protocol.PacketNumber][]frames.AckListener),
	}
}

func (m *ackNotifierManager) OnSerializedPacket(packet *SerializedPacket) {
	if packet.RetransmittableFrames == nil {
		return
	}
	if listeners := packet.RetransmittableFrames.AckListeners(); len(listeners) > 0 {
		m.ackListeners[packet.SequenceNumber] = listeners
	}
}

func (m *ackNotifierManager) OnPacketAcked(sequenceNumber protocol.PacketNumber) {
	for _, l := range m.ackListeners[sequenceNumber] {
		l.OnAcked()
	}
	delete(m.ackListeners, sequenceNumber)
}

func (m *ackNotifierManager) UpdateSequenceNumber(oldSequenceNumber, newSequenceNumber protocol.PacketNumber) {
	listeners, ok := m.ackListeners[oldSequenceNumber]
	if !ok {
		return
	}
	delete(m.ackListeners, oldSequenceNumber)
	m.ackListeners[newSequenceNumber] = listeners
}
