package qtrace

import (
	"time"

	"github.com/francoispqt/gojay"

	"github.com/quicwire/quic-recovery/protocol"
)

type eventDetails interface {
	Name() string
	gojay.MarshalerJSONObject
}

// An event is a single recovery event, encoded as the qlog-style array
// [time, category, event, data].
type event struct {
	Time time.Time
	eventDetails
}

var _ gojay.MarshalerJSONArray = event{}

func (e event) IsNil() bool { return false }
func (e event) MarshalJSONArray(enc *gojay.Encoder) {
	enc.Float64(float64(e.Time.UnixNano()) / 1e6)
	enc.String("recovery")
	enc.String(e.Name())
	enc.Object(e.eventDetails)
}

type eventPacketSent struct {
	SequenceNumber protocol.PacketNumber
	Bytes          protocol.ByteCount
}

var _ eventDetails = eventPacketSent{}

func (e eventPacketSent) Name() string { return "packet_sent" }
func (e eventPacketSent) IsNil() bool  { return false }
func (e eventPacketSent) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Uint64Key("sequence_number", uint64(e.SequenceNumber))
	enc.Uint64Key("bytes", uint64(e.Bytes))
}

type eventPacketLost struct {
	SequenceNumber protocol.PacketNumber
}

var _ eventDetails = eventPacketLost{}

func (e eventPacketLost) Name() string { return "packet_lost" }
func (e eventPacketLost) IsNil() bool  { return false }
func (e eventPacketLost) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Uint64Key("sequence_number", uint64(e.SequenceNumber))
}

type eventSpuriousRetransmission struct {
	// The newest transmission, whose reserialization turned out unnecessary.
	SequenceNumber protocol.PacketNumber
}

var _ eventDetails = eventSpuriousRetransmission{}

func (e eventSpuriousRetransmission) Name() string { return "spurious_retransmission" }
func (e eventSpuriousRetransmission) IsNil() bool  { return false }
func (e eventSpuriousRetransmission) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Uint64Key("sequence_number", uint64(e.SequenceNumber))
}

type eventTimerFired struct {
	Mode string
}

var _ eventDetails = eventTimerFired{}

func (e eventTimerFired) Name() string { return "retransmission_timer_fired" }
func (e eventTimerFired) IsNil() bool  { return false }
func (e eventTimerFired) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("mode", e.Mode)
}
