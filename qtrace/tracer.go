package qtrace

import (
	"bufio"
	"io"
	"time"

	"github.com/francoispqt/gojay"

	"github.com/quicwire/quic-recovery/protocol"
)

// A Tracer records loss recovery events. It is owned by a single connection
// and, like the sent packet manager feeding it, must only be used from the
// connection's event loop.
type Tracer struct {
	events []event
}

// NewTracer creates a tracer with an empty event log
func NewTracer() *Tracer {
	return &Tracer{}
}

// PacketSent records a packet handed to the wire
func (t *Tracer) PacketSent(now time.Time, sequenceNumber protocol.PacketNumber, bytes protocol.ByteCount) {
	t.record(now, eventPacketSent{SequenceNumber: sequenceNumber, Bytes: bytes})
}

// PacketLost records a packet declared lost by the loss detector
func (t *Tracer) PacketLost(now time.Time, sequenceNumber protocol.PacketNumber) {
	t.record(now, eventPacketLost{SequenceNumber: sequenceNumber})
}

// SpuriousRetransmission records that a payload was acked through an older
// transmission, proving the newest reserialization unnecessary
func (t *Tracer) SpuriousRetransmission(now time.Time, newestTransmission protocol.PacketNumber) {
	t.record(now, eventSpuriousRetransmission{SequenceNumber: newestTransmission})
}

// RetransmissionTimerFired records an expiry of the retransmission timer in
// the given mode
func (t *Tracer) RetransmissionTimerFired(now time.Time, mode string) {
	t.record(now, eventTimerFired{Mode: mode})
}

func (t *Tracer) record(now time.Time, details eventDetails) {
	t.events = append(t.events, event{Time: now, eventDetails: details})
}

// NumEvents returns the number of recorded events
func (t *Tracer) NumEvents() int {
	return len(t.events)
}

// Export writes all recorded events to w, one JSON array per line
func (t *Tracer) Export(w io.Writer) error {
	buf := bufio.NewWriter(w)
	enc := gojay.NewEncoder(buf)
	for _, ev := range t.events {
		if err := enc.EncodeArray(ev); err != nil {
			return err
		}
		if err := buf.WriteByte('\n'); err != nil {
			return err
		}
	}
	return buf.Flush()
}
