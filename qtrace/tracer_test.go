package qtrace

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func exportedLines(t *testing.T, tracer *Tracer) [][]interface{} {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, tracer.Export(buf))
	var lines [][]interface{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		var line []interface{}
		require.NoError(t, dec.Decode(&line))
		lines = append(lines, line)
	}
	return lines
}

func TestTracerRecordsEventsInOrder(t *testing.T) {
	tracer := NewTracer()
	now := time.Date(2016, 5, 25, 23, 0, 0, 0, time.UTC)
	tracer.PacketSent(now, 1, 1350)
	tracer.PacketLost(now.Add(time.Second), 1)
	tracer.SpuriousRetransmission(now.Add(2*time.Second), 2)
	tracer.RetransmissionTimerFired(now.Add(3*time.Second), "rto")
	require.Equal(t, 4, tracer.NumEvents())

	lines := exportedLines(t, tracer)
	require.Len(t, lines, 4)
	for _, line := range lines {
		require.Len(t, line, 4)
		require.Equal(t, "recovery", line[1])
	}
	require.Equal(t, "packet_sent", lines[0][2])
	require.Equal(t, "packet_lost", lines[1][2])
	require.Equal(t, "spurious_retransmission", lines[2][2])
	require.Equal(t, "retransmission_timer_fired", lines[3][2])
}

func TestTracerEventPayloads(t *testing.T) {
	tracer := NewTracer()
	now := time.Date(2016, 5, 25, 23, 0, 0, 0, time.UTC)
	tracer.PacketSent(now, 7, 1350)
	tracer.RetransmissionTimerFired(now, "tlp")

	lines := exportedLines(t, tracer)
	sent := lines[0][3].(map[string]interface{})
	require.Equal(t, float64(7), sent["sequence_number"])
	require.Equal(t, float64(1350), sent["bytes"])
	fired := lines[1][3].(map[string]interface{})
	require.Equal(t, "tlp", fired["mode"])
}

func TestTracerExportsNothingWithoutEvents(t *testing.T) {
	tracer := NewTracer()
	buf := &bytes.Buffer{}
	require.NoError(t, tracer.Export(buf))
	require.Zero(t, buf.Len())
}
