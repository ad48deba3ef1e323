// Package metrics exposes the loss recovery statistics of a connection as
// Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/quicwire/quic-recovery/ackhandler"
)

const metricNamespace = "quic_recovery"

// Register registers counters over the given stats sink. The stats struct is
// written by the sent packet manager between scrapes, the counters read it
// lazily. The perspective ("client" or "server") becomes a constant label.
func Register(stats *ackhandler.ConnectionStats, perspective string, registerer prometheus.Registerer) error {
	labels := prometheus.Labels{"perspective": perspective}
	counters := []struct {
		name  string
		help  string
		value func() float64
	}{
		{"packets_lost_total", "Packets declared lost", func() float64 { return float64(stats.PacketsLost) }},
		{"packets_spuriously_retransmitted_total", "Retransmissions whose original transmission arrived", func() float64 { return float64(stats.PacketsSpuriouslyRetransmitted) }},
		{"tlp_total", "Tail loss probes sent", func() float64 { return float64(stats.TLPCount) }},
		{"rto_total", "Retransmission timeouts fired", func() float64 { return float64(stats.RTOCount) }},
		{"crypto_retransmit_total", "Crypto handshake retransmissions", func() float64 { return float64(stats.CryptoRetransmitCount) }},
	}
	for _, c := range counters {
		counter := prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   metricNamespace,
			Name:        c.name,
			Help:        c.help,
			ConstLabels: labels,
		}, c.value)
		if err := registerer.Register(counter); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is like Register but panics on registration errors, for use
// with the default registerer at process start.
func MustRegister(stats *ackhandler.ConnectionStats, perspective string) {
	if err := Register(stats, perspective, prometheus.DefaultRegisterer); err != nil {
		panic(err)
	}
}
