package mocks

//go:generate sh -c "go run go.uber.org/mock/mockgen -package mocks -destination send_algorithm.go github.com/quicwire/quic-recovery/congestion SendAlgorithm"
