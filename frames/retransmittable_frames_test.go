package frames

import (
	"testing"

	"github.com/quicwire/quic-recovery/protocol"

	"github.com/stretchr/testify/require"
)

func TestRetransmittableFramesDetectCryptoHandshakeData(t *testing.T) {
	rf := NewRetransmittableFrames(protocol.EncryptionUnencrypted)
	require.False(t, rf.HasCryptoHandshake())
	rf.AddFrame(&StreamFrame{StreamID: protocol.CryptoStreamID, Data: []byte("chlo")})
	require.True(t, rf.HasCryptoHandshake())
	require.Len(t, rf.Frames(), 1)
}

func TestRetransmittableFramesDataStreamsAreNotCrypto(t *testing.T) {
	rf := NewRetransmittableFrames(protocol.EncryptionForwardSecure)
	rf.AddFrame(&StreamFrame{StreamID: 5, Data: []byte("foobar")})
	rf.AddFrame(&PingFrame{})
	require.False(t, rf.HasCryptoHandshake())
	require.Len(t, rf.Frames(), 2)
	require.Equal(t, protocol.EncryptionForwardSecure, rf.EncryptionLevel())
}

type noopAckListener struct{}

func (noopAckListener) OnAcked() {}

func TestRetransmittableFramesCollectAckListeners(t *testing.T) {
	rf := NewRetransmittableFrames(protocol.EncryptionForwardSecure)
	require.Empty(t, rf.AckListeners())
	rf.AddAckListener(noopAckListener{})
	rf.AddAckListener(noopAckListener{})
	require.Len(t, rf.AckListeners(), 2)
}

func TestIsRetransmittable(t *testing.T) {
	require.False(t, IsRetransmittable(&AckFrame{}))
	require.False(t, IsRetransmittable(&StopWaitingFrame{}))
	require.False(t, IsRetransmittable(&CongestionFeedbackFrame{}))
	require.True(t, IsRetransmittable(&StreamFrame{}))
	require.True(t, IsRetransmittable(&PingFrame{}))
	require.True(t, IsRetransmittable(&WindowUpdateFrame{}))
	require.True(t, IsRetransmittable(&RstStreamFrame{}))
}
