package frames

import "github.com/quicwire/quic-recovery/protocol"

// An AckListener is informed when the payload it registered for has been
// received by the peer.
type AckListener interface {
	OnAcked()
}

// RetransmittableFrames is the owning container for the frames of a packet
// that must be delivered. When a transmission is lost, its
// RetransmittableFrames move into the replacement packet.
type RetransmittableFrames struct {
	frames             []Frame
	encryptionLevel    protocol.EncryptionLevel
	hasCryptoHandshake bool

	ackListeners []AckListener
}

// NewRetransmittableFrames creates an empty container for the given encryption level
func NewRetransmittableFrames(encryptionLevel protocol.EncryptionLevel) *RetransmittableFrames {
	return &RetransmittableFrames{encryptionLevel: encryptionLevel}
}

// AddFrame adds a frame.
// A stream frame for the crypto stream marks the payload as crypto handshake data.
func (r *RetransmittableFrames) AddFrame(f Frame) {
	if sf, ok := f.(*StreamFrame); ok && sf.StreamID == protocol.CryptoStreamID {
		r.hasCryptoHandshake = true
	}
	r.frames = append(r.frames, f)
}

// Frames returns all frames
func (r *RetransmittableFrames) Frames() []Frame {
	return r.frames
}

// HasCryptoHandshake says if the payload carries crypto stream data
func (r *RetransmittableFrames) HasCryptoHandshake() bool {
	return r.hasCryptoHandshake
}

// EncryptionLevel is the encryption level the payload was sent with
func (r *RetransmittableFrames) EncryptionLevel() protocol.EncryptionLevel {
	return r.encryptionLevel
}

// AddAckListener registers a listener for this payload. The ack notifier
// manager keys it by the payload's latest transmission and calls it when that
// sequence number is acked; an ack of an earlier transmission does not call it.
func (r *RetransmittableFrames) AddAckListener(l AckListener) {
	r.ackListeners = append(r.ackListeners, l)
}

// AckListeners returns the registered listeners
func (r *RetransmittableFrames) AckListeners() []AckListener {
	return r.ackListeners
}
