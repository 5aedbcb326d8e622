package paychan

import (
	"encoding/binary"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/x"
)

// ConstructMessage returns the canonical bytes signed by the participants
// to agree on a channel state. Amounts are encoded as 16 byte big endian
// unsigned integers.
func ConstructMessage(channelID []byte, balanceA, balanceB, nonce uint64) []byte {
	msg := make([]byte, 0, len(channelID)+3*16)
	msg = append(msg, channelID...)
	msg = append(msg, be128(balanceA)...)
	msg = append(msg, be128(balanceB)...)
	msg = append(msg, be128(nonce)...)
	return msg
}

func be128(n uint64) []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b[8:], n)
	return b
}

// Verifier decides if signature is a valid signature of message created by
// signer.
type Verifier interface {
	Verify(ctx settle.Context, message, signature []byte, signer settle.Address) bool
}

// CallerVerifier accepts any well formed signature as long as the signer
// authorized the current transaction. No cryptographic check of the
// signature is done.
type CallerVerifier struct {
	auth x.Authenticator
}

var _ Verifier = CallerVerifier{}

// NewCallerVerifier returns a verifier that consults given authenticator.
func NewCallerVerifier(auth x.Authenticator) CallerVerifier {
	return CallerVerifier{auth: auth}
}

func (v CallerVerifier) Verify(ctx settle.Context, message, signature []byte, signer settle.Address) bool {
	if len(signature) != SignatureLength {
		return false
	}
	return v.auth.HasAddress(ctx, signer)
}
