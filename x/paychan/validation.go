package paychan

import (
	"bytes"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

const (
	// ChannelIDLength is the size of every channel identifier.
	ChannelIDLength = 32
	// SignatureLength is the size of every channel state signature.
	SignatureLength = 65
)

// CustodyAddress returns the account holding the funds escrowed by all
// channels.
func CustodyAddress() settle.Address {
	return settle.NewCondition("paychan", "escrow", []byte("custody")).Address()
}

// NullAddress returns the reserved all-zero address that can never take part
// in a channel.
func NullAddress() settle.Address {
	return make(settle.Address, settle.AddressLength)
}

// ValidChannelID returns an error unless id is a 32 byte value with at least
// one non-zero byte.
func ValidChannelID(id []byte) error {
	if len(id) != ChannelIDLength {
		return errors.Wrapf(ErrInvalidInput, "channel id must be %d bytes, got %d", ChannelIDLength, len(id))
	}
	if isZero(id) {
		return errors.Wrap(ErrInvalidInput, "zero channel id")
	}
	return nil
}

// ValidDeposit returns an error unless amount is within the configured
// deposit bounds.
func ValidDeposit(amount uint64, conf *Configuration) error {
	if amount < conf.MinDeposit {
		return errors.Wrapf(ErrInvalidInput, "deposit %d below minimum %d", amount, conf.MinDeposit)
	}
	if amount > conf.MaxBalance {
		return errors.Wrapf(ErrInvalidInput, "deposit %d above maximum %d", amount, conf.MaxBalance)
	}
	return nil
}

// ValidBalance returns an error if amount exceeds the configured maximum.
func ValidBalance(amount uint64, conf *Configuration) error {
	if amount > conf.MaxBalance {
		return errors.Wrapf(ErrInvalidInput, "balance %d above maximum %d", amount, conf.MaxBalance)
	}
	return nil
}

// ValidSignatureShape only checks the signature length.
func ValidSignatureShape(sig []byte) error {
	if len(sig) != SignatureLength {
		return errors.Wrapf(ErrInvalidInput, "signature must be %d bytes, got %d", SignatureLength, len(sig))
	}
	return nil
}

// ValidParticipant returns an error if p cannot take part in a channel. When
// distinct is set, p must also differ from the caller.
func ValidParticipant(p, caller settle.Address, distinct bool) error {
	if len(p) == 0 {
		return errors.Wrap(ErrInvalidInput, "empty participant")
	}
	if err := p.Validate(); err != nil {
		return errors.Wrap(ErrInvalidInput, err.Error())
	}
	if isZero(p) {
		return errors.Wrap(ErrInvalidInput, "null participant")
	}
	if p.Equals(CustodyAddress()) {
		return errors.Wrap(ErrInvalidInput, "custody account cannot participate")
	}
	if distinct && p.Equals(caller) {
		return errors.Wrap(ErrInvalidInput, "participant must differ from caller")
	}
	return nil
}

func isZero(b []byte) bool {
	return len(bytes.Trim(b, "\x00")) == 0
}
