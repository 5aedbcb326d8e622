package cash

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// Ensure we implement the Msg interface
var _ settle.Msg = (*SendMsg)(nil)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidAmount)
	}
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.ErrInvalidInput)
	}
	return errs
}
