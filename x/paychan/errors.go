package paychan

import "github.com/iov-one/settle/errors"

var (
	ErrNotAuthorized           = errors.Register(1100, "not authorized")
	ErrChannelExists           = errors.Register(1101, "channel exists")
	ErrChannelNotFound         = errors.Register(1102, "channel not found")
	ErrInsufficientFunds       = errors.Register(1103, "insufficient funds")
	ErrInvalidSignature        = errors.Register(1104, "invalid signature")
	ErrChannelClosed           = errors.Register(1105, "channel closed")
	ErrDisputePeriod           = errors.Register(1106, "dispute period")
	ErrInvalidInput            = errors.Register(1107, "invalid input")
	ErrBalanceMismatch         = errors.Register(1108, "balance mismatch")
	ErrUnauthorizedParticipant = errors.Register(1109, "unauthorized participant")
)
