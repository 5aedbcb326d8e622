package cash

import (
	"github.com/iov-one/settle/errors"
)

// Cash reserves 1000~1009 error codes

// ErrEmptyAccount is returned when funds are moved from an account that was
// never funded.
var ErrEmptyAccount = errors.Register(1000, "empty account")
