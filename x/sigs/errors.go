package sigs

import (
	"github.com/iov-one/settle/errors"
)

// x/sigs reserves 1010 ~ 1019.
var (
	ErrInvalidSequence = errors.Register(1010, "invalid sequence number")
	ErrInvalidPubkey   = errors.Register(1011, "invalid public key")
)
