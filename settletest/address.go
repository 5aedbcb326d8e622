package settletest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/settle"
)

// NewCondition returns a new, unique condition. Each call returns a
// different condition.
func NewCondition() settle.Condition {
	return settle.NewCondition("test", "seq", SequenceID(atomic.AddUint64(&sequence, 1)))
}

var sequence uint64

// SequenceID returns an 8 byte big endian encoded value.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// settle.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) settle.Address {
	t.Helper()

	addr, err := settle.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
