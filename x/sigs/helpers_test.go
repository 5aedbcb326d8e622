package sigs

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/settletest"
)

// StdTx is a transaction carrying a mock message and signatures.
type StdTx struct {
	settletest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ settle.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &settletest.Msg{RoutePath: "test/sigs", Serialized: payload}
	return &StdTx{Tx: settletest.Tx{Msg: msg}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}
