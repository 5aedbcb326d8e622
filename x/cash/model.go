package cash

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

var _ orm.Model = (*Wallet)(nil)

// Validate is always successful, any balance is a valid balance.
func (w *Wallet) Validate() error {
	return nil
}

// Copy makes a new wallet with the same balance.
func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{Balance: w.Balance}
}

// NewBucket returns a bucket storing wallets keyed by the owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}

// RegisterQuery will register this bucket as "/wallets"
func RegisterQuery(qr settle.QueryRouter) {
	NewBucket().Register("wallets", qr)
}
