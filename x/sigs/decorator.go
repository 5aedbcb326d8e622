/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.
*/
package sigs

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

const (
	signatureVerifyCost = 500
)

// Decorator verifies the signatures and adds them to the context
type Decorator struct {
	allowMissingSigs bool
}

var _ settle.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator,
// which appends the chainID before checking the signature,
// and requires at least one signature to be present
func NewDecorator() Decorator {
	return Decorator{
		allowMissingSigs: false,
	}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Checker) (settle.CheckResult, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return next.Check(ctx, store, tx)
	}

	signers, err := d.verify(ctx, store, stx)
	if err != nil {
		return settle.CheckResult{}, err
	}

	res, err := next.Check(withSigners(ctx, signers), store, tx)
	if err != nil {
		return settle.CheckResult{}, err
	}
	// The most expensive operation is the signature validation. We must
	// charge gas proportionally to the effort.
	res.GasAllocated += int64(len(signers) * signatureVerifyCost)
	return res, nil
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Deliverer) (settle.DeliverResult, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return next.Deliver(ctx, store, tx)
	}

	signers, err := d.verify(ctx, store, stx)
	if err != nil {
		return settle.DeliverResult{}, err
	}
	return next.Deliver(withSigners(ctx, signers), store, tx)
}

func (d Decorator) verify(ctx settle.Context, store settle.KVStore, tx SignedTx) ([]settle.Condition, error) {
	chainID := settle.GetChainID(ctx)
	signers, err := VerifyTxSignatures(store, tx, chainID)
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return signers, nil
}
