package cash

import (
	"math"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
)

// Controller is the functionality needed by cash.Handler and cash.Decorator.
// BaseController should work plenty fine, but you can add other logic if so
// desired
type Controller interface {
	// Balance returns the amount of funds stored under given address. An
	// account that was never funded has a zero balance.
	Balance(db settle.ReadOnlyKVStore, addr settle.Address) (uint64, error)
	// MoveCoins transfers amount from src to dest. The operation is all
	// or nothing.
	MoveCoins(db settle.KVStore, src, dest settle.Address, amount uint64) error
	// IssueCoins creates amount of funds on the dest account.
	IssueCoins(db settle.KVStore, dest settle.Address, amount uint64) error
}

// BaseController is a simple implementation of controller
// wallet must return something that supports AsSet
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a basic controller implementation
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the balance of given account.
func (c BaseController) Balance(db settle.ReadOnlyKVStore, addr settle.Address) (uint64, error) {
	if err := addr.Validate(); err != nil {
		return 0, errors.Wrap(err, "address")
	}
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return w.Balance, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db settle.KVStore, src, dest settle.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	var sender Wallet
	switch err := c.bucket.One(db, src, &sender); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(ErrEmptyAccount, "account %s", src)
	default:
		return errors.Wrap(err, "cannot load sender")
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, want %d", sender.Balance, amount)
	}

	if src.Equals(dest) {
		return nil
	}

	var recipient Wallet
	if err := c.bucket.One(db, dest, &recipient); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "cannot load recipient")
	}
	if recipient.Balance > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}

	sender.Balance -= amount
	recipient.Balance += amount

	if err := c.bucket.Put(db, src, &sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}
	if err := c.bucket.Put(db, dest, &recipient); err != nil {
		return errors.Wrap(err, "cannot save recipient")
	}
	return nil
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db settle.KVStore, dest settle.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	var w Wallet
	if err := c.bucket.One(db, dest, &w); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "cannot load wallet")
	}
	if w.Balance > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "wallet balance")
	}
	w.Balance += amount
	return c.bucket.Put(db, dest, &w)
}
