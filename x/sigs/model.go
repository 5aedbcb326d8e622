package sigs

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
	"golang.org/x/crypto/ed25519"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

var _ orm.CloneableData = (*UserData)(nil)

func (u *UserData) Validate() error {
	var errs error
	if len(u.Pubkey) != ed25519.PublicKeySize {
		errs = errors.AppendField(errs, "Pubkey", ErrInvalidPubkey)
	}
	if u.Sequence < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	return errs
}

// Copy makes a new UserData with the same data
func (u *UserData) Copy() orm.CloneableData {
	return &UserData{
		Sequence: u.Sequence,
		Pubkey:   append([]byte(nil), u.Pubkey...),
	}
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
// Before incrementing the sequence, this function is testing for a value
// overflow.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}

	next := u.Sequence + 1

	// The greatest supported nonce value at client side is
	//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
	const maxSequenceValue = (1 << 53) - 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// PubkeyCondition returns the condition fulfilled by a signature created
// with the private key that belongs to given public key.
func PubkeyCondition(pubkey []byte) settle.Condition {
	return settle.NewCondition("sigs", "ed25519", pubkey)
}

// Bucket stores UserData keyed by the address of the public key condition.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &UserData{}),
	}
}

// GetOrCreate loads the UserData for given public key or initializes a new
// one with a zero sequence if none exist.
func (b Bucket) GetOrCreate(db settle.ReadOnlyKVStore, pubkey []byte) (*UserData, error) {
	var user UserData
	switch err := b.One(db, PubkeyCondition(pubkey).Address(), &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	default:
		return nil, err
	}
}

// Save stores given user data.
func (b Bucket) Save(db settle.KVStore, user *UserData) error {
	return b.Put(db, PubkeyCondition(user.Pubkey).Address(), user)
}

// RegisterQuery will register this bucket as "/auth"
func RegisterQuery(qr settle.QueryRouter) {
	NewBucket().Register("auth", qr)
}
