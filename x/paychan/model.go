package paychan

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
)

const (
	// ChannelBucketName is where channel records are stored.
	ChannelBucketName = "chan"
	// AuthorizationBucketName is where the participant index is stored.
	AuthorizationBucketName = "chanauth"
)

// ChannelKey addresses a channel record. The order of participants is
// significant.
type ChannelKey struct {
	ChannelID    []byte
	ParticipantA settle.Address
	ParticipantB settle.Address
}

// Key returns the database key of the channel.
func (k ChannelKey) Key() []byte {
	key := make([]byte, 0, len(k.ChannelID)+len(k.ParticipantA)+len(k.ParticipantB))
	key = append(key, k.ChannelID...)
	key = append(key, k.ParticipantA...)
	return append(key, k.ParticipantB...)
}

var _ orm.Model = (*Channel)(nil)

// Validate ensures the record holds a consistent state. Balances of an open
// channel must add up to the deposit and a closed channel holds no funds.
func (c *Channel) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "ChannelID", ValidChannelID(c.ChannelID))
	errs = errors.AppendField(errs, "ParticipantA", c.ParticipantA.Validate())
	errs = errors.AppendField(errs, "ParticipantB", c.ParticipantB.Validate())
	if c.DisputeDeadline < 0 {
		errs = errors.AppendField(errs, "DisputeDeadline", errors.ErrInvalidState)
	}
	if c.IsOpen {
		if c.BalanceA > c.TotalDeposited || c.BalanceB != c.TotalDeposited-c.BalanceA {
			errs = errors.AppendField(errs, "TotalDeposited",
				errors.Wrap(errors.ErrInvalidState, "balances do not match deposit"))
		}
	} else {
		if c.TotalDeposited != 0 || c.BalanceA != 0 || c.BalanceB != 0 {
			errs = errors.AppendField(errs, "TotalDeposited",
				errors.Wrap(errors.ErrInvalidState, "closed channel holds funds"))
		}
		if c.DisputeDeadline != 0 {
			errs = errors.AppendField(errs, "DisputeDeadline",
				errors.Wrap(errors.ErrInvalidState, "closed channel in dispute"))
		}
	}
	return errs
}

func (c *Channel) Copy() orm.CloneableData {
	return &Channel{
		ChannelID:       copyBytes(c.ChannelID),
		ParticipantA:    copyBytes(c.ParticipantA),
		ParticipantB:    copyBytes(c.ParticipantB),
		TotalDeposited:  c.TotalDeposited,
		BalanceA:        c.BalanceA,
		BalanceB:        c.BalanceB,
		IsOpen:          c.IsOpen,
		DisputeDeadline: c.DisputeDeadline,
		Nonce:           c.Nonce,
	}
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}

// ChannelBucket is the channel registry.
type ChannelBucket struct {
	orm.ModelBucket
}

// NewChannelBucket returns a bucket for managing channel records.
func NewChannelBucket() ChannelBucket {
	return ChannelBucket{
		ModelBucket: orm.NewModelBucket(ChannelBucketName, &Channel{}),
	}
}

// Lookup returns the channel stored under given key or nil if there is none.
func (b ChannelBucket) Lookup(db settle.ReadOnlyKVStore, key ChannelKey) (*Channel, error) {
	var ch Channel
	switch err := b.One(db, key.Key(), &ch); {
	case err == nil:
		return &ch, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "load channel")
	}
}

// InsertNew stores a record under a key that was never used before.
func (b ChannelBucket) InsertNew(db settle.KVStore, key ChannelKey, ch *Channel) error {
	switch err := b.Has(db, key.Key()); {
	case err == nil:
		return errors.Wrapf(ErrChannelExists, "channel %X", key.ChannelID)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return b.Put(db, key.Key(), ch)
}

// Replace applies update to a stored record and saves the result. The
// record must exist.
func (b ChannelBucket) Replace(db settle.KVStore, key ChannelKey, update func(*Channel)) (*Channel, error) {
	ch, err := b.Lookup(db, key)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, errors.Wrapf(ErrChannelNotFound, "channel %X", key.ChannelID)
	}
	update(ch)
	if err := b.Put(db, key.Key(), ch); err != nil {
		return nil, errors.Wrap(err, "save channel")
	}
	return ch, nil
}

var _ orm.Model = (*Authorization)(nil)

func (a *Authorization) Validate() error {
	if !a.Authorized {
		return errors.Wrap(errors.ErrInvalidModel, "only authorized participants are stored")
	}
	return nil
}

func (a *Authorization) Copy() orm.CloneableData {
	return &Authorization{Authorized: a.Authorized}
}

// AuthorizationBucket indexes the participants of every channel.
type AuthorizationBucket struct {
	orm.ModelBucket
}

// NewAuthorizationBucket returns a bucket for managing the participant
// index.
func NewAuthorizationBucket() AuthorizationBucket {
	return AuthorizationBucket{
		ModelBucket: orm.NewModelBucket(AuthorizationBucketName, &Authorization{}),
	}
}

func authKey(channelID []byte, participant settle.Address) []byte {
	key := make([]byte, 0, len(channelID)+len(participant))
	key = append(key, channelID...)
	return append(key, participant...)
}

// Authorize marks participant as a member of the channel.
func (b AuthorizationBucket) Authorize(db settle.KVStore, channelID []byte, participant settle.Address) error {
	return b.Put(db, authKey(channelID, participant), &Authorization{Authorized: true})
}

// IsAuthorized returns true if participant was authorized for the channel.
func (b AuthorizationBucket) IsAuthorized(db settle.ReadOnlyKVStore, channelID []byte, participant settle.Address) (bool, error) {
	var a Authorization
	switch err := b.One(db, authKey(channelID, participant), &a); {
	case err == nil:
		return a.Authorized, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, errors.Wrap(err, "load authorization")
	}
}

// RegisterQuery exposes the registry as "/channels" and the participant
// index as "/channelauths".
func RegisterQuery(qr settle.QueryRouter) {
	NewChannelBucket().Register("channels", qr)
	NewAuthorizationBucket().Register("channelauths", qr)
}
