package paychan

import (
	"fmt"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/x/cash"
	"github.com/tendermint/tendermint/libs/log"
)

// Controller implements the channel lifecycle on top of a cash ledger. All
// funds escrowed by channels are kept on the CustodyAddress account.
//
// Each lifecycle method checks all preconditions before the first write. If
// the store can be cache wrapped, all writes of a call are committed
// together or not at all.
type Controller struct {
	channels ChannelBucket
	auths    AuthorizationBucket
	cash     cash.Controller
	verifier Verifier
}

// NewController returns a controller moving funds with given cash controller
// and checking state signatures with given verifier.
func NewController(cashctrl cash.Controller, verifier Verifier) *Controller {
	return &Controller{
		channels: NewChannelBucket(),
		auths:    NewAuthorizationBucket(),
		cash:     cashctrl,
		verifier: verifier,
	}
}

// CreateChannel registers a new channel between the caller and participantB
// and moves the deposit of the caller into custody.
func (c *Controller) CreateChannel(
	ctx settle.Context,
	db settle.KVStore,
	caller settle.Address,
	channelID []byte,
	participantB settle.Address,
	deposit uint64,
) (*Channel, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if err := validCall(caller, channelID, participantB); err != nil {
		return nil, err
	}
	if err := ValidDeposit(deposit, conf); err != nil {
		return nil, errors.Field("Deposit", err, "invalid deposit")
	}

	key := ChannelKey{ChannelID: channelID, ParticipantA: caller, ParticipantB: participantB}
	if existing, err := c.channels.Lookup(db, key); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, errors.Wrapf(ErrChannelExists, "channel %X", channelID)
	}

	ch := &Channel{
		ChannelID:      channelID,
		ParticipantA:   caller,
		ParticipantB:   participantB,
		TotalDeposited: deposit,
		BalanceA:       deposit,
		IsOpen:         true,
	}
	err = atomic(db, func(db settle.KVStore) error {
		if err := c.escrow(db, caller, deposit); err != nil {
			return err
		}
		if err := c.channels.InsertNew(db, key, ch); err != nil {
			return err
		}
		if err := c.auths.Authorize(db, channelID, caller); err != nil {
			return errors.Wrap(err, "authorize participant a")
		}
		if err := c.auths.Authorize(db, channelID, participantB); err != nil {
			return errors.Wrap(err, "authorize participant b")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger(ctx, ch).Info("channel created", "deposit", deposit)
	return ch, nil
}

// FundChannel moves amount from the caller into custody and credits it to
// participant a of an open channel.
func (c *Controller) FundChannel(
	ctx settle.Context,
	db settle.KVStore,
	caller settle.Address,
	channelID []byte,
	participantB settle.Address,
	amount uint64,
) (*Channel, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if err := validCall(caller, channelID, participantB); err != nil {
		return nil, err
	}
	if err := ValidDeposit(amount, conf); err != nil {
		return nil, errors.Field("Amount", err, "invalid amount")
	}

	key := ChannelKey{ChannelID: channelID, ParticipantA: caller, ParticipantB: participantB}
	ch, err := c.openChannel(db, key, caller)
	if err != nil {
		return nil, err
	}
	if ch.TotalDeposited > conf.MaxBalance-amount {
		return nil, errors.Wrapf(ErrInvalidInput, "total deposit would exceed %d", conf.MaxBalance)
	}

	err = atomic(db, func(db settle.KVStore) error {
		if err := c.escrow(db, caller, amount); err != nil {
			return err
		}
		ch, err = c.channels.Replace(db, key, func(ch *Channel) {
			ch.TotalDeposited += amount
			ch.BalanceA += amount
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	logger(ctx, ch).Info("channel funded", "amount", amount)
	return ch, nil
}

// CloseCooperative pays out a final state signed by both participants and
// closes the channel.
func (c *Controller) CloseCooperative(
	ctx settle.Context,
	db settle.KVStore,
	caller settle.Address,
	channelID []byte,
	participantB settle.Address,
	balanceA, balanceB uint64,
	sigA, sigB []byte,
) (*Channel, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if err := validCall(caller, channelID, participantB); err != nil {
		return nil, err
	}
	if err := validState(conf, balanceA, balanceB, sigA, sigB); err != nil {
		return nil, err
	}

	key := ChannelKey{ChannelID: channelID, ParticipantA: caller, ParticipantB: participantB}
	ch, err := c.openChannel(db, key, caller)
	if err != nil {
		return nil, err
	}
	msg := ConstructMessage(channelID, balanceA, balanceB, ch.Nonce)
	if !c.verifier.Verify(ctx, msg, sigA, ch.ParticipantA) {
		return nil, errors.Wrap(ErrInvalidSignature, "participant a")
	}
	if !c.verifier.Verify(ctx, msg, sigB, ch.ParticipantB) {
		return nil, errors.Wrap(ErrInvalidSignature, "participant b")
	}
	if err := conserved(ch, balanceA, balanceB); err != nil {
		return nil, err
	}

	err = atomic(db, func(db settle.KVStore) error {
		if err := c.payout(db, ch.ParticipantA, ch.ParticipantB, balanceA, balanceB); err != nil {
			return err
		}
		ch, err = c.channels.Replace(db, key, func(ch *Channel) {
			closeChannel(ch)
			ch.Nonce++
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	logger(ctx, ch).Info("channel closed", "balance_a", balanceA, "balance_b", balanceB)
	return ch, nil
}

// InitiateUnilateralClose records a final state signed by the caller and
// starts the dispute window. Funds are released by ResolveUnilateralClose.
func (c *Controller) InitiateUnilateralClose(
	ctx settle.Context,
	db settle.KVStore,
	caller settle.Address,
	channelID []byte,
	participantB settle.Address,
	balanceA, balanceB uint64,
	sig []byte,
) (*Channel, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if err := validCall(caller, channelID, participantB); err != nil {
		return nil, err
	}
	if err := validState(conf, balanceA, balanceB, sig); err != nil {
		return nil, err
	}

	key := ChannelKey{ChannelID: channelID, ParticipantA: caller, ParticipantB: participantB}
	ch, err := c.openChannel(db, key, caller)
	if err != nil {
		return nil, err
	}
	if ch.DisputeDeadline != 0 {
		return nil, errors.Wrapf(ErrDisputePeriod, "dispute in progress until %d", ch.DisputeDeadline)
	}
	msg := ConstructMessage(channelID, balanceA, balanceB, ch.Nonce)
	if !c.verifier.Verify(ctx, msg, sig, caller) {
		return nil, errors.Wrap(ErrInvalidSignature, "caller")
	}
	if err := conserved(ch, balanceA, balanceB); err != nil {
		return nil, err
	}

	height, _ := settle.GetHeight(ctx)
	deadline := height + conf.DisputeWindow
	if deadline > height+conf.MaxDisputeWindow {
		return nil, errors.Wrapf(ErrInvalidInput, "dispute window above %d blocks", conf.MaxDisputeWindow)
	}

	ch, err = c.channels.Replace(db, key, func(ch *Channel) {
		ch.BalanceA = balanceA
		ch.BalanceB = balanceB
		ch.DisputeDeadline = deadline
	})
	if err != nil {
		return nil, err
	}
	logger(ctx, ch).Info("channel dispute started", "deadline", deadline)
	return ch, nil
}

// ResolveUnilateralClose pays out the proposed state of a channel once its
// dispute window has passed and closes the channel.
func (c *Controller) ResolveUnilateralClose(
	ctx settle.Context,
	db settle.KVStore,
	caller settle.Address,
	channelID []byte,
	participantB settle.Address,
) (*Channel, error) {
	if err := validCall(caller, channelID, participantB); err != nil {
		return nil, err
	}

	key := ChannelKey{ChannelID: channelID, ParticipantA: caller, ParticipantB: participantB}
	ch, err := c.openChannel(db, key, caller)
	if err != nil {
		return nil, err
	}
	if ch.DisputeDeadline == 0 {
		return nil, errors.Wrap(ErrDisputePeriod, "no dispute in progress")
	}
	height, _ := settle.GetHeight(ctx)
	if height < ch.DisputeDeadline {
		return nil, errors.Wrapf(ErrDisputePeriod, "dispute in progress until %d", ch.DisputeDeadline)
	}

	balanceA, balanceB := ch.BalanceA, ch.BalanceB
	err = atomic(db, func(db settle.KVStore) error {
		if err := c.payout(db, ch.ParticipantA, ch.ParticipantB, balanceA, balanceB); err != nil {
			return err
		}
		ch, err = c.channels.Replace(db, key, closeChannel)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger(ctx, ch).Info("channel dispute resolved", "balance_a", balanceA, "balance_b", balanceB)
	return ch, nil
}

// GetChannelInfo returns the channel stored under given key.
func (c *Controller) GetChannelInfo(db settle.ReadOnlyKVStore, channelID []byte, participantA, participantB settle.Address) (*Channel, error) {
	if err := validCall(participantA, channelID, participantB); err != nil {
		return nil, err
	}
	key := ChannelKey{ChannelID: channelID, ParticipantA: participantA, ParticipantB: participantB}
	ch, err := c.channels.Lookup(db, key)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, errors.Wrapf(ErrChannelNotFound, "channel %X", channelID)
	}
	return ch, nil
}

// IsAuthorizedParticipant returns true if participant is a member of the
// channel with given id.
func (c *Controller) IsAuthorizedParticipant(db settle.ReadOnlyKVStore, channelID []byte, participant settle.Address) (bool, error) {
	if err := ValidChannelID(channelID); err != nil {
		return false, err
	}
	if err := ValidParticipant(participant, nil, false); err != nil {
		return false, err
	}
	return c.auths.IsAuthorized(db, channelID, participant)
}

// EmergencyWithdraw moves the whole custody balance to the configuration
// owner. Channel records are not modified. The withdrawn amount is returned.
func (c *Controller) EmergencyWithdraw(ctx settle.Context, db settle.KVStore, caller settle.Address) (uint64, error) {
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	if len(caller) == 0 || !caller.Equals(conf.Owner) {
		return 0, errors.Wrap(ErrNotAuthorized, "owner only")
	}
	custody := CustodyAddress()
	amount, err := c.cash.Balance(db, custody)
	if err != nil {
		return 0, errors.Wrap(err, "custody balance")
	}
	if amount == 0 {
		return 0, nil
	}
	if err := c.cash.MoveCoins(db, custody, conf.Owner, amount); err != nil {
		return 0, errors.Wrap(ErrInsufficientFunds, err.Error())
	}
	settle.GetLogger(ctx).Info("emergency withdraw", "owner", conf.Owner, "amount", amount)
	return amount, nil
}

// openChannel returns the open channel stored under key if caller is one of
// its participants.
func (c *Controller) openChannel(db settle.ReadOnlyKVStore, key ChannelKey, caller settle.Address) (*Channel, error) {
	ch, err := c.channels.Lookup(db, key)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, errors.Wrapf(ErrChannelNotFound, "channel %X", key.ChannelID)
	}
	if !ch.IsOpen {
		return nil, errors.Wrapf(ErrChannelClosed, "channel %X", key.ChannelID)
	}
	if !caller.Equals(ch.ParticipantA) && !caller.Equals(ch.ParticipantB) {
		return nil, errors.Wrap(ErrUnauthorizedParticipant, "caller is not a participant")
	}
	ok, err := c.auths.IsAuthorized(db, key.ChannelID, caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrap(ErrUnauthorizedParticipant, "caller is not authorized")
	}
	return ch, nil
}

func (c *Controller) escrow(db settle.KVStore, src settle.Address, amount uint64) error {
	if err := c.cash.MoveCoins(db, src, CustodyAddress(), amount); err != nil {
		return errors.Wrap(ErrInsufficientFunds, err.Error())
	}
	return nil
}

func (c *Controller) payout(db settle.KVStore, a, b settle.Address, balanceA, balanceB uint64) error {
	custody := CustodyAddress()
	if balanceA > 0 {
		if err := c.cash.MoveCoins(db, custody, a, balanceA); err != nil {
			return errors.Wrap(ErrInsufficientFunds, err.Error())
		}
	}
	if balanceB > 0 {
		if err := c.cash.MoveCoins(db, custody, b, balanceB); err != nil {
			return errors.Wrap(ErrInsufficientFunds, err.Error())
		}
	}
	return nil
}

func closeChannel(ch *Channel) {
	ch.IsOpen = false
	ch.TotalDeposited = 0
	ch.BalanceA = 0
	ch.BalanceB = 0
	ch.DisputeDeadline = 0
}

func validCall(caller settle.Address, channelID []byte, participantB settle.Address) error {
	if err := ValidChannelID(channelID); err != nil {
		return errors.Field("ChannelID", err, "invalid channel id")
	}
	if err := ValidParticipant(caller, nil, false); err != nil {
		return errors.Field("Caller", err, "invalid caller")
	}
	if err := ValidParticipant(participantB, caller, true); err != nil {
		return errors.Field("ParticipantB", err, "invalid participant")
	}
	return nil
}

func validState(conf *Configuration, balanceA, balanceB uint64, sigs ...[]byte) error {
	if err := ValidBalance(balanceA, conf); err != nil {
		return errors.Field("BalanceA", err, "invalid balance")
	}
	if err := ValidBalance(balanceB, conf); err != nil {
		return errors.Field("BalanceB", err, "invalid balance")
	}
	for _, sig := range sigs {
		if err := ValidSignatureShape(sig); err != nil {
			return errors.Field("Signature", err, "invalid signature")
		}
	}
	return nil
}

// conserved returns an error unless the balances add up to the total
// deposit of the channel.
func conserved(ch *Channel, balanceA, balanceB uint64) error {
	if balanceA > ch.TotalDeposited || balanceB != ch.TotalDeposited-balanceA {
		return errors.Wrapf(ErrBalanceMismatch, "%d + %d != %d", balanceA, balanceB, ch.TotalDeposited)
	}
	return nil
}

// atomic runs fn on a cache wrap of db when possible, so that either all
// writes of fn are persisted or none.
func atomic(db settle.KVStore, fn func(settle.KVStore) error) error {
	cstore, ok := db.(settle.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}

func logger(ctx settle.Context, ch *Channel) log.Logger {
	height, _ := settle.GetHeight(ctx)
	return settle.GetLogger(ctx).With(
		"channel", fmt.Sprintf("%X", ch.ChannelID),
		"height", height,
		"nonce", ch.Nonce,
	)
}
