package paychan

import (
	"context"
	"testing"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/gconf"
	"github.com/iov-one/settle/settletest"
	"github.com/iov-one/settle/store"
	"github.com/iov-one/settle/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    settle.CacheableKVStore
	cash  cash.BaseController
	auth  *settletest.Auth
	ctrl  *Controller
	owner settle.Condition
	alice settle.Condition
	bob   settle.Condition
}

// newFixture returns a controller with the default configuration and both
// alice and bob funded with 100,000.
func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		db:    store.MemStore(),
		cash:  cash.NewController(cash.NewBucket()),
		auth:  &settletest.Auth{},
		owner: settletest.NewCondition(),
		alice: settletest.NewCondition(),
		bob:   settletest.NewCondition(),
	}
	f.ctrl = NewController(f.cash, NewCallerVerifier(f.auth))

	conf := DefaultConfiguration(f.owner.Address())
	require.NoError(t, gconf.Save(f.db, ConfigurationName, &conf))
	require.NoError(t, f.cash.IssueCoins(f.db, f.alice.Address(), 100000))
	require.NoError(t, f.cash.IssueCoins(f.db, f.bob.Address(), 100000))
	return f
}

func (f *fixture) signedBy(signers ...settle.Condition) {
	f.auth.Signers = signers
}

func (f *fixture) balance(t testing.TB, addr settle.Address) uint64 {
	t.Helper()
	b, err := f.cash.Balance(f.db, addr)
	require.NoError(t, err)
	return b
}

func atHeight(h int64) settle.Context {
	return settle.WithHeight(context.Background(), h)
}

var sig = make([]byte, SignatureLength)

func TestChannelLifecycle(t *testing.T) {
	f := newFixture(t)
	a, b := f.alice.Address(), f.bob.Address()
	id := channelID(1)

	// Opening escrows the deposit and authorizes both parties.
	f.signedBy(f.alice)
	ch, err := f.ctrl.CreateChannel(atHeight(10), f.db, a, id, b, 10000)
	require.NoError(t, err)
	assert.Equal(t, uint64(10000), ch.BalanceA)
	assert.Equal(t, uint64(0), ch.BalanceB)
	assert.Equal(t, uint64(10000), ch.TotalDeposited)
	assert.True(t, ch.IsOpen)
	assert.Equal(t, uint64(90000), f.balance(t, a))
	assert.Equal(t, uint64(10000), f.balance(t, CustodyAddress()))

	for _, p := range []settle.Address{a, b} {
		ok, err := f.ctrl.IsAuthorizedParticipant(f.db, id, p)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	// Funding credits the creator.
	ch, err = f.ctrl.FundChannel(atHeight(11), f.db, a, id, b, 5000)
	require.NoError(t, err)
	assert.Equal(t, uint64(15000), ch.TotalDeposited)
	assert.Equal(t, uint64(15000), ch.BalanceA)
	assert.Equal(t, uint64(85000), f.balance(t, a))

	// A close that does not conserve the deposit is rejected.
	f.signedBy(f.alice, f.bob)
	_, err = f.ctrl.CloseCooperative(atHeight(12), f.db, a, id, b, 9000, 5999, sig, sig)
	assert.True(t, ErrBalanceMismatch.Is(err), "got %+v", err)
	assert.Equal(t, uint64(15000), f.balance(t, CustodyAddress()))

	ch, err = f.ctrl.CloseCooperative(atHeight(12), f.db, a, id, b, 9000, 6000, sig, sig)
	require.NoError(t, err)
	assert.False(t, ch.IsOpen)
	assert.Equal(t, uint64(1), ch.Nonce)
	assert.Equal(t, uint64(94000), f.balance(t, a))
	assert.Equal(t, uint64(106000), f.balance(t, b))
	assert.Equal(t, uint64(0), f.balance(t, CustodyAddress()))

	stored, err := f.ctrl.GetChannelInfo(f.db, id, a, b)
	require.NoError(t, err)
	assert.Equal(t, ch, stored)
}

func TestUnilateralClose(t *testing.T) {
	f := newFixture(t)
	a, b := f.alice.Address(), f.bob.Address()
	id := channelID(2)

	f.signedBy(f.alice)
	_, err := f.ctrl.CreateChannel(atHeight(1), f.db, a, id, b, 15000)
	require.NoError(t, err)

	_, err = f.ctrl.ResolveUnilateralClose(atHeight(2), f.db, a, id, b)
	assert.True(t, ErrDisputePeriod.Is(err), "resolve without dispute: %+v", err)

	// A proposal must account for the whole deposit.
	_, err = f.ctrl.InitiateUnilateralClose(atHeight(3), f.db, a, id, b, 15000, 1, sig)
	assert.True(t, ErrBalanceMismatch.Is(err), "unbalanced proposal: %+v", err)

	// The caller must sign the proposal.
	f.signedBy(f.bob)
	_, err = f.ctrl.InitiateUnilateralClose(atHeight(3), f.db, a, id, b, 15000, 0, sig)
	assert.True(t, ErrInvalidSignature.Is(err), "unsigned proposal: %+v", err)

	ch, err := f.ctrl.GetChannelInfo(f.db, id, a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ch.DisputeDeadline)
	assert.Equal(t, uint64(15000), ch.BalanceA)
	assert.Equal(t, uint64(0), ch.BalanceB)
	assert.Equal(t, uint64(15000), f.balance(t, CustodyAddress()))

	f.signedBy(f.alice)
	const h = 100
	ch, err = f.ctrl.InitiateUnilateralClose(atHeight(h), f.db, a, id, b, 15000, 0, sig)
	require.NoError(t, err)
	assert.Equal(t, int64(h+DefaultDisputeWindow), ch.DisputeDeadline)
	assert.True(t, ch.IsOpen)

	_, err = f.ctrl.InitiateUnilateralClose(atHeight(h+1), f.db, a, id, b, 15000, 0, sig)
	assert.True(t, ErrDisputePeriod.Is(err), "second initiate: %+v", err)

	_, err = f.ctrl.ResolveUnilateralClose(atHeight(h+DefaultDisputeWindow-1), f.db, a, id, b)
	assert.True(t, ErrDisputePeriod.Is(err), "early resolve: %+v", err)
	assert.Equal(t, uint64(15000), f.balance(t, CustodyAddress()))

	ch, err = f.ctrl.ResolveUnilateralClose(atHeight(h+DefaultDisputeWindow), f.db, a, id, b)
	require.NoError(t, err)
	assert.False(t, ch.IsOpen)
	assert.Equal(t, int64(0), ch.DisputeDeadline)
	assert.Equal(t, uint64(0), ch.Nonce)
	assert.Equal(t, uint64(100000), f.balance(t, a))
	assert.Equal(t, uint64(100000), f.balance(t, b))
	assert.Equal(t, uint64(0), f.balance(t, CustodyAddress()))

	_, err = f.ctrl.ResolveUnilateralClose(atHeight(h+DefaultDisputeWindow+1), f.db, a, id, b)
	assert.True(t, ErrChannelClosed.Is(err), "resolve closed: %+v", err)
}

func TestCreateChannel(t *testing.T) {
	cases := map[string]struct {
		id      []byte
		toBob   bool
		deposit uint64
		wantErr *errors.Error
	}{
		"valid": {
			id:      channelID(1),
			toBob:   true,
			deposit: 1000,
		},
		"participant must differ from caller": {
			id:      channelID(1),
			deposit: 1000,
			wantErr: ErrInvalidInput,
		},
		"deposit below minimum": {
			id:      channelID(1),
			toBob:   true,
			deposit: 999,
			wantErr: ErrInvalidInput,
		},
		"zero channel id": {
			id:      make([]byte, ChannelIDLength),
			toBob:   true,
			deposit: 1000,
			wantErr: ErrInvalidInput,
		},
		"deposit above funds": {
			id:      channelID(1),
			toBob:   true,
			deposit: 100001,
			wantErr: ErrInsufficientFunds,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			b := f.alice.Address()
			if tc.toBob {
				b = f.bob.Address()
			}
			_, err := f.ctrl.CreateChannel(atHeight(1), f.db, f.alice.Address(), tc.id, b, tc.deposit)
			require.True(t, tc.wantErr.Is(err), "got %+v", err)
			if tc.wantErr != nil {
				assert.Equal(t, uint64(100000), f.balance(t, f.alice.Address()))
				assert.Equal(t, uint64(0), f.balance(t, CustodyAddress()))
				ok, err := f.ctrl.IsAuthorizedParticipant(f.db, channelID(1), f.alice.Address())
				require.NoError(t, err)
				assert.False(t, ok)
			}
		})
	}
}

func TestCreateChannelTwice(t *testing.T) {
	f := newFixture(t)
	a, b := f.alice.Address(), f.bob.Address()
	id := channelID(3)

	_, err := f.ctrl.CreateChannel(atHeight(1), f.db, a, id, b, 1000)
	require.NoError(t, err)

	_, err = f.ctrl.CreateChannel(atHeight(2), f.db, a, id, b, 1000)
	assert.True(t, ErrChannelExists.Is(err), "got %+v", err)
	assert.Equal(t, uint64(99000), f.balance(t, a))

	// The key is positional, the reverse pair is a different channel.
	_, err = f.ctrl.CreateChannel(atHeight(3), f.db, b, id, a, 1000)
	require.NoError(t, err)
}

func TestFundChannel(t *testing.T) {
	f := newFixture(t)
	a, b := f.alice.Address(), f.bob.Address()
	id := channelID(4)

	_, err := f.ctrl.FundChannel(atHeight(1), f.db, a, id, b, 1000)
	assert.True(t, ErrChannelNotFound.Is(err), "fund missing: %+v", err)

	_, err = f.ctrl.CreateChannel(atHeight(1), f.db, a, id, b, 50000)
	require.NoError(t, err)

	_, err = f.ctrl.FundChannel(atHeight(2), f.db, a, id, b, 50001)
	assert.True(t, ErrInsufficientFunds.Is(err), "fund above balance: %+v", err)
	assert.Equal(t, uint64(50000), f.balance(t, a))

	ch, err := f.ctrl.GetChannelInfo(f.db, id, a, b)
	require.NoError(t, err)
	assert.Equal(t, uint64(50000), ch.TotalDeposited)
}

func TestFundChannelAboveMaximum(t *testing.T) {
	f := newFixture(t)
	a, b := f.alice.Address(), f.bob.Address()
	id := channelID(5)

	conf := DefaultConfiguration(f.owner.Address())
	conf.MaxBalance = 60000
	require.NoError(t, gconf.Save(f.db, ConfigurationName, &conf))

	_, err := f.ctrl.CreateChannel(atHeight(1), f.db, a, id, b, 50000)
	require.NoError(t, err)
	_, err = f.ctrl.FundChannel(atHeight(2), f.db, a, id, b, 10001)
	assert.True(t, ErrInvalidInput.Is(err), "got %+v", err)
	_, err = f.ctrl.FundChannel(atHeight(2), f.db, a, id, b, 10000)
	require.NoError(t, err)
}

func TestCloseCooperativeSignatures(t *testing.T) {
	f := newFixture(t)
	a, b := f.alice.Address(), f.bob.Address()
	id := channelID(6)

	_, err := f.ctrl.CreateChannel(atHeight(1), f.db, a, id, b, 10000)
	require.NoError(t, err)

	f.signedBy(f.alice)
	_, err = f.ctrl.CloseCooperative(atHeight(2), f.db, a, id, b, 5000, 5000, sig, sig)
	assert.True(t, ErrInvalidSignature.Is(err), "missing bob: %+v", err)

	f.signedBy(f.alice, f.bob)
	_, err = f.ctrl.CloseCooperative(atHeight(2), f.db, a, id, b, 5000, 5000, sig, sig[:64])
	assert.True(t, ErrInvalidInput.Is(err), "short signature: %+v", err)

	assert.Equal(t, uint64(10000), f.balance(t, CustodyAddress()))
}

func TestClosedChannelIsPermanent(t *testing.T) {
	f := newFixture(t)
	a, b := f.alice.Address(), f.bob.Address()
	id := channelID(7)

	f.signedBy(f.alice, f.bob)
	_, err := f.ctrl.CreateChannel(atHeight(1), f.db, a, id, b, 10000)
	require.NoError(t, err)
	closed, err := f.ctrl.CloseCooperative(atHeight(2), f.db, a, id, b, 10000, 0, sig, sig)
	require.NoError(t, err)

	_, err = f.ctrl.CreateChannel(atHeight(3), f.db, a, id, b, 10000)
	assert.True(t, ErrChannelExists.Is(err), "create: %+v", err)
	_, err = f.ctrl.FundChannel(atHeight(3), f.db, a, id, b, 10000)
	assert.True(t, ErrChannelClosed.Is(err), "fund: %+v", err)
	_, err = f.ctrl.CloseCooperative(atHeight(3), f.db, a, id, b, 0, 0, sig, sig)
	assert.True(t, ErrChannelClosed.Is(err), "close: %+v", err)
	_, err = f.ctrl.InitiateUnilateralClose(atHeight(3), f.db, a, id, b, 0, 0, sig)
	assert.True(t, ErrChannelClosed.Is(err), "initiate: %+v", err)
	_, err = f.ctrl.ResolveUnilateralClose(atHeight(3), f.db, a, id, b)
	assert.True(t, ErrChannelClosed.Is(err), "resolve: %+v", err)

	stored, err := f.ctrl.GetChannelInfo(f.db, id, a, b)
	require.NoError(t, err)
	assert.Equal(t, closed, stored)

	// Participants stay authorized after close.
	ok, err := f.ctrl.IsAuthorizedParticipant(f.db, id, b)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNonParticipantIsRejected(t *testing.T) {
	f := newFixture(t)
	a, b := f.alice.Address(), f.bob.Address()
	mallory := settletest.NewCondition()
	m := mallory.Address()
	require.NoError(t, f.cash.IssueCoins(f.db, m, 100000))
	id := channelID(8)

	f.signedBy(f.alice, f.bob, mallory)
	_, err := f.ctrl.CreateChannel(atHeight(1), f.db, a, id, b, 10000)
	require.NoError(t, err)

	calls := map[string]func() error{
		"fund": func() error {
			_, err := f.ctrl.FundChannel(atHeight(2), f.db, m, id, b, 1000)
			return err
		},
		"close": func() error {
			_, err := f.ctrl.CloseCooperative(atHeight(2), f.db, m, id, b, 10000, 0, sig, sig)
			return err
		},
		"initiate": func() error {
			_, err := f.ctrl.InitiateUnilateralClose(atHeight(2), f.db, m, id, b, 10000, 0, sig)
			return err
		},
		"resolve": func() error {
			_, err := f.ctrl.ResolveUnilateralClose(atHeight(2), f.db, m, id, b)
			return err
		},
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.Error(t, err)
			assert.True(t, ErrChannelNotFound.Is(err), "got %+v", err)
			assert.Equal(t, uint64(100000), f.balance(t, m))
			assert.Equal(t, uint64(10000), f.balance(t, CustodyAddress()))
		})
	}

	ok, err := f.ctrl.IsAuthorizedParticipant(f.db, id, m)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTamperedParticipantRecord(t *testing.T) {
	f := newFixture(t)
	a, b := f.alice.Address(), f.bob.Address()
	id := channelID(9)

	_, err := f.ctrl.CreateChannel(atHeight(1), f.db, a, id, b, 10000)
	require.NoError(t, err)

	// Drop the index entry of alice, leaving the registry untouched.
	require.NoError(t, NewAuthorizationBucket().Delete(f.db, authKey(id, a)))

	_, err = f.ctrl.FundChannel(atHeight(2), f.db, a, id, b, 1000)
	assert.True(t, ErrUnauthorizedParticipant.Is(err), "got %+v", err)
	assert.Equal(t, uint64(90000), f.balance(t, a))
}

func TestPayoutRollback(t *testing.T) {
	f := newFixture(t)
	a, b := f.alice.Address(), f.bob.Address()
	id := channelID(10)

	f.signedBy(f.alice, f.bob)
	_, err := f.ctrl.CreateChannel(atHeight(1), f.db, a, id, b, 10000)
	require.NoError(t, err)

	// Drain part of the custody account so that the second payout fails.
	require.NoError(t, f.cash.MoveCoins(f.db, CustodyAddress(), f.owner.Address(), 5000))

	_, err = f.ctrl.CloseCooperative(atHeight(2), f.db, a, id, b, 4000, 6000, sig, sig)
	assert.True(t, ErrInsufficientFunds.Is(err), "got %+v", err)

	assert.Equal(t, uint64(90000), f.balance(t, a))
	assert.Equal(t, uint64(100000), f.balance(t, b))
	assert.Equal(t, uint64(5000), f.balance(t, CustodyAddress()))
	ch, err := f.ctrl.GetChannelInfo(f.db, id, a, b)
	require.NoError(t, err)
	assert.True(t, ch.IsOpen)
}

func TestEmergencyWithdraw(t *testing.T) {
	f := newFixture(t)
	a, b := f.alice.Address(), f.bob.Address()
	owner := f.owner.Address()

	n, err := f.ctrl.EmergencyWithdraw(atHeight(1), f.db, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)

	_, err = f.ctrl.CreateChannel(atHeight(1), f.db, a, channelID(11), b, 7000)
	require.NoError(t, err)
	_, err = f.ctrl.CreateChannel(atHeight(1), f.db, b, channelID(12), a, 3000)
	require.NoError(t, err)

	_, err = f.ctrl.EmergencyWithdraw(atHeight(2), f.db, a)
	assert.True(t, ErrNotAuthorized.Is(err), "got %+v", err)

	n, err = f.ctrl.EmergencyWithdraw(atHeight(2), f.db, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(10000), n)
	assert.Equal(t, uint64(10000), f.balance(t, owner))
	assert.Equal(t, uint64(0), f.balance(t, CustodyAddress()))

	// Records are left untouched.
	ch, err := f.ctrl.GetChannelInfo(f.db, channelID(11), a, b)
	require.NoError(t, err)
	assert.True(t, ch.IsOpen)
	assert.Equal(t, uint64(7000), ch.TotalDeposited)
}

func TestMissingConfiguration(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(cash.NewController(cash.NewBucket()), NewCallerVerifier(&settletest.Auth{}))
	a, b := settletest.NewCondition().Address(), settletest.NewCondition().Address()

	_, err := ctrl.CreateChannel(atHeight(1), db, a, channelID(1), b, 1000)
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
}

func TestGetChannelInfo(t *testing.T) {
	f := newFixture(t)
	a, b := f.alice.Address(), f.bob.Address()

	_, err := f.ctrl.GetChannelInfo(f.db, channelID(1), a, b)
	assert.True(t, ErrChannelNotFound.Is(err), "got %+v", err)
	_, err = f.ctrl.GetChannelInfo(f.db, []byte("short"), a, b)
	assert.True(t, ErrInvalidInput.Is(err), "got %+v", err)
	_, err = f.ctrl.GetChannelInfo(f.db, channelID(1), a, a)
	assert.True(t, ErrInvalidInput.Is(err), "got %+v", err)
}

func TestDisputeWindowAboveMaximum(t *testing.T) {
	f := newFixture(t)
	a, b := f.alice.Address(), f.bob.Address()
	id := channelID(9)

	f.signedBy(f.alice)
	_, err := f.ctrl.CreateChannel(atHeight(1), f.db, a, id, b, 15000)
	require.NoError(t, err)

	// gconf.Save refuses such a configuration, so it is written directly.
	conf := DefaultConfiguration(f.owner.Address())
	conf.DisputeWindow = conf.MaxDisputeWindow + 1
	raw, err := conf.Marshal()
	require.NoError(t, err)
	require.NoError(t, f.db.Set([]byte("_c:"+ConfigurationName), raw))

	_, err = f.ctrl.InitiateUnilateralClose(atHeight(2), f.db, a, id, b, 15000, 0, sig)
	assert.True(t, ErrInvalidInput.Is(err), "got %+v", err)

	ch, err := f.ctrl.GetChannelInfo(f.db, id, a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ch.DisputeDeadline)
}
