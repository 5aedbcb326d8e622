package paychan

import (
	"testing"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/gconf"
	"github.com/iov-one/settle/settletest"
	"github.com/iov-one/settle/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type router struct {
	routes map[string]settle.Handler
}

func (r *router) Handle(path string, h settle.Handler) {
	r.routes[path] = h
}

func newRouter(f *fixture) *router {
	rt := &router{routes: make(map[string]settle.Handler)}
	RegisterRoutes(rt, f.auth, f.cash)
	return rt
}

func TestRegisterRoutes(t *testing.T) {
	rt := newRouter(newFixture(t))
	for _, path := range []string{
		"paychan/create",
		"paychan/fund",
		"paychan/close",
		"paychan/initiate_close",
		"paychan/resolve_close",
		"paychan/emergency_withdraw",
		"paychan/update_configuration",
	} {
		assert.NotNil(t, rt.routes[path], path)
	}
}

func TestHandlers(t *testing.T) {
	cases := map[string]struct {
		signers        func(f *fixture) []settle.Condition
		msg            func(f *fixture) settle.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantCustody    uint64
	}{
		"create": {
			signers: func(f *fixture) []settle.Condition { return []settle.Condition{f.alice} },
			msg: func(f *fixture) settle.Msg {
				return &CreateChannelMsg{Caller: f.alice.Address(), ChannelID: channelID(1),
					ParticipantB: f.bob.Address(), Deposit: 2000}
			},
			wantCustody: 2000,
		},
		"create requires caller signature": {
			signers: func(f *fixture) []settle.Condition { return []settle.Condition{f.bob} },
			msg: func(f *fixture) settle.Msg {
				return &CreateChannelMsg{Caller: f.alice.Address(), ChannelID: channelID(1),
					ParticipantB: f.bob.Address(), Deposit: 2000}
			},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"create with invalid message": {
			signers: func(f *fixture) []settle.Condition { return []settle.Condition{f.alice} },
			msg: func(f *fixture) settle.Msg {
				return &CreateChannelMsg{Caller: f.alice.Address(), ChannelID: channelID(1),
					ParticipantB: f.alice.Address(), Deposit: 2000}
			},
			wantCheckErr:   ErrInvalidInput,
			wantDeliverErr: ErrInvalidInput,
		},
		"create below minimum deposit fails on deliver": {
			signers: func(f *fixture) []settle.Condition { return []settle.Condition{f.alice} },
			msg: func(f *fixture) settle.Msg {
				return &CreateChannelMsg{Caller: f.alice.Address(), ChannelID: channelID(1),
					ParticipantB: f.bob.Address(), Deposit: 10}
			},
			wantDeliverErr: ErrInvalidInput,
		},
		"fund missing channel": {
			signers: func(f *fixture) []settle.Condition { return []settle.Condition{f.alice} },
			msg: func(f *fixture) settle.Msg {
				return &FundChannelMsg{Caller: f.alice.Address(), ChannelID: channelID(1),
					ParticipantB: f.bob.Address(), Amount: 2000}
			},
			wantDeliverErr: ErrChannelNotFound,
		},
		"withdraw by non owner": {
			signers: func(f *fixture) []settle.Condition { return []settle.Condition{f.alice} },
			msg: func(f *fixture) settle.Msg {
				return &EmergencyWithdrawMsg{Caller: f.alice.Address()}
			},
			wantDeliverErr: ErrNotAuthorized,
		},
		"unknown message": {
			signers: func(f *fixture) []settle.Condition { return []settle.Condition{f.alice} },
			msg: func(f *fixture) settle.Msg {
				return &settletest.Msg{RoutePath: pathCreateChannelMsg}
			},
			wantCheckErr:   errors.ErrInvalidMsg,
			wantDeliverErr: errors.ErrInvalidMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.signedBy(tc.signers(f)...)
			msg := tc.msg(f)
			h := newRouter(f).routes[msg.Path()]
			require.NotNil(t, h)
			tx := &settletest.Tx{Msg: msg}

			cache := f.db.CacheWrap()
			_, err := h.Check(atHeight(1), cache, tx)
			require.True(t, tc.wantCheckErr.Is(err), "unexpected check error: %+v", err)
			cache.Discard()

			res, err := h.Deliver(atHeight(1), f.db, tx)
			require.True(t, tc.wantDeliverErr.Is(err), "unexpected deliver error: %+v", err)
			if tc.wantDeliverErr == nil {
				var ch Channel
				require.NoError(t, ch.Unmarshal(res.Data))
				require.Len(t, res.Tags, 1)
				assert.Equal(t, ChannelTag, string(res.Tags[0].Key))
			}
			assert.Equal(t, tc.wantCustody, f.balance(t, CustodyAddress()))
		})
	}
}

func TestHandlerFlow(t *testing.T) {
	f := newFixture(t)
	rt := newRouter(f)
	a, b := f.alice.Address(), f.bob.Address()
	id := channelID(1)

	deliver := func(height int64, msg settle.Msg, signers ...settle.Condition) (settle.DeliverResult, error) {
		f.signedBy(signers...)
		h := settletest.Decorate(rt.routes[msg.Path()], utils.NewSavepoint().OnDeliver())
		return h.Deliver(atHeight(height), f.db, &settletest.Tx{Msg: msg})
	}

	_, err := deliver(1, &CreateChannelMsg{Caller: a, ChannelID: id, ParticipantB: b, Deposit: 10000}, f.alice)
	require.NoError(t, err)
	_, err = deliver(2, &FundChannelMsg{Caller: a, ChannelID: id, ParticipantB: b, Amount: 5000}, f.alice)
	require.NoError(t, err)

	_, err = deliver(3, &InitiateCloseMsg{Caller: a, ChannelID: id, ParticipantB: b,
		BalanceA: 5000, BalanceB: 10000, Signature: sig}, f.alice)
	require.NoError(t, err)

	_, err = deliver(4, &ResolveCloseMsg{Caller: a, ChannelID: id, ParticipantB: b}, f.alice)
	require.True(t, ErrDisputePeriod.Is(err), "got %+v", err)

	res, err := deliver(3+DefaultDisputeWindow, &ResolveCloseMsg{Caller: a, ChannelID: id, ParticipantB: b}, f.alice)
	require.NoError(t, err)
	var ch Channel
	require.NoError(t, ch.Unmarshal(res.Data))
	assert.False(t, ch.IsOpen)

	assert.Equal(t, uint64(90000), f.balance(t, a))
	assert.Equal(t, uint64(110000), f.balance(t, b))
	assert.Equal(t, uint64(0), f.balance(t, CustodyAddress()))

	// The channel is queryable by the participant pair.
	qr := settle.NewQueryRouter()
	qr.RegisterAll(RegisterQuery)
	models, err := qr.Handler("/channels").Query(f.db, settle.PrefixQueryMod, id)
	require.NoError(t, err)
	require.Len(t, models, 1)
	models, err = qr.Handler("/channelauths").Query(f.db, settle.PrefixQueryMod, id)
	require.NoError(t, err)
	assert.Len(t, models, 2)
}

func TestEmergencyWithdrawHandler(t *testing.T) {
	f := newFixture(t)
	rt := newRouter(f)
	a, b := f.alice.Address(), f.bob.Address()

	_, err := f.ctrl.CreateChannel(atHeight(1), f.db, a, channelID(1), b, 4000)
	require.NoError(t, err)

	f.signedBy(f.owner)
	msg := &EmergencyWithdrawMsg{Caller: f.owner.Address()}
	res, err := rt.routes[msg.Path()].Deliver(atHeight(2), f.db, &settletest.Tx{Msg: msg})
	require.NoError(t, err)
	assert.Equal(t, "4000", string(res.Data))
	assert.Equal(t, uint64(4000), f.balance(t, f.owner.Address()))
}

func TestUpdateConfigurationHandler(t *testing.T) {
	f := newFixture(t)
	rt := newRouter(f)
	msg := &UpdateConfigurationMsg{Patch: &Configuration{MinDeposit: 5000}}
	h := rt.routes[msg.Path()]

	f.signedBy(f.alice)
	_, err := h.Deliver(atHeight(1), f.db, &settletest.Tx{Msg: msg})
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	f.signedBy(f.owner)
	_, err = h.Deliver(atHeight(1), f.db, &settletest.Tx{Msg: msg})
	require.NoError(t, err)

	var conf Configuration
	require.NoError(t, gconf.Load(f.db, ConfigurationName, &conf))
	assert.Equal(t, uint64(5000), conf.MinDeposit)
	assert.Equal(t, DefaultMaxBalance, conf.MaxBalance)
	assert.Equal(t, f.owner.Address(), conf.Owner)

	_, err = f.ctrl.CreateChannel(atHeight(2), f.db, f.alice.Address(), channelID(1), f.bob.Address(), 4999)
	assert.True(t, ErrInvalidInput.Is(err), "got %+v", err)
}

func TestUpdateConfigurationKeepsGenesisFields(t *testing.T) {
	cases := map[string]*Configuration{
		"owner":              {Owner: settletest.NewCondition().Address()},
		"max balance":        {MaxBalance: 5000, MinDeposit: 1},
		"dispute window":     {DisputeWindow: 1},
		"max dispute window": {MaxDisputeWindow: 2000},
	}

	for testName, patch := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			rt := newRouter(f)
			a, b := f.alice.Address(), f.bob.Address()

			_, err := f.ctrl.CreateChannel(atHeight(1), f.db, a, channelID(1), b, 10000)
			require.NoError(t, err)

			f.signedBy(f.owner)
			msg := &UpdateConfigurationMsg{Patch: patch}
			_, err = rt.routes[msg.Path()].Deliver(atHeight(2), f.db, &settletest.Tx{Msg: msg})
			require.True(t, ErrInvalidInput.Is(err), "got %+v", err)

			want := DefaultConfiguration(f.owner.Address())
			var conf Configuration
			require.NoError(t, gconf.Load(f.db, ConfigurationName, &conf))
			assert.Equal(t, want, conf)

			// Custody can still only be swept by the genesis owner.
			f.signedBy(f.alice)
			_, err = f.ctrl.EmergencyWithdraw(atHeight(3), f.db, a)
			assert.True(t, ErrNotAuthorized.Is(err), "got %+v", err)
			amount, err := f.ctrl.EmergencyWithdraw(atHeight(3), f.db, f.owner.Address())
			require.NoError(t, err)
			assert.Equal(t, uint64(10000), amount)
		})
	}
}
