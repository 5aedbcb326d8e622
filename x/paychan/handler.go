package paychan

import (
	"fmt"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/gconf"
	"github.com/iov-one/settle/x"
	"github.com/iov-one/settle/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	createChannelCost     int64 = 300
	fundChannelCost       int64 = 100
	closeChannelCost      int64 = 200
	initiateCloseCost     int64 = 150
	resolveCloseCost      int64 = 200
	emergencyWithdrawCost int64 = 50
)

// ChannelTag is the tag key under which the channel id of a processed
// message is reported.
const ChannelTag = "channel"

// RegisterRoutes registers handlers for all messages of this extension.
// Protocol signatures are checked with a CallerVerifier.
func RegisterRoutes(r settle.Registry, auth x.Authenticator, cashctrl cash.Controller) {
	ctrl := NewController(cashctrl, NewCallerVerifier(auth))
	r.Handle(pathCreateChannelMsg, &createChannelHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathFundChannelMsg, &fundChannelHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathCloseChannelMsg, &closeChannelHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathInitiateCloseMsg, &initiateCloseHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathResolveCloseMsg, &resolveCloseHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathEmergencyWithdrawMsg, &emergencyWithdrawHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(ConfigurationName, &Configuration{}, auth))
}

type createChannelHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ settle.Handler = (*createChannelHandler)(nil)

func (h *createChannelHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.CheckResult, error) {
	var res settle.CheckResult
	if _, err := h.validate(ctx, tx); err != nil {
		return res, err
	}
	res.GasAllocated += createChannelCost
	return res, nil
}

func (h *createChannelHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.DeliverResult, error) {
	var res settle.DeliverResult
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return res, err
	}
	ch, err := h.ctrl.CreateChannel(ctx, db, msg.Caller, msg.ChannelID, msg.ParticipantB, msg.Deposit)
	if err != nil {
		return res, err
	}
	return channelResult(ch)
}

func (h *createChannelHandler) validate(ctx settle.Context, tx settle.Tx) (*CreateChannelMsg, error) {
	var msg *CreateChannelMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireCaller(ctx, h.auth, msg.Caller); err != nil {
		return nil, err
	}
	return msg, nil
}

type fundChannelHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ settle.Handler = (*fundChannelHandler)(nil)

func (h *fundChannelHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.CheckResult, error) {
	var res settle.CheckResult
	if _, err := h.validate(ctx, tx); err != nil {
		return res, err
	}
	res.GasAllocated += fundChannelCost
	return res, nil
}

func (h *fundChannelHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.DeliverResult, error) {
	var res settle.DeliverResult
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return res, err
	}
	ch, err := h.ctrl.FundChannel(ctx, db, msg.Caller, msg.ChannelID, msg.ParticipantB, msg.Amount)
	if err != nil {
		return res, err
	}
	return channelResult(ch)
}

func (h *fundChannelHandler) validate(ctx settle.Context, tx settle.Tx) (*FundChannelMsg, error) {
	var msg *FundChannelMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireCaller(ctx, h.auth, msg.Caller); err != nil {
		return nil, err
	}
	return msg, nil
}

type closeChannelHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ settle.Handler = (*closeChannelHandler)(nil)

func (h *closeChannelHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.CheckResult, error) {
	var res settle.CheckResult
	if _, err := h.validate(ctx, tx); err != nil {
		return res, err
	}
	res.GasAllocated += closeChannelCost
	return res, nil
}

func (h *closeChannelHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.DeliverResult, error) {
	var res settle.DeliverResult
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return res, err
	}
	ch, err := h.ctrl.CloseCooperative(ctx, db, msg.Caller, msg.ChannelID, msg.ParticipantB,
		msg.BalanceA, msg.BalanceB, msg.SignatureA, msg.SignatureB)
	if err != nil {
		return res, err
	}
	return channelResult(ch)
}

func (h *closeChannelHandler) validate(ctx settle.Context, tx settle.Tx) (*CloseChannelMsg, error) {
	var msg *CloseChannelMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireCaller(ctx, h.auth, msg.Caller); err != nil {
		return nil, err
	}
	return msg, nil
}

type initiateCloseHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ settle.Handler = (*initiateCloseHandler)(nil)

func (h *initiateCloseHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.CheckResult, error) {
	var res settle.CheckResult
	if _, err := h.validate(ctx, tx); err != nil {
		return res, err
	}
	res.GasAllocated += initiateCloseCost
	return res, nil
}

func (h *initiateCloseHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.DeliverResult, error) {
	var res settle.DeliverResult
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return res, err
	}
	ch, err := h.ctrl.InitiateUnilateralClose(ctx, db, msg.Caller, msg.ChannelID, msg.ParticipantB,
		msg.BalanceA, msg.BalanceB, msg.Signature)
	if err != nil {
		return res, err
	}
	return channelResult(ch)
}

func (h *initiateCloseHandler) validate(ctx settle.Context, tx settle.Tx) (*InitiateCloseMsg, error) {
	var msg *InitiateCloseMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireCaller(ctx, h.auth, msg.Caller); err != nil {
		return nil, err
	}
	return msg, nil
}

type resolveCloseHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ settle.Handler = (*resolveCloseHandler)(nil)

func (h *resolveCloseHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.CheckResult, error) {
	var res settle.CheckResult
	if _, err := h.validate(ctx, tx); err != nil {
		return res, err
	}
	res.GasAllocated += resolveCloseCost
	return res, nil
}

func (h *resolveCloseHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.DeliverResult, error) {
	var res settle.DeliverResult
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return res, err
	}
	ch, err := h.ctrl.ResolveUnilateralClose(ctx, db, msg.Caller, msg.ChannelID, msg.ParticipantB)
	if err != nil {
		return res, err
	}
	return channelResult(ch)
}

func (h *resolveCloseHandler) validate(ctx settle.Context, tx settle.Tx) (*ResolveCloseMsg, error) {
	var msg *ResolveCloseMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireCaller(ctx, h.auth, msg.Caller); err != nil {
		return nil, err
	}
	return msg, nil
}

type emergencyWithdrawHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ settle.Handler = (*emergencyWithdrawHandler)(nil)

func (h *emergencyWithdrawHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.CheckResult, error) {
	var res settle.CheckResult
	if _, err := h.validate(ctx, tx); err != nil {
		return res, err
	}
	res.GasAllocated += emergencyWithdrawCost
	return res, nil
}

// Deliver returns the withdrawn amount as a decimal string in the result
// data.
func (h *emergencyWithdrawHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.DeliverResult, error) {
	var res settle.DeliverResult
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return res, err
	}
	amount, err := h.ctrl.EmergencyWithdraw(ctx, db, msg.Caller)
	if err != nil {
		return res, err
	}
	res.Data = []byte(fmt.Sprint(amount))
	return res, nil
}

func (h *emergencyWithdrawHandler) validate(ctx settle.Context, tx settle.Tx) (*EmergencyWithdrawMsg, error) {
	var msg *EmergencyWithdrawMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireCaller(ctx, h.auth, msg.Caller); err != nil {
		return nil, err
	}
	return msg, nil
}

// requireCaller ensures the transaction was signed by the declared caller.
func requireCaller(ctx settle.Context, auth x.Authenticator, caller settle.Address) error {
	if !auth.HasAddress(ctx, caller) {
		return errors.Wrap(errors.ErrUnauthorized, "caller signature missing")
	}
	return nil
}

// channelResult returns the serialized channel state as the result data and
// tags the result with the channel id.
func channelResult(ch *Channel) (settle.DeliverResult, error) {
	var res settle.DeliverResult
	raw, err := ch.Marshal()
	if err != nil {
		return res, errors.Wrap(err, "marshal channel")
	}
	res.Data = raw
	res.Tags = append(res.Tags, common.KVPair{
		Key:   []byte(ChannelTag),
		Value: []byte(fmt.Sprintf("%X", ch.ChannelID)),
	})
	return res, nil
}
