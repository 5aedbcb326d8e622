package cash

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r settle.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ settle.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx) (settle.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return settle.CheckResult{}, err
	}
	return settle.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the tokens from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx) (settle.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return settle.DeliverResult{}, err
	}
	if err := h.control.MoveCoins(store, msg.Source, msg.Destination, msg.Amount); err != nil {
		return settle.DeliverResult{}, err
	}
	return settle.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx settle.Context, tx settle.Tx) (*SendMsg, error) {
	var msg *SendMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return msg, nil
}
