package app

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx, CheckTx, and BeginBlock
// handlers to the storage and query functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder settle.TxDecoder
	handler settle.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder settle.TxDecoder,
	handler settle.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return settle.DeliverTxError(err, b.debug)
	}

	// ignore error here, allow it to be logged
	ctx := settle.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", settle.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return settle.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return settle.CheckTxError(err, b.debug)
	}

	ctx := settle.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", settle.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return settle.CheckOrError(res, err, b.debug)
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx settle.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
