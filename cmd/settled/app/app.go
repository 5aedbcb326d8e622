/*
Package settled wires the payment channel extension together with the
cash ledger and signature authentication into an ABCI application.
*/
package settled

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/app"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
	"github.com/iov-one/settle/store/iavl"
	"github.com/iov-one/settle/x"
	"github.com/iov-one/settle/x/cash"
	"github.com/iov-one/settle/x/paychan"
	"github.com/iov-one/settle/x/sigs"
	"github.com/iov-one/settle/x/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// CashControl returns a controller for cash functions
func CashControl() cash.Controller {
	return cash.NewController(cash.NewBucket())
}

// Chain returns a chain of decorators, to handle authentication,
// metrics, logging, and recovery
func Chain(reg prometheus.Registerer) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewMetrics(reg),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce even if the
		// message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to cash and payment channel
// handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	ctrl := CashControl()
	cash.RegisterRoutes(r, authFn, ctrl)
	paychan.RegisterRoutes(r, authFn, ctrl)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/auth", "/channels", "/channelauths"
// and "/"
func QueryRouter() settle.QueryRouter {
	r := settle.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		paychan.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() settle.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		&paychan.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(reg prometheus.Registerer) settle.Handler {
	authFn := Authenticator()
	return Chain(reg).WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. An empty dbPath keeps all state in memory.
func Application(name string, h settle.Handler,
	tx settle.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (settle.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
