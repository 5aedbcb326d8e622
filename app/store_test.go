package app

import (
	"context"
	"testing"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
	"github.com/iov-one/settle/settletest"
	"github.com/iov-one/settle/store/iavl"
	"github.com/iov-one/settle/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

func newTestApp(t testing.TB) BaseApp {
	t.Helper()

	qr := settle.NewQueryRouter()
	qr.RegisterAll(orm.RegisterQuery)

	r := NewRouter()
	r.Handle("test/write", settletest.WriteHandler{Key: []byte("written"), Value: []byte("yes")})
	r.Handle("test/fail", settletest.WriteHandler{Key: []byte("failed"), Value: []byte("yes"), Err: errors.ErrInvalidState})

	decoder := func(raw []byte) (settle.Tx, error) {
		if len(raw) == 0 {
			return nil, errors.Wrap(errors.ErrInvalidInput, "empty tx")
		}
		return &settletest.Tx{Msg: &settletest.Msg{RoutePath: string(raw)}}, nil
	}
	handler := ChainDecorators(
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(r)

	store := NewStoreApp("test-app", iavl.NewMemCommitStore(), qr, context.Background()).
		WithInit(keyInitializer{key: "genesis"})
	return NewBaseApp(store, decoder, handler, false)
}

func query(t testing.TB, a BaseApp, key string) []byte {
	t.Helper()
	res := a.Query(abci.RequestQuery{Path: "/", Data: []byte(key)})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var values ResultSet
	require.NoError(t, values.Unmarshal(res.Value))
	if len(values.Results) == 0 {
		return nil
	}
	return values.Results[0]
}

func TestBaseApp(t *testing.T) {
	a := newTestApp(t)

	a.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain",
		AppStateBytes: []byte(`{"genesis": "loaded"}`),
	})
	assert.Equal(t, "test-chain", a.GetChainID())

	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, ChainID: "test-chain"}})
	height, ok := settle.GetHeight(a.BlockContext())
	require.True(t, ok)
	assert.Equal(t, int64(1), height)

	check := a.CheckTx([]byte("test/write"))
	assert.Equal(t, uint32(0), check.Code, check.Log)

	deliver := a.DeliverTx([]byte("test/write"))
	assert.Equal(t, uint32(0), deliver.Code, deliver.Log)

	deliver = a.DeliverTx([]byte("test/fail"))
	code, _ := errors.ABCIInfo(errors.ErrInvalidState, false)
	assert.Equal(t, code, deliver.Code)

	deliver = a.DeliverTx([]byte("test/missing"))
	code, _ = errors.ABCIInfo(errors.ErrNotFound, false)
	assert.Equal(t, code, deliver.Code)

	deliver = a.DeliverTx(nil)
	code, _ = errors.ABCIInfo(errors.ErrInvalidInput, false)
	assert.Equal(t, code, deliver.Code)

	// Nothing is visible before commit.
	assert.Nil(t, query(t, a, "written"))

	a.EndBlock(abci.RequestEndBlock{})
	commit := a.Commit()
	assert.NotEmpty(t, commit.Data)

	assert.Equal(t, "yes", string(query(t, a, "written")))
	assert.Equal(t, "loaded", string(query(t, a, "genesis")))
	assert.Nil(t, query(t, a, "failed"))

	info := a.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)
}

func TestInitChainTwice(t *testing.T) {
	a := newTestApp(t)
	req := abci.RequestInitChain{
		ChainId:       "test-chain",
		AppStateBytes: []byte(`{}`),
	}
	a.InitChain(req)
	assert.Panics(t, func() { a.InitChain(req) })
}

func TestInitChainWithoutAppState(t *testing.T) {
	a := newTestApp(t)
	assert.Panics(t, func() {
		a.InitChain(abci.RequestInitChain{ChainId: "test-chain"})
	})
}

func TestQueryErrors(t *testing.T) {
	a := newTestApp(t)

	res := a.Query(abci.RequestQuery{Path: "/unknown", Data: []byte("key")})
	code, _ := errors.ABCIInfo(errors.ErrNotFound, false)
	assert.Equal(t, code, res.Code)

	res = a.Query(abci.RequestQuery{Path: "/", Data: []byte("key"), Height: 5})
	code, _ = errors.ABCIInfo(errors.ErrInvalidInput, false)
	assert.Equal(t, code, res.Code)
}

func TestSplitPath(t *testing.T) {
	path, mod := splitPath("/channels?prefix")
	assert.Equal(t, "/channels", path)
	assert.Equal(t, "prefix", mod)

	path, mod = splitPath("/channels")
	assert.Equal(t, "/channels", path)
	assert.Equal(t, "", mod)
}
