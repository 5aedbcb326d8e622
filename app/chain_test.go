package app

import (
	"context"
	"testing"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/settletest"
	"github.com/iov-one/settle/x/utils"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	c1 := &settletest.Decorator{}
	c2 := &settletest.Decorator{}
	c3 := &settletest.Decorator{}
	h := &settletest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		c2,
		nil,
		c3,
	).WithHandler(h)

	ctx := context.Background()
	tx := &settletest.Tx{Msg: &settletest.Msg{RoutePath: "test/chain"}}

	_, err := stack.Check(ctx, nil, tx)
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// A failing decorator stops the chain.
	c2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 3, c1.CallCount())
	assert.Equal(t, 3, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainRecoversPanics(t *testing.T) {
	stack := ChainDecorators(
		utils.NewRecovery(),
	).WithHandler(settletest.PanicHandler{Msg: "boom"})

	tx := &settletest.Tx{Msg: &settletest.Msg{RoutePath: "test/chain"}}
	_, err := stack.Deliver(context.Background(), nil, tx)
	assert.True(t, errors.ErrPanic.Is(err), "got %+v", err)
}

func TestChainAppend(t *testing.T) {
	c1 := &settletest.Decorator{}
	c2 := &settletest.Decorator{}
	base := ChainDecorators(c1)
	withMore := base.Chain(c2)

	h := &settletest.Handler{}
	_, err := base.WithHandler(h).Check(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, c1.CallCount())
	assert.Equal(t, 0, c2.CallCount())

	var stack settle.Handler = withMore.WithHandler(h)
	_, err = stack.Check(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 1, c2.CallCount())
}
