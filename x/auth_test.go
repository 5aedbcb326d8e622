package x

import (
	"context"
	"testing"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/settletest"
	"github.com/iov-one/settle/settletest/assert"
)

func TestAuth(t *testing.T) {
	a := settletest.NewCondition()
	b := settletest.NewCondition()
	c := settletest.NewCondition()

	ctx1 := &settletest.CtxAuth{Key: "foo"}
	ctx2 := &settletest.CtxAuth{Key: "bar"}

	cases := map[string]struct {
		ctx          settle.Context
		auth         Authenticator
		wantInCtx    settle.Condition
		wantNotInCtx settle.Condition
		wantAll      []settle.Condition
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &settletest.Auth{},
			wantNotInCtx: b,
		},
		"signer a": {
			ctx:          context.Background(),
			auth:         &settletest.Auth{Signer: a},
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []settle.Condition{a},
		},
		"signer b": {
			ctx: context.Background(),
			auth: ChainAuth(
				&settletest.Auth{Signer: b},
				&settletest.Auth{Signer: a}),
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []settle.Condition{b, a},
		},
		"ctxAuth checks what is set by same key": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx1,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []settle.Condition{a, b},
		},
		"ctxAuth with different key sees nothing": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx2,
			wantNotInCtx: a,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if tc.wantInCtx != nil && !tc.auth.HasAddress(tc.ctx, tc.wantInCtx.Address()) {
				t.Fatal("condition address that was expected in context not found")
			}

			if tc.wantNotInCtx != nil && tc.auth.HasAddress(tc.ctx, tc.wantNotInCtx.Address()) {
				t.Fatal("condition address that was expected not to be in context found")
			}

			all := tc.auth.GetConditions(tc.ctx)
			assert.Equal(t, tc.wantAll, all)

			for _, c := range all {
				if !tc.auth.HasAddress(tc.ctx, c.Address()) {
					t.Fatalf("condition %s not recognized", c)
				}
			}
		})
	}
}
