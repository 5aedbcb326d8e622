package settle_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

func TestCreateErrorResult(t *testing.T) {
	cases := map[string]struct {
		err   error
		debug bool
		log   string
		code  uint32
	}{
		"stdlib error is redacted": {
			err:  fmt.Errorf("base"),
			log:  "internal error",
			code: 1,
		},
		"stdlib error is visible in debug mode": {
			err:   fmt.Errorf("base"),
			debug: true,
			log:   "base",
			code:  1,
		},
		"registered error": {
			err:  errors.Wrap(errors.ErrUnauthorized, "nonce"),
			log:  "nonce: unauthorized",
			code: errors.ErrUnauthorized.ABCICode(),
		},
		"panic is redacted": {
			err:  errors.Wrap(fmt.Errorf("database is gone"), "boom"),
			log:  "internal error",
			code: 1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dres := settle.DeliverTxError(tc.err, tc.debug)
			assert.True(t, dres.IsErr())
			assert.True(t, strings.HasPrefix(dres.Log, "cannot deliver tx: "))
			assert.True(t, strings.HasSuffix(dres.Log, tc.log))
			assert.Equal(t, tc.code, dres.Code)

			cres := settle.CheckTxError(tc.err, tc.debug)
			assert.True(t, cres.IsErr())
			assert.True(t, strings.HasPrefix(cres.Log, "cannot check tx: "))
			assert.True(t, strings.HasSuffix(cres.Log, tc.log))
			assert.Equal(t, tc.code, cres.Code)
		})
	}
}

func TestCreateResults(t *testing.T) {
	d, msg := []byte{1, 3, 4}, "got it"
	dres := settle.DeliverResult{Data: d, Log: msg}
	ad := dres.ToABCI()
	assert.EqualValues(t, d, ad.Data)
	assert.Equal(t, msg, ad.Log)
	assert.Empty(t, ad.Tags)
	assert.False(t, ad.IsErr())

	c := settle.NewCheck(12, "check")
	ac := c.ToABCI()
	assert.Equal(t, int64(12), ac.GasWanted)
	assert.Equal(t, "check", ac.Log)
	assert.False(t, ac.IsErr())

	ad = settle.DeliverOrError(settle.DeliverResult{}, errors.ErrNotFound, false)
	assert.Equal(t, errors.ErrNotFound.ABCICode(), ad.Code)
}
