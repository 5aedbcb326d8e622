package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/settletest"
	"github.com/iov-one/settle/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	addr := settletest.NewCondition().Address()

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		want    uint64
	}{
		"no cash section": {
			genesis: `{}`,
		},
		"funded account": {
			genesis: `{"cash": [{"address": "` + addr.String() + `", "balance": 4321}]}`,
			want:    4321,
		},
		"invalid address": {
			genesis: `{"cash": [{"address": "hex:0123", "balance": 1}]}`,
			wantErr: errors.ErrInvalidInput,
		},
		"malformed balance": {
			genesis: `{"cash": [{"address": "` + addr.String() + `", "balance": "many"}]}`,
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts settle.Options
			require.NoError(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			if tc.wantErr != nil {
				return
			}

			got, err := NewController(NewBucket()).Balance(db, addr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
