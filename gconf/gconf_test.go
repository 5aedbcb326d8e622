package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/settletest"
	"github.com/iov-one/settle/settletest/assert"
	"github.com/iov-one/settle/store"
)

func TestSaveLoad(t *testing.T) {
	owner := settletest.NewCondition().Address()

	cases := map[string]struct {
		Conf        *myconfig
		WantSaveErr *errors.Error
	}{
		"valid configuration": {
			Conf: &myconfig{Owner: owner, Num: 852151421, Str: "foobar"},
		},
		"invalid address cannot be saved": {
			Conf:        &myconfig{Owner: settle.Address("too short"), Num: 1},
			WantSaveErr: errors.ErrInvalidInput,
		},
		"negative number cannot be saved": {
			Conf:        &myconfig{Owner: owner, Num: -1},
			WantSaveErr: errors.ErrInvalidState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				var got myconfig
				assert.IsErr(t, errors.ErrNotFound, Load(db, "mypkg", &got))
				return
			}

			var got myconfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Conf, &got)

			// Each package has its own configuration.
			assert.IsErr(t, errors.ErrNotFound, Load(db, "otherpkg", &got))
		})
	}
}

func TestInitConfig(t *testing.T) {
	owner := settletest.NewCondition().Address()

	cases := map[string]struct {
		Genesis string
		WantErr *errors.Error
		Want    *myconfig
	}{
		"configuration is loaded": {
			Genesis: `{"conf": {"mypkg": {"owner": "` + owner.String() + `", "num": 21, "str": "x"}}}`,
			Want:    &myconfig{Owner: owner, Num: 21, Str: "x"},
		},
		"missing package configuration": {
			Genesis: `{"conf": {"otherpkg": {"num": 1}}}`,
			WantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			Genesis: `{"conf": {"mypkg": {"owner": "` + owner.String() + `", "num": -4}}}`,
			WantErr: errors.ErrInvalidState,
		},
		"malformed json": {
			Genesis: `{"conf": {"mypkg": {"num": "not a number"}}}`,
			WantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts settle.Options
			if err := json.Unmarshal([]byte(tc.Genesis), &opts); err != nil {
				t.Fatalf("cannot unmarshal genesis: %s", err)
			}

			db := store.MemStore()
			var conf myconfig
			if err := InitConfig(db, opts, "mypkg", &conf); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.Want != nil {
				var got myconfig
				assert.Nil(t, Load(db, "mypkg", &got))
				assert.Equal(t, tc.Want, &got)
			}
		})
	}
}

type myconfig struct {
	Owner settle.Address `json:"owner"`
	Num   int64          `json:"num"`
	Str   string         `json:"str"`
}

func (c *myconfig) GetOwner() settle.Address   { return c.Owner }
func (c *myconfig) Marshal() ([]byte, error)   { return json.Marshal(c) }
func (c *myconfig) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

func (c *myconfig) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if c.Num < 0 {
		return errors.Wrap(errors.ErrInvalidState, "negative num")
	}
	return nil
}

type myconfigMsg struct {
	Patch *myconfig
}

var _ settle.Msg = (*myconfigMsg)(nil)

func (msg *myconfigMsg) Marshal() ([]byte, error)   { return json.Marshal(msg) }
func (msg *myconfigMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, msg) }
func (msg *myconfigMsg) Path() string               { return "myconfig" }

func (msg *myconfigMsg) Validate() error {
	if msg.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return nil
}
