package settle_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := settle.Address(b)

		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", []byte(b)))
		So(settle.Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("test hexademical condition printing", t, func() {
		cond := settle.NewCondition("12", "32", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldEqual, "Invalid Condition: "+fmt.Sprintf("%X", []byte(cond)))

		cond = settle.NewCondition("paychan", "escrow", []byte{0xAB})
		So(cond.String(), ShouldEqual, "paychan/escrow/AB")
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	raw := []byte("twenty-bytes-address")
	hexRaw := fmt.Sprintf("%x", raw)
	bech, err := settle.Address(raw).Bech32("settle")
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr settle.Address
	}{
		"default decoding": {
			json:     `"` + hexRaw + `"`,
			wantAddr: settle.Address(raw),
		},
		"hex decoding": {
			json:     `"hex:` + hexRaw + `"`,
			wantAddr: settle.Address(raw),
		},
		"hex of invalid length": {
			json:    `"hex:6865782d61646472"`,
			wantErr: errors.ErrInvalidInput,
		},
		"bech32 decoding": {
			json:     `"bech32:` + bech + `"`,
			wantAddr: settle.Address(raw),
		},
		"invalid bech32": {
			json:    `"bech32:settle1xxx"`,
			wantErr: errors.ErrInvalidInput,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: settle.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInvalidInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInvalidInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrInvalidType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a settle.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestAddressMarshalJSONRoundtrip(t *testing.T) {
	addr := settle.NewCondition("paychan", "escrow", []byte("custody")).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got settle.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
	assert.NoError(t, got.Validate())
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json          string
		wantErr       *errors.Error
		wantCondition settle.Condition
	}{
		"default decoding": {
			json:          `"foo/bar/636f6e646974696f6e64617461"`,
			wantCondition: settle.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInvalidInput,
		},
		"invalid condition data": {
			json:    `"foo/bar/zzzzz"`,
			wantErr: errors.ErrInvalidInput,
		},
		"zero address": {
			json:          `""`,
			wantCondition: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got settle.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !got.Equals(tc.wantCondition) {
				t.Fatalf("got condition: %v", got)
			}
		})
	}
}

func TestConditionParse(t *testing.T) {
	cond := settle.NewCondition("sigs", "ed25519", []byte{1, 2, 3})
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.Equal(t, settle.AddressLength, len(cond.Address()))

	_, _, _, err = settle.Condition("no-slashes").Parse()
	assert.True(t, errors.ErrInvalidInput.Is(err))
	assert.True(t, errors.ErrInvalidInput.Is(settle.Condition("a/b/c").Validate()))
}
