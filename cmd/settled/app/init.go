package settled

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/x/cash"
	"github.com/iov-one/settle/x/paychan"
	"github.com/iov-one/settle/x/sigs"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
)

// DefaultOwnerBalance is the amount issued to the owner account in a
// generated genesis.
const DefaultOwnerBalance uint64 = 1000000000

// GenerateOwnerKey creates a new key pair. The private key is returned hex
// encoded so it can be stored by the operator.
func GenerateOwnerKey() (settle.Address, string, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, "", errors.Wrap(err, "generate key")
	}
	return sigs.PubkeyCondition(pub).Address(), hex.EncodeToString(priv), nil
}

// GenesisState is the app_state understood by Initializers.
type GenesisState struct {
	Cash []cash.GenesisAccount `json:"cash"`
	Conf struct {
		Paychan paychan.Configuration `json:"paychan"`
	} `json:"conf"`
}

// GenInitOptions produces a genesis with one funded owner account that is
// also the owner of the payment channel configuration.
//
// Optional arguments are the owner address and its balance. Without an
// address a new key is generated and its private part printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var owner settle.Address
	if len(args) > 0 {
		addr, err := settle.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "owner address")
		}
		owner = addr
	} else {
		addr, secret, err := GenerateOwnerKey()
		if err != nil {
			return nil, err
		}
		owner = addr
		fmt.Printf("Owner %s private key: %s\n", addr, secret)
	}

	balance := DefaultOwnerBalance
	if len(args) > 1 {
		b, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidAmount, "balance %q", args[1])
		}
		balance = b
	}

	var state GenesisState
	state.Cash = []cash.GenesisAccount{{Address: owner, Balance: balance}}
	state.Conf.Paychan = paychan.DefaultConfiguration(owner)
	if err := state.Conf.Paychan.Validate(); err != nil {
		return nil, err
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "serialize genesis")
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, reg prometheus.Registerer, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "settle.db")
	}

	application, err := Application("settled", Stack(reg), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}
