package paychan

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/gconf"
)

// Initializer fulfils the InitStater interface to load the configuration
// from genesis.
type Initializer struct{}

var _ settle.Initializer = (*Initializer)(nil)

// FromGenesis reads "conf": {"paychan": {...}} from the genesis file.
func (*Initializer) FromGenesis(opts settle.Options, db settle.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, ConfigurationName, &conf)
}
