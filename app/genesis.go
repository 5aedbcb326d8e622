package app

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...settle.Initializer) settle.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []settle.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts settle.Options, kv settle.KVStore) error {
	for i, ini := range c.inits {
		if err := ini.FromGenesis(opts, kv); err != nil {
			return errors.Wrapf(err, "initializer %d (%T)", i, ini)
		}
	}
	return nil
}
