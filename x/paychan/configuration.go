package paychan

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/gconf"
)

// ConfigurationName is the gconf package name the configuration is stored
// under.
const ConfigurationName = "paychan"

const (
	DefaultMaxBalance       uint64 = 1000000000000000
	DefaultMinDeposit       uint64 = 1000
	DefaultDisputeWindow    int64  = 144
	DefaultMaxDisputeWindow int64  = 1008
)

var _ gconf.OwnedConfig = (*Configuration)(nil)

// DefaultConfiguration returns the protocol defaults owned by given address.
func DefaultConfiguration(owner settle.Address) Configuration {
	return Configuration{
		Owner:            owner,
		MaxBalance:       DefaultMaxBalance,
		MinDeposit:       DefaultMinDeposit,
		DisputeWindow:    DefaultDisputeWindow,
		MaxDisputeWindow: DefaultMaxDisputeWindow,
	}
}

func (c *Configuration) GetOwner() settle.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if c.MaxBalance == 0 {
		errs = errors.AppendField(errs, "MaxBalance", errors.ErrEmpty)
	}
	if c.MinDeposit > c.MaxBalance {
		errs = errors.AppendField(errs, "MinDeposit",
			errors.Wrap(errors.ErrInvalidInput, "must not exceed max balance"))
	}
	if c.DisputeWindow <= 0 {
		errs = errors.AppendField(errs, "DisputeWindow",
			errors.Wrap(errors.ErrInvalidInput, "must be positive"))
	}
	if c.MaxDisputeWindow < c.DisputeWindow {
		errs = errors.AppendField(errs, "MaxDisputeWindow",
			errors.Wrap(errors.ErrInvalidInput, "must not be lower than dispute window"))
	}
	return errs
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, ConfigurationName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
