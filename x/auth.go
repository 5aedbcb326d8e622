package x

import (
	"github.com/iov-one/settle"
)

// Authenticator extracts the signers of the current transaction from the
// context. Handlers receive it in their constructor so the channel and
// ledger extensions do not depend on x/sigs directly.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled
	GetConditions(settle.Context) []settle.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(settle.Context, settle.Address) bool
}

// MultiAuth chains together many Authenticators into one. The daemon
// builds its authenticator with it.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx settle.Context) []settle.Condition {
	var res []settle.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx settle.Context, addr settle.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}
