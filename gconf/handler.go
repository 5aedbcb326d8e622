package gconf

import (
	"reflect"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/x"
)

// OwnedConfig must have an Owner field. A configuration update message must
// be signed by an owner in order to be authorized to apply the change.
type OwnedConfig interface {
	Unmarshaler
	ValidMarshaler
	GetOwner() settle.Address
}

// UpdateConfigurationHandler applies a configuration patch carried by a
// message. The message must have a "Patch" field of the same type as the
// configuration.
type UpdateConfigurationHandler struct {
	pkg string
	// We require this type to load the data.
	config OwnedConfig
	auth   x.Authenticator
}

var _ settle.Handler = (*UpdateConfigurationHandler)(nil)

// NewUpdateConfigurationHandler returns a message handler that process
// configuration patch message.
//
// To pass authentication step, each message must be signed by the current
// configuration owner. A configuration that does not exist cannot be
// updated, it must be created via genesis.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
		auth:   auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx) (settle.CheckResult, error) {
	if err := h.applyTx(ctx, store, tx); err != nil {
		return settle.CheckResult{}, err
	}
	return settle.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx) (settle.DeliverResult, error) {
	if err := h.applyTx(ctx, store, tx); err != nil {
		return settle.DeliverResult{}, err
	}
	return settle.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx settle.Context, store settle.KVStore, tx settle.Tx) error {
	if err := Load(store, h.pkg, h.config); err != nil {
		return errors.Wrap(err, "load current configuration")
	}

	// Configuration owner must sign the transaction in order to
	// authenticate the change.
	owner := h.config.GetOwner()
	if owner == nil {
		return errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	if !h.auth.HasAddress(ctx, owner) {
		return errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
	}

	payload, err := patchPayload(tx)
	if err != nil {
		return errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(h.config, payload); err != nil {
		return errors.Wrap(err, "cannot patch config with message payload")
	}

	if err := Save(store, h.pkg, h.config); err != nil {
		return errors.Wrap(err, "cannot save updated config")
	}
	return nil
}

func patch(config OwnedConfig, payload OwnedConfig) error {
	pType := reflect.TypeOf(payload)
	cType := reflect.TypeOf(config)
	if pType != cType {
		return errors.Wrapf(errors.ErrInvalidMsg, "config in message is %s, not %s", pType, cType)
	}

	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()

	for i := 0; i < cval.NumField(); i++ {
		got := pval.Field(i)

		// Zero values do not update the original configuration.
		if isZero(got) {
			continue
		}

		cval.Field(i).Set(got)
	}

	return nil
}

// isZero returns true if given value represents a zero value of a given type.
func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload expects the transaction to have a message with "Patch" field of
// the same type as the configuration. Content of this field is extracted and
// returned.
func patchPayload(tx settle.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid message container value: %T", msg)
	}

	field := pval.Elem().FieldByName("Patch")
	if !field.IsValid() || field.Kind() != reflect.Ptr {
		return nil, errors.Wrapf(errors.ErrInvalidMsg, `%T has no "Patch" pointer field`, msg)
	}
	if field.IsNil() {
		return nil, errors.Wrap(errors.ErrEmpty, `"Patch" field is required`)
	}
	payload, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Wrap(errors.ErrInvalidInput, `"Patch" field is of a wrong type`)
	}
	return payload, nil
}
