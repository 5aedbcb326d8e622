package orm

import (
	"reflect"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// Model is impelemented by any entity that can be stored using ModelBucket.
//
// This is the same interface as CloneableData. Using the right type names
// provides an easier to read API.
type Model interface {
	settle.Persistent
	Validate() error
	Copy() CloneableData
}

// ModelBucket is implemented by buckets that operates on Models rather than
// Objects.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrInvalidType
	// is returned.
	One(db settle.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists in the
	// database and ErrNotFound otherwise.
	Has(db settle.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database.
	Put(db settle.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db settle.KVStore, key []byte) error

	// Register registers this buckets content to be accessible via query
	// requests under the given name.
	Register(name string, r settle.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance storing models under the
// given bucket name. Example value is used to create new instances when
// loading data.
func NewModelBucket(name string, example Model) ModelBucket {
	b := NewBucket(name, NewSimpleObj(nil, example))
	return &modelBucket{
		b:     b,
		model: reflect.TypeOf(example),
	}
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

func (mb *modelBucket) Register(name string, r settle.QueryRouter) {
	mb.b.Register(name, r)
}

func (mb *modelBucket) One(db settle.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	res := obj.Value()

	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrInvalidType, "%T cannot be represented as %T", res, dest)
	}

	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (mb *modelBucket) Has(db settle.ReadOnlyKVStore, key []byte) error {
	if key == nil {
		// nil key is a special case that would cause the store API to panic.
		return errors.ErrNotFound
	}

	ok, err := mb.b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) Put(db settle.KVStore, key []byte, m Model) error {
	if tp := reflect.TypeOf(m); tp != mb.model {
		return errors.Wrapf(errors.ErrInvalidModel, "cannot store %T type in this bucket", m)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	obj := NewSimpleObj(key, m)
	if err := mb.b.Save(db, obj); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db settle.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

var _ ModelBucket = (*modelBucket)(nil)
