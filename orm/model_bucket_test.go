package orm

import (
	"testing"

	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/settletest/assert"
	"github.com/iov-one/settle/store"
)

func TestModelBucket(t *testing.T) {
	db := store.MemStore()

	b := NewModelBucket("cnts", &Counter{})

	if err := b.Put(db, []byte("c1"), &Counter{Count: 1}); err != nil {
		t.Fatalf("cannot save counter instance: %s", err)
	}

	var c1 Counter
	if err := b.One(db, []byte("c1"), &c1); err != nil {
		t.Fatalf("cannot get c1 counter: %s", err)
	}
	if c1.Count != 1 {
		t.Fatalf("unexpected counter state: %d", c1.Count)
	}

	assert.Nil(t, b.Has(db, []byte("c1")))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("unknown")))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, nil))

	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("cannot delete c1 counter: %s", err)
	}
	if err := b.Delete(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error when deleting unexisting instance: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model get: %s", err)
	}
}

type otherModel struct {
	Counter
}

func (m *otherModel) Copy() CloneableData {
	return &otherModel{Counter: m.Counter}
}

func TestModelBucketPutWrongModelType(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	err := b.Put(db, []byte("a"), &otherModel{Counter: Counter{Count: 1}})
	assert.IsErr(t, errors.ErrInvalidModel, err)
}

func TestModelBucketPutInvalidModel(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	err := b.Put(db, []byte("a"), &Counter{Count: -4})
	assert.IsErr(t, errors.ErrInvalidState, err)
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("a")))
}

func TestModelBucketOneWrongDestination(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})
	assert.Nil(t, b.Put(db, []byte("a"), &Counter{Count: 3}))

	var dest otherModel
	err := b.One(db, []byte("a"), &dest)
	assert.IsErr(t, errors.ErrInvalidType, err)
}
