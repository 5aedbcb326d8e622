package iavl

import (
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree *iavl.MutableTree
	// numHistory is the number of versions kept on disk. Zero keeps all.
	numHistory int64
}

var _ store.CommitKVStore = CommitStore{}

// DefaultCacheSize is the number of nodes kept in memory by the tree.
const DefaultCacheSize = 10000

// NewCommitStore creates a new store with disk backing
func NewCommitStore(path, name string) CommitStore {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, path)
	return NewCommitStoreFromDB(db)
}

// NewMemCommitStore creates a new store that keeps all the data in memory.
// Useful for tests.
func NewMemCommitStore() CommitStore {
	return NewCommitStoreFromDB(dbm.NewMemDB())
}

// NewCommitStoreFromDB creates a store on top of given database.
func NewCommitStoreFromDB(db dbm.DB) CommitStore {
	tree := iavl.NewMutableTree(db, DefaultCacheSize)
	return CommitStore{tree: tree}
}

// WithHistory returns a store that keeps only the latest n versions.
func (s CommitStore) WithHistory(n int64) CommitStore {
	s.numHistory = n
	return s
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist. Panics on nil key.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	version := s.tree.Version()
	_, val := s.tree.GetVersioned(key, version)
	return val, nil
}

// Commit the next version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(err, "cannot save version")
	}

	if s.numHistory > 0 {
		toDelete := version - s.numHistory
		if toDelete > 0 && s.tree.VersionExists(toDelete) {
			if err := s.tree.DeleteVersion(toDelete); err != nil {
				return store.CommitID{}, errors.Wrapf(err, "cannot delete version %d", toDelete)
			}
		}
	}

	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return errors.Wrap(err, "cannot load tree")
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap gives us a savepoint to perform actions
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Adapter returns a wrapper around the working tree. All changes are kept in
// memory until Commit is called.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return adapter{tree: s.tree}
}

// adapter converts the working tree into a CacheableKVStore.
type adapter struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = adapter{}

// Get returns nil iff key doesn't exist. Panics on nil key.
func (a adapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

// Has checks if a key exists. Panics on nil key.
func (a adapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

// Set adds a new value
func (a adapter) Set(key, value []byte) error {
	a.tree.Set(key, value)
	return nil
}

// Delete removes from the tree
func (a adapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that can write multiple ops atomically.
// All writes are in memory until the tree is saved, so there is no need
// for anything more than a non atomic batch.
func (a adapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

// CacheWrap wraps us once again, with btree
func (a adapter) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(a, a.NewBatch(), nil)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
// Start must be less than end, or the Iterator is invalid.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
func (a adapter) Iterator(start, end []byte) (store.Iterator, error) {
	return a.iterate(start, end, true), nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
func (a adapter) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return a.iterate(start, end, false), nil
}

func (a adapter) iterate(start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	a.tree.IterateRange(start, end, ascending, func(key []byte, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		// false means continue
		return false
	})
	return store.NewSliceIterator(res)
}
