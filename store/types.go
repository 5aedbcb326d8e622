//nolint
package store

import "github.com/iov-one/settle"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = settle.ReadOnlyKVStore
type SetDeleter = settle.SetDeleter
type KVStore = settle.KVStore
type Batch = settle.Batch
type Iterator = settle.Iterator
type CacheableKVStore = settle.CacheableKVStore
type KVCacheWrap = settle.KVCacheWrap
type CommitKVStore = settle.CommitKVStore
type CommitID = settle.CommitID
type Model = settle.Model
