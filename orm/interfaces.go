package orm

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/x"
)

// Object is a keyed value stored in a bucket. The bucket prefixes the key
// before writing, the value is a protobuf message.
type Object interface {
	Keyed
	Cloneable
	// Validate is called before every save.
	x.Validater
	Value() settle.Persistent
}

// Keyed is anything that can identify itself.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable returns an empty object of the same kind, used as a target
// when loading from the store.
type Cloneable interface {
	Clone() Object
}

// CloneableData is the value of a SimpleObj. Wallets, channels and
// signature sequences implement it.
type CloneableData interface {
	x.Validater
	settle.Persistent
	Copy() CloneableData
}
