package orm

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr settle.Iterator) ([]settle.Model, error) {
	defer itr.Close()

	var res []settle.Model
	for itr.Valid() {
		res = append(res, settle.Pair(itr.Key(), itr.Value()))
		if err := itr.Next(); err != nil {
			return nil, errors.Wrap(err, "iterator")
		}
	}
	return res, nil
}

// queryPrefix returns all key/value pairs that start with the prefix.
func queryPrefix(db settle.ReadOnlyKVStore, prefix []byte) ([]settle.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// prefixRange turns a prefix into (start, end) to create
// and iterator
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed?....
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}

// RegisterQuery exposes the raw store under "/" so any key can be read
// without knowing which bucket owns it.
func RegisterQuery(qr settle.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

var _ settle.QueryHandler = rawQuery{}

func (rawQuery) Query(db settle.ReadOnlyKVStore, mod string, data []byte) ([]settle.Model, error) {
	switch mod {
	case settle.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []settle.Model{settle.Pair(data, value)}, nil
	case settle.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(ErrInvalidQuery, "not implemented: %s", mod)
	}
}
