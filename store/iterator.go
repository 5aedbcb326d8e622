package store

import (
	"bytes"

	"github.com/google/btree"
)

// collectRange returns all btree items within [start, end) in ascending
// order. A nil start or end means the range is open on that side.
//
// Items are copied out of the tree so that the returned iterator is not
// affected by writes to the cache while iterating.
func collectRange(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	collect := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return items
}

// cacheIterator merges the cached items with the iterator of the parent
// store. Cached items take precedence over the parent values with the same
// key and deleted items hide them.
type cacheIterator struct {
	parent  Iterator
	items   []btree.Item
	reverse bool

	valid bool
	key   []byte
	value []byte
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(parent Iterator, items []btree.Item, reverse bool) (*cacheIterator, error) {
	it := &cacheIterator{
		parent:  parent,
		items:   items,
		reverse: reverse,
	}
	if err := it.advance(); err != nil {
		parent.Close()
		return nil, err
	}
	return it, nil
}

// before returns true if key a comes before key b in the order of
// iteration.
func (c *cacheIterator) before(a, b []byte) bool {
	if c.reverse {
		return bytes.Compare(a, b) > 0
	}
	return bytes.Compare(a, b) < 0
}

// advance moves the cursor to the next visible entry.
func (c *cacheIterator) advance() error {
	for {
		hasParent := c.parent.Valid()
		hasCache := len(c.items) > 0

		if !hasParent && !hasCache {
			c.valid, c.key, c.value = false, nil, nil
			return nil
		}

		if hasCache && (!hasParent || !c.before(c.parent.Key(), c.items[0].(keyer).Key())) {
			item := c.items[0]
			c.items = c.items[1:]
			// The cached value overwrites the parent one.
			if hasParent && bytes.Equal(c.parent.Key(), item.(keyer).Key()) {
				if err := c.parent.Next(); err != nil {
					return err
				}
			}
			if s, ok := item.(setItem); ok {
				c.valid, c.key, c.value = true, s.key, s.value
				return nil
			}
			// deleted
			continue
		}

		c.valid, c.key, c.value = true, c.parent.Key(), c.parent.Value()
		return c.parent.Next()
	}
}

func (c *cacheIterator) Valid() bool {
	return c.valid
}

func (c *cacheIterator) Next() error {
	if !c.valid {
		panic("Passed end of iterator")
	}
	return c.advance()
}

func (c *cacheIterator) Key() []byte {
	if !c.valid {
		panic("Passed end of iterator")
	}
	return c.key
}

func (c *cacheIterator) Value() []byte {
	if !c.valid {
		panic("Passed end of iterator")
	}
	return c.value
}

func (c *cacheIterator) Close() {
	c.parent.Close()
	c.items = nil
}
