package settle

import (
	"fmt"
)

// Query modifiers understood by the registered query handlers. A key query
// returns at most one model, a prefix query returns every model whose key
// starts with the query data.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key and value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers ABCI queries for a single path.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the query handlers of an extension to a router.
type QueryRegister func(QueryRouter)

// QueryRouter dispatches ABCI queries by path, for example "/channels" or
// "/wallets".
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter returns a router without any routes.
func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls each register function with this router.
func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, register := range qr {
		register(r)
	}
}

// Register binds a handler to given path. Registering a path twice is a
// programming error and panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for given path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
