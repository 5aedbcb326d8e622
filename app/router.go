package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]settle.Handler
}

var _ settle.Registry = (*Router)(nil)
var _ settle.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]settle.Handler, 16),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h settle.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is
// registered, returns a handler that always fails with ErrNotFound.
func (r *Router) handler(path string) settle.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx) (settle.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return settle.CheckResult{}, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx) (settle.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return settle.DeliverResult{}, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg.Path()).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound error regardless of the
// arguments.
type notFoundHandler string

func (path notFoundHandler) Check(settle.Context, settle.KVStore, settle.Tx) (settle.CheckResult, error) {
	return settle.CheckResult{}, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(settle.Context, settle.KVStore, settle.Tx) (settle.DeliverResult, error) {
	return settle.DeliverResult{}, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
