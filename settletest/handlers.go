package settletest

import "github.com/iov-one/settle"

// Handler is a mock implementation of the settle.Handler interface.
//
// Each method call is counted. Set CheckErr or DeliverErr to force an error
// response.
type Handler struct {
	checkCall   int
	CheckResult settle.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult settle.DeliverResult
	DeliverErr    error
}

var _ settle.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.CheckResult, error) {
	h.checkCall++
	return h.CheckResult, h.CheckErr
}

func (h *Handler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.DeliverResult, error) {
	h.deliverCall++
	return h.DeliverResult, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes given key/value pair to the store and then returns
// Err. Use it to test that a failing handler does not leave any state
// behind.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ settle.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return settle.CheckResult{}, err
	}
	return settle.CheckResult{}, h.Err
}

func (h WriteHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return settle.DeliverResult{}, err
	}
	return settle.DeliverResult{}, h.Err
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

func (h PanicHandler) Check(settle.Context, settle.KVStore, settle.Tx) (settle.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(settle.Context, settle.KVStore, settle.Tx) (settle.DeliverResult, error) {
	panic(h.Msg)
}
