package utils

import (
	"time"

	"github.com/iov-one/settle"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ settle.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Checker) (settle.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, msgPath(tx), resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Deliverer) (settle.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, msgPath(tx), resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx settle.Context, start time.Time, path, msg string, err error, lowPrio bool) {
	delta := time.Now().Sub(start)
	logger := settle.GetLogger(ctx).With("duration", delta/time.Microsecond, "path", path)

	if err != nil {
		logger = logger.With("err", err)
	}

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.

	if err != nil {
		logger.Error(msg)
	} else {
		if lowPrio {
			logger.Debug(msg)
		} else {
			logger.Info(msg)
		}
	}
}

// msgPath returns the path of the message carried by the transaction or
// "unknown" if the message cannot be extracted.
func msgPath(tx settle.Tx) string {
	if tx == nil {
		return "unknown"
	}
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return "unknown"
	}
	return msg.Path()
}
