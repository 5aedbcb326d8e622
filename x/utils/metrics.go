package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and measures
// their processing time. Both metrics are labeled with the message path and
// the processing phase (check or deliver). The counter is additionally
// labeled with the ABCI result code.
type Metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ settle.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator and registers its collectors using
// given registerer. It panics if the collectors cannot be registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "settle",
			Name:      "tx_total",
			Help:      "Number of processed transactions.",
		}, []string{"path", "phase", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "settle",
			Name:      "tx_duration_seconds",
			Help:      "Transaction processing time.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "phase"}),
	}
	reg.MustRegister(m.total, m.duration)
	return m
}

// Check measures the check phase.
func (m *Metrics) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Checker) (settle.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe(msgPath(tx), "check", start, err)
	return res, err
}

// Deliver measures the deliver phase.
func (m *Metrics) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Deliverer) (settle.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe(msgPath(tx), "deliver", start, err)
	return res, err
}

func (m *Metrics) observe(path, phase string, start time.Time, err error) {
	code, _ := errors.ABCIInfo(err, false)
	m.total.WithLabelValues(path, phase, strconv.FormatUint(uint64(code), 10)).Inc()
	m.duration.WithLabelValues(path, phase).Observe(time.Since(start).Seconds())
}
