package utils

import (
	"context"
	"testing"

	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/settletest"
	"github.com/iov-one/settle/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	ctx := context.Background()
	db := store.MemStore()
	tx := &settletest.Tx{Msg: &settletest.Msg{RoutePath: "paychan/create"}}

	_, err := m.Check(ctx, db, tx, &settletest.Handler{})
	assert.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, &settletest.Handler{})
	assert.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, &settletest.Handler{DeliverErr: errors.ErrHuman})
	assert.Error(t, err)
	_, err = m.Deliver(ctx, db, &settletest.Tx{Err: errors.ErrInvalidMsg}, &settletest.Handler{})
	assert.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.total.WithLabelValues("paychan/create", "check", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.total.WithLabelValues("paychan/create", "deliver", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.total.WithLabelValues("paychan/create", "deliver", "7")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.total.WithLabelValues("unknown", "deliver", "0")))
}

func TestMetricsRegistrationConflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}
