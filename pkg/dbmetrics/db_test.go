package dbmetrics

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-HotelBookingService/pkg/metrics"
)

func TestOperation(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"SELECT id FROM rooms WHERE id = $1", "select"},
		{"  insert INTO bookings (room_id) VALUES ($1)", "insert"},
		{"UPDATE rooms SET status = $1", "update"},
		{"DELETE\nFROM bookings WHERE id = $1", "delete"},
		{"SET TRANSACTION ISOLATION LEVEL SERIALIZABLE", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, operation(tt.query))
		})
	}
}

func TestDB_ObserveCountsErrors(t *testing.T) {
	collector := metrics.New("hotel-booking")
	d := Wrap(nil, collector, "hotel")

	d.observe("SELECT 1", time.Now(), nil)
	d.observe("SELECT 1", time.Now(), sql.ErrNoRows)
	d.observe("INSERT INTO bookings DEFAULT VALUES", time.Now(), errors.New("connection reset"))

	assert.Equal(t, 0.0, testutil.ToFloat64(collector.DBQueryErrors.WithLabelValues("select")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.DBQueryErrors.WithLabelValues("insert")))
	assert.Equal(t, 2, testutil.CollectAndCount(collector.DBQueryDuration))
}

func TestDB_ObserveWithoutCollector(t *testing.T) {
	d := Wrap(nil, nil, "hotel")

	assert.NotPanics(t, func() {
		d.observe("SELECT 1", time.Now(), errors.New("boom"))
	})
}

type fakeTx struct{ DBExecutor }

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	db := Wrap(nil, nil, "hotel")

	assert.Same(t, db, GetExecutor(context.Background(), db))
	assert.False(t, IsInTransaction(context.Background()))

	tx := &fakeTx{}
	ctx := WithTx(context.Background(), tx)

	assert.True(t, IsInTransaction(ctx))
	assert.Same(t, tx, GetExecutor(ctx, db))
}
