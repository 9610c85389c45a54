package app

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}),
		&gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	return gdb, mock
}

// flakyConnector fails the first n calls, then returns db.
type flakyConnector struct {
	mu    sync.Mutex
	fails int
	calls int
	db    *gorm.DB
}

func (f *flakyConnector) connect() (*gorm.DB, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.fails {
		return nil, errors.New("dial tcp 10.0.0.5:3306: connect: connection refused")
	}
	return f.db, nil
}

func (f *flakyConnector) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestEnsureDB_RetriesAfterFailure(t *testing.T) {
	gdb, mock := newMockGorm(t)
	conn := &flakyConnector{fails: 1, db: gdb}
	a := New(Options{Logger: zerolog.Nop(), Connect: conn.connect})

	require.Error(t, a.EnsureDB())
	assert.False(t, a.Attached())
	rec := get(a, analytics, "/analytics/summary")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	require.NoError(t, a.EnsureDB())
	assert.True(t, a.Attached())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `payments`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "amount"}).AddRow(1, "a@x", 1250))
	rec = get(a, analytics, "/analytics/summary")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalRevenue":"12.50","payingUsers":1,"transactions":1}`, rec.Body.String())

	require.NoError(t, a.EnsureDB())
	assert.Equal(t, 2, conn.Calls())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureDB_NoConnector(t *testing.T) {
	a := New(Options{Logger: zerolog.Nop()})
	require.NoError(t, a.EnsureDB())
	assert.False(t, a.Attached())
}

func TestEnsureDB_ConcurrentCallersShareOneConnect(t *testing.T) {
	gdb, _ := newMockGorm(t)
	conn := &flakyConnector{db: gdb}
	a := New(Options{Logger: zerolog.Nop(), Connect: conn.connect})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, a.EnsureDB())
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, conn.Calls())
}

func TestKeepConnecting(t *testing.T) {
	gdb, _ := newMockGorm(t)
	conn := &flakyConnector{fails: 3, db: gdb}
	a := New(Options{Logger: zerolog.Nop(), Connect: conn.connect})
	a.delay = func(int) time.Duration { return time.Millisecond }

	require.NoError(t, a.KeepConnecting(context.Background()))
	assert.True(t, a.Attached())
	assert.Equal(t, 4, conn.Calls())
}

func TestKeepConnecting_StopsOnCancel(t *testing.T) {
	conn := &flakyConnector{fails: 1 << 30}
	a := New(Options{Logger: zerolog.Nop(), Connect: conn.connect})
	a.delay = func(int) time.Duration { return time.Millisecond }

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := a.KeepConnecting(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, a.Attached())
}

func TestNextConnectDelay(t *testing.T) {
	assert.Equal(t, time.Second, nextConnectDelay(0))
	assert.Equal(t, 30*time.Second, nextConnectDelay(len(connectDelays)))
	assert.Equal(t, 30*time.Second, nextConnectDelay(100))
}
