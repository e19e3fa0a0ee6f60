package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeCloser struct {
	err    error
	closed bool
}

func (c *fakeCloser) Close() error {
	c.closed = true
	return c.err
}

type fakeTx struct {
	err        error
	rolledBack bool
}

func (tx *fakeTx) Rollback() error {
	tx.rolledBack = true
	return tx.err
}

func TestSafeCloseWithLogging(t *testing.T) {
	t.Run("closes quietly on success", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		closer := &fakeCloser{}
		SafeCloseWithLogging(closer, logger, "schedule_dataset")

		assert.True(t, closer.closed)
		assert.Empty(t, buf.String())
	})

	t.Run("logs close failures", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		closer := &fakeCloser{err: errors.New("disk gone")}
		SafeCloseWithLogging(closer, logger, "schedule_dataset")

		output := buf.String()
		assert.Contains(t, output, "failed to close resource")
		assert.Contains(t, output, "disk gone")
		assert.Contains(t, output, "schedule_dataset")
	})

	t.Run("tolerates nil closer", func(t *testing.T) {
		SafeCloseWithLogging(nil, nil, "noop")
	})
}

func TestSafeRollbackWithLogging(t *testing.T) {
	t.Run("ignores already-committed transactions", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		tx := &fakeTx{err: errors.New("sql: transaction has already been committed or rolled back")}
		SafeRollbackWithLogging(tx, logger, "transitdb_tx")

		assert.True(t, tx.rolledBack)
		assert.Empty(t, buf.String())
	})

	t.Run("logs unexpected rollback failures", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		tx := &fakeTx{err: errors.New("connection lost")}
		SafeRollbackWithLogging(tx, logger, "transitdb_tx")

		output := buf.String()
		assert.Contains(t, output, "failed to rollback transaction")
		assert.Contains(t, output, "connection lost")
	})
}
