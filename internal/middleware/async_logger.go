package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/logger"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/service"
)

// AsyncLoggerConfig tunes the buffered audit-log writer.
type AsyncLoggerConfig struct {
	// BufferSize caps how many entries may wait in the queue; Log drops
	// entries once the queue is full.
	BufferSize int
	// NumWorkers is how many goroutines drain the queue.
	NumWorkers int
	// BatchSize is the maximum number of entries written per bulk insert.
	BatchSize int
	// FlushInterval bounds how long a partially filled batch may wait.
	FlushInterval time.Duration
	// WriteTimeout bounds each database write.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns the production defaults.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:    1000,
		NumWorkers:    4,
		BatchSize:     32,
		FlushInterval: time.Second,
		WriteTimeout:  5 * time.Second,
	}
}

// AsyncLogger persists request log entries off the hot path. Handlers enqueue
// entries without blocking; a fixed worker pool groups them into batches and
// writes each batch with a single bulk insert.
type AsyncLogger struct {
	svc     service.LoggingService
	queue   chan *model.LogEntry
	workers sync.WaitGroup
	cfg     AsyncLoggerConfig

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	errors   atomic.Int64
}

// NewAsyncLogger starts the worker pool. Returns nil when no logging service
// is available, which callers treat as logging disabled.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	al := &AsyncLogger{
		svc:   loggingService,
		queue: make(chan *model.LogEntry, cfg.BufferSize),
		cfg:   cfg,
	}

	for i := 0; i < cfg.NumWorkers; i++ {
		al.workers.Add(1)
		go al.drain()
	}

	return al
}

// drain collects entries into a batch and flushes it when the batch is full
// or the flush interval elapses. A closed queue flushes the remainder and
// exits, so Stop never loses accepted entries.
func (al *AsyncLogger) drain() {
	defer al.workers.Done()

	batch := make([]*model.LogEntry, 0, al.cfg.BatchSize)
	ticker := time.NewTicker(al.cfg.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		al.writeBatch(batch)
		batch = batch[:0]
	}

	for {
		select {
		case entry, ok := <-al.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, entry)
			if len(batch) >= al.cfg.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (al *AsyncLogger) writeBatch(batch []*model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.cfg.WriteTimeout)
	defer cancel()

	var err error
	if len(batch) == 1 {
		err = al.svc.CreateLog(ctx, batch[0])
	} else {
		err = al.svc.CreateLogs(ctx, batch)
	}
	if err != nil {
		al.errors.Add(1)
		logger.Logger().Warn().Err(err).Int("batch_size", len(batch)).
			Msg("Failed to persist request log batch")
		return
	}
	al.written.Add(int64(len(batch)))
}

// Log enqueues an entry. Reports false when the queue is full and the entry
// was dropped.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	select {
	case al.queue <- entry:
		al.enqueued.Add(1)
		return true
	default:
		al.dropped.Add(1)
		return false
	}
}

// Stop closes the queue and waits until every accepted entry is written.
// The logger must not be used after Stop.
func (al *AsyncLogger) Stop() {
	close(al.queue)
	al.workers.Wait()
}

// Stats reports lifetime counters.
func (al *AsyncLogger) Stats() (enqueued, dropped, written, errors int64) {
	return al.enqueued.Load(), al.dropped.Load(), al.written.Load(), al.errors.Load()
}

var (
	globalAsyncLogger   *AsyncLogger
	globalAsyncLoggerMu sync.RWMutex
)

// InitAsyncLogger installs the process-wide logger, stopping any previous one.
func InitAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
	}
	globalAsyncLogger = NewAsyncLogger(loggingService, cfg)
}

// GetAsyncLogger returns the process-wide logger, or nil when logging is
// disabled.
func GetAsyncLogger() *AsyncLogger {
	globalAsyncLoggerMu.RLock()
	defer globalAsyncLoggerMu.RUnlock()
	return globalAsyncLogger
}

// StopAsyncLogger flushes and clears the process-wide logger.
func StopAsyncLogger() {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
		globalAsyncLogger = nil
	}
}
