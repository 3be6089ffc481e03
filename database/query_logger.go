package database

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm/logger"
)

// QueryLog represents a single SQL query log entry
type QueryLog struct {
	ID        int           `json:"id"`
	SQL       string        `json:"sql"`
	Duration  time.Duration `json:"duration"`
	Rows      int64         `json:"rows"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// QueryLogger keeps the most recent SQL statements in a fixed size ring.
type QueryLogger struct {
	mu      sync.RWMutex
	ring    []QueryLog
	next    int
	size    int
	counter int
}

// Global query logger instance
var SQLLogger = NewQueryLogger(100)

// NewQueryLogger creates a new query logger
func NewQueryLogger(maxLogs int) *QueryLogger {
	if maxLogs < 1 {
		maxLogs = 1
	}
	return &QueryLogger{ring: make([]QueryLog, maxLogs)}
}

// LogQuery logs a SQL query
func (ql *QueryLogger) LogQuery(sql string, duration time.Duration, rows int64, err error) {
	ql.mu.Lock()
	defer ql.mu.Unlock()

	ql.counter++
	entry := QueryLog{
		ID:        ql.counter,
		SQL:       sql,
		Duration:  duration,
		Rows:      rows,
		Timestamp: time.Now(),
	}
	if err != nil {
		entry.Error = err.Error()
	}

	ql.ring[ql.next] = entry
	ql.next = (ql.next + 1) % len(ql.ring)
	if ql.size < len(ql.ring) {
		ql.size++
	}
}

// Counter returns how many queries were logged since start, including evicted ones
func (ql *QueryLogger) Counter() int {
	ql.mu.RLock()
	defer ql.mu.RUnlock()
	return ql.counter
}

// GetQueries returns all retained queries, newest first
func (ql *QueryLogger) GetQueries() []QueryLog {
	return ql.GetRecentQueries(len(ql.ring))
}

// GetRecentQueries returns the most recent n queries, newest first
func (ql *QueryLogger) GetRecentQueries(n int) []QueryLog {
	ql.mu.RLock()
	defer ql.mu.RUnlock()

	if n > ql.size {
		n = ql.size
	}
	result := make([]QueryLog, 0, n)
	idx := ql.next
	for i := 0; i < n; i++ {
		idx = (idx - 1 + len(ql.ring)) % len(ql.ring)
		result = append(result, ql.ring[idx])
	}
	return result
}

// Since returns the queries logged after the counter value mark, newest first
func (ql *QueryLogger) Since(mark int) []QueryLog {
	ql.mu.RLock()
	n := ql.counter - mark
	ql.mu.RUnlock()
	if n <= 0 {
		return []QueryLog{}
	}
	return ql.GetRecentQueries(n)
}

// Clear removes all logged queries
func (ql *QueryLogger) Clear() {
	ql.mu.Lock()
	defer ql.mu.Unlock()
	ql.size = 0
	ql.next = 0
}

// CustomGormLogger forwards to the wrapped GORM logger and records every
// statement in Queries.
type CustomGormLogger struct {
	logger.Interface
	Queries *QueryLogger
}

// LogMode keeps the query ring attached when GORM changes the log level
func (l *CustomGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &CustomGormLogger{Interface: l.Interface.LogMode(level), Queries: l.Queries}
}

// Trace implements the logger.Interface
func (l *CustomGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.Interface != nil {
		l.Interface.Trace(ctx, begin, fc, err)
	}

	sql, rows := fc()
	l.Queries.LogQuery(sql, time.Since(begin), rows, err)
}
