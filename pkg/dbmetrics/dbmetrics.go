package dbmetrics

import (
	"context"
	"database/sql"
	"time"
)

// DefaultCollectInterval период опроса статистики connection pool
const DefaultCollectInterval = 15 * time.Second

// DBExecutor общий интерфейс *sql.DB и *DB, которым пользуются репозитории
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Collector куда отправляются измерения
type Collector interface {
	SetDBStats(db string, open, inUse, idle int, waitCount int64)
	ObserveDBQuery(operation string, duration time.Duration)
}

// DB обёртка над *sql.DB, замеряющая длительность запросов и состояние пула
type DB struct {
	db        *sql.DB
	collector Collector
	name      string
}

// Wrap оборачивает соединение и запускает фоновый сбор статистики пула до закрытия stopCh
func Wrap(db *sql.DB, collector Collector, name string, interval time.Duration, stopCh <-chan struct{}) *DB {
	wrapped := &DB{db: db, collector: collector, name: name}
	go wrapped.collectStats(interval, stopCh)
	return wrapped
}

// WrapWithDefault как Wrap с DefaultCollectInterval
func WrapWithDefault(db *sql.DB, collector Collector, name string, stopCh <-chan struct{}) *DB {
	return Wrap(db, collector, name, DefaultCollectInterval, stopCh)
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer d.observe("exec", time.Now())
	return d.db.ExecContext(ctx, query, args...)
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer d.observe("query", time.Now())
	return d.db.QueryContext(ctx, query, args...)
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer d.observe("query_row", time.Now())
	return d.db.QueryRowContext(ctx, query, args...)
}

func (d *DB) observe(operation string, start time.Time) {
	d.collector.ObserveDBQuery(operation, time.Since(start))
}

func (d *DB) collectStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.reportStats()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			d.reportStats()
		}
	}
}

func (d *DB) reportStats() {
	stats := d.db.Stats()
	d.collector.SetDBStats(d.name, stats.OpenConnections, stats.InUse, stats.Idle, stats.WaitCount)
}
