// Package store is the data-access layer: a gorm query builder over
// PostgreSQL and a generic table facade used by every resource.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQuery = 200 * time.Millisecond

// Open connects to PostgreSQL through pgx and wraps the connection in gorm.
// The caller owns the returned handle and closes it via DB().
func Open(ctx context.Context, dsn string, log *zap.SugaredLogger) (*gorm.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("ping database: %w", err)
	}

	return New(conn, log)
}

// New builds a gorm handle on top of an existing connection pool.
func New(conn gorm.ConnPool, log *zap.SugaredLogger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 NewLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("init gorm: %w", err)
	}

	return db, nil
}

// Logger routes gorm's query log into zap.
type Logger struct {
	log   *zap.SugaredLogger
	level gormlogger.LogLevel
}

func NewLogger(log *zap.SugaredLogger) *Logger {
	return &Logger{log: log, level: gormlogger.Warn}
}

func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *l
	c.level = level

	return &c
}

func (l *Logger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Infof(msg, args...)
	}
}

func (l *Logger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warnf(msg, args...)
	}
}

func (l *Logger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Errorf(msg, args...)
	}
}

// Trace logs every statement at debug level and slow ones at warn. Failed
// statements are left to the caller, which logs them with request context.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	query, rows := fc()

	if elapsed > slowQuery && l.level >= gormlogger.Warn {
		l.log.Warnw("slow query", "sql", query, "rows", rows, "elapsed", elapsed)

		return
	}

	l.log.Debugw("query", "sql", query, "rows", rows, "elapsed", elapsed, "error", err)
}
