package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"tasnim.dev/iam-audit/internal/logging"
)

// Opener opens a database handle; sql.Open by default.
type Opener func(driverName, dsn string) (*sql.DB, error)

type Option func(*Executor)

// WithLogger overrides the failure logger chosen from Config.Debug.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

func WithOpener(open Opener) Option {
	return func(e *Executor) {
		e.open = open
	}
}

// Executor runs queries against one database. It keeps no connection between
// calls: every operation opens its own session and releases it before
// returning. Driver errors are returned unchanged after being logged.
type Executor struct {
	cfg      Config
	logger   *zap.Logger
	open     Opener
	closeLog func() error
}

// New stores cfg without connecting. With cfg.Debug set, failures are written
// to the daily error log in cfg.LogDir; otherwise they are discarded.
func New(cfg Config, opts ...Option) (*Executor, error) {
	if cfg.SearchPathEnv == "" {
		cfg.SearchPathEnv = DefaultSearchPathEnv
	}

	e := &Executor{cfg: cfg, open: sql.Open}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		if cfg.Debug {
			logger, closeFn, err := logging.NewErrorFile(cfg.LogDir, time.Now())
			if err != nil {
				return nil, err
			}
			e.logger, e.closeLog = logger, closeFn
		} else {
			e.logger = zap.NewNop()
		}
	}

	return e, nil
}

// Close flushes the debug error log, if one was opened.
func (e *Executor) Close() error {
	if e.closeLog == nil {
		return nil
	}
	err := e.closeLog()
	e.closeLog = nil
	return err
}

func (e *Executor) Config() Config {
	return e.cfg
}

// Connect opens and pings a new handle limited to a single connection. The
// caller owns the handle and must close it.
func (e *Executor) Connect(ctx context.Context) (*sql.DB, error) {
	if err := prependSearchPath(e.cfg.SearchPathEnv, e.cfg.DriverLocation); err != nil {
		e.logger.Error("Failed to update driver search path", zap.String("env", e.cfg.SearchPathEnv), zap.Error(err))
		return nil, err
	}

	dsn, err := e.cfg.DSN()
	if err != nil {
		e.logger.Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}

	db, err := e.open(e.cfg.DriverName(), dsn)
	if err != nil {
		e.logger.Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		e.logger.Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}
	return db, nil
}

// Session is a connection plus the single driver connection statements run
// on.
type Session struct {
	DB   *sql.DB
	Conn *sql.Conn
}

func (s *Session) Close() error {
	return errors.Join(s.Conn.Close(), s.DB.Close())
}

// Session opens a connection and checks out its driver connection. The
// caller must Close the session.
func (e *Executor) Session(ctx context.Context) (*Session, error) {
	db, err := e.Connect(ctx)
	if err != nil {
		return nil, err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		e.logger.Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}
	return &Session{DB: db, Conn: conn}, nil
}

// GetData runs query without parameters and returns the full result.
func (e *Executor) GetData(ctx context.Context, query string) (*Table, error) {
	s, err := e.Session(ctx)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	rows, err := s.Conn.QueryContext(ctx, query)
	if err != nil {
		e.logQueryError(query, err)
		return nil, err
	}
	defer rows.Close()

	table, err := FetchData(rows)
	if err != nil {
		e.logQueryError(query, err)
		return nil, err
	}
	return table, nil
}

// InsertData executes query once per row inside a single transaction and
// commits once. Any failure rolls the transaction back; nothing is committed.
// On pgx connections the rows are sent as one pgx.Batch.
func (e *Executor) InsertData(ctx context.Context, query string, rows [][]any) error {
	s, err := e.Session(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if pgConn := nativePgx(s.Conn); pgConn != nil {
		if err := sendBatch(ctx, pgConn, query, rows); err != nil {
			e.logQueryError(query, err)
			return err
		}
		return nil
	}

	return e.runTx(ctx, s, query, func(tx *sql.Tx) error {
		return execMany(ctx, tx, query, rows)
	})
}

// UpdateData executes a single parameterless statement and commits.
func (e *Executor) UpdateData(ctx context.Context, query string) error {
	return e.inTx(ctx, query, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query)
		return err
	})
}

func (e *Executor) inTx(ctx context.Context, query string, fn func(*sql.Tx) error) error {
	s, err := e.Session(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	return e.runTx(ctx, s, query, fn)
}

func (e *Executor) runTx(ctx context.Context, s *Session, query string, fn func(*sql.Tx) error) error {
	tx, err := s.Conn.BeginTx(ctx, nil)
	if err != nil {
		e.logQueryError(query, err)
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		e.logQueryError(query, err)
		return err
	}

	if err := tx.Commit(); err != nil {
		e.logQueryError(query, err)
		return err
	}
	return nil
}

func execMany(ctx context.Context, tx *sql.Tx, query string, rows [][]any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return err
		}
	}
	return nil
}

// nativePgx returns the pgx connection behind conn, or nil for other drivers.
func nativePgx(conn *sql.Conn) *pgx.Conn {
	var pgConn *pgx.Conn
	_ = conn.Raw(func(dc any) error {
		if c, ok := dc.(*stdlib.Conn); ok {
			pgConn = c.Conn()
		}
		return nil
	})
	return pgConn
}

func newBatch(query string, rows [][]any) *pgx.Batch {
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(query, row...)
	}
	return batch
}

// sendBatch runs every row in one round trip inside a pgx transaction. The
// first row error is returned as is and the transaction is rolled back.
func sendBatch(ctx context.Context, conn *pgx.Conn, query string, rows [][]any) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}

	if err := tx.SendBatch(ctx, newBatch(query, rows)).Close(); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (e *Executor) logQueryError(query string, err error) {
	e.logger.Error("Failed to execute query", zap.String("query", query), zap.Error(err))
}
