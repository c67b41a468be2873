package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/fastygo/alle/internal/config"
	pgInfra "github.com/fastygo/alle/internal/infrastructure/postgres"
	"github.com/fastygo/alle/pkg/logger"
)

// SQLiteDriverName is the database/sql name registered by modernc.org/sqlite.
const SQLiteDriverName = "sqlite"

// DB owns the connection pool shared by every repository.
type DB struct {
	Gorm    *gorm.DB
	Backend Backend

	sqlDB  *sql.DB
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Open connects to the configured backend and wraps it in gorm.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	target, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger:         logger.NewGormLogger(log, cfg.SlowQuery),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}

	db := &DB{Backend: target.Backend, logger: log}
	var dialector gorm.Dialector

	switch target.Backend {
	case BackendPostgres:
		pool, err := pgInfra.NewPool(ctx, target.DSN, cfg, log)
		if err != nil {
			return nil, err
		}
		db.pool = pool
		db.sqlDB = stdlib.OpenDBFromPool(pool)
		dialector = gormpostgres.New(gormpostgres.Config{Conn: db.sqlDB})
	case BackendSQLite:
		sqlDB, err := OpenSQLite(target.DSN)
		if err != nil {
			return nil, err
		}
		db.sqlDB = sqlDB
		dialector = &gormsqlite.Dialector{Conn: sqlDB}
	default:
		return nil, fmt.Errorf("unsupported backend %q", target.Backend)
	}

	gdb, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		db.Close()
		return nil, err
	}
	db.Gorm = gdb

	log.Info("database connected",
		zap.String("backend", string(target.Backend)),
		zap.String("url", cfg.SanitizedURL()),
	)
	return db, nil
}

// OpenSQLite opens a modernc SQLite handle. SQLite serialises writers, so the
// pool keeps a single connection to avoid SQLITE_BUSY under concurrent requests.
func OpenSQLite(dsn string) (*sql.DB, error) {
	sqlDB, err := sql.Open(SQLiteDriverName, dsn)
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

// Ping checks the underlying connection.
func (d *DB) Ping(ctx context.Context) error {
	if d == nil || d.sqlDB == nil {
		return fmt.Errorf("database not initialised")
	}
	return d.sqlDB.PingContext(ctx)
}

// Close releases the sql handle and, for PostgreSQL, the pgx pool beneath it.
func (d *DB) Close() error {
	if d == nil {
		return nil
	}
	var err error
	if d.sqlDB != nil {
		err = d.sqlDB.Close()
	}
	if d.pool != nil {
		pgInfra.Close(d.pool, d.logger)
	}
	return err
}
