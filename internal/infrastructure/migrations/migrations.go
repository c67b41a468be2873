package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/fastygo/alle/internal/config"
	"github.com/fastygo/alle/internal/infrastructure/database"
)

//go:embed sql/postgres/*.sql sql/sqlite/*.sql
var files embed.FS

// Latest is the version the embedded sequence ends at.
const Latest uint = 8

// Runner applies the embedded migration sequence for one backend. Every step
// runs in its own transaction on both engines.
type Runner struct {
	m       *migrate.Migrate
	backend database.Backend
	logger  *zap.Logger
}

// NewRunner opens a dedicated connection for target and prepares the sequence.
func NewRunner(target database.Target, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driverName, dir := "postgres", "sql/postgres"
	if target.Backend == database.BackendSQLite {
		driverName, dir = database.SQLiteDriverName, "sql/sqlite"
	} else if target.Backend != database.BackendPostgres {
		return nil, fmt.Errorf("unsupported backend %q", target.Backend)
	}

	sqlDB, err := sql.Open(driverName, target.DSN)
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	var driver migratedb.Driver
	if target.Backend == database.BackendSQLite {
		driver, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	} else {
		driver, err = migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
	}
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	src, err := iofs.New(files, dir)
	if err != nil {
		driver.Close()
		return nil, err
	}

	m, err := migrate.NewWithInstance("iofs", src, string(target.Backend), driver)
	if err != nil {
		driver.Close()
		return nil, err
	}
	m.Log = &zapMigrateLogger{logger: logger}

	return &Runner{m: m, backend: target.Backend, logger: logger}, nil
}

// Up applies every pending step.
func (r *Runner) Up() error {
	return r.done(r.m.Up(), "up")
}

// Down reverts every applied step.
func (r *Runner) Down() error {
	return r.done(r.m.Down(), "down")
}

// Steps moves n steps forward, or backward when n is negative.
func (r *Runner) Steps(n int) error {
	return r.done(r.m.Steps(n), fmt.Sprintf("steps %d", n))
}

// Goto migrates up or down to version.
func (r *Runner) Goto(version uint) error {
	return r.done(r.m.Migrate(version), fmt.Sprintf("goto %d", version))
}

// Version reports the applied version; zero means nothing was applied.
func (r *Runner) Version() (uint, bool, error) {
	v, dirty, err := r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Close releases the source and the dedicated connection.
func (r *Runner) Close() error {
	srcErr, dbErr := r.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (r *Runner) done(err error, op string) error {
	if errors.Is(err, migrate.ErrNoChange) {
		r.logger.Info("database schema up to date", zap.String("op", op))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", op, err)
	}
	v, _, _ := r.Version()
	r.logger.Info("database migrations applied",
		zap.String("op", op),
		zap.String("backend", string(r.backend)),
		zap.Uint("version", v),
	)
	return nil
}

// Run brings the configured database to the latest version when migrations
// are enabled. Callers treat any error as fatal.
func Run(cfg *config.Config, logger *zap.Logger) error {
	if cfg == nil || !cfg.Migrations.Enabled {
		return nil
	}
	target, err := database.ParseURL(cfg.Database.URL)
	if err != nil {
		return err
	}
	runner, err := NewRunner(target, logger)
	if err != nil {
		return err
	}
	defer runner.Close()
	return runner.Up()
}

type zapMigrateLogger struct {
	logger *zap.Logger
}

func (l *zapMigrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Sugar().Debugf(format, v...)
}

func (l *zapMigrateLogger) Verbose() bool {
	return l.logger.Core().Enabled(zap.DebugLevel)
}
