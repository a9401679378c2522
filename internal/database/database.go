package database

import (
	"embed"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"yatube/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

const schemaFile = "migrations/001_create_tables.sql"

type MethodsDB interface {
	CloseDB() error
	RunMigrations(migrationFilePath string) error
	HealthCheck() error
	GetDB() *DB
}

type DB struct {
	*sqlx.DB
	log *logrus.Logger
}

func ConnectDB(cfg *config.Config, log *logrus.Logger) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.DbHOST,
		cfg.DB.DbPORT,
		cfg.DB.DbUSER,
		cfg.DB.DbPASSWORD,
		cfg.DB.DbNAME,
		cfg.DB.DbSSLMODE,
	)

	log.WithFields(logrus.Fields{"host": cfg.DB.DbHOST, "dbname": cfg.DB.DbNAME}).Info("connecting to database")

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{DB: db, log: log}

	if err := dbStruct.RunMigrations(cfg.MigrationsPath); err != nil {
		db.Close()
		return nil, err
	}

	if err := dbStruct.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	log.Info("connected to PostgreSQL")
	return dbStruct, nil
}

// New wraps an existing connection, e.g. a sqlmock one in tests.
func New(db *sqlx.DB, log *logrus.Logger) *DB {
	return &DB{DB: db, log: log}
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// RunMigrations applies the SQL file at migrationFilePath, or the embedded
// schema when the path is empty. The schema is idempotent.
func (db *DB) RunMigrations(migrationFilePath string) error {
	var (
		migrationSQL []byte
		err          error
	)

	if migrationFilePath == "" {
		migrationFilePath = schemaFile
		migrationSQL, err = migrations.ReadFile(schemaFile)
	} else {
		if _, statErr := os.Stat(migrationFilePath); os.IsNotExist(statErr) {
			return fmt.Errorf("migration file not found: %s", migrationFilePath)
		}
		migrationSQL, err = os.ReadFile(migrationFilePath)
	}
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	db.log.WithField("file", migrationFilePath).Info("applying migrations")

	if _, err = db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	db.log.Info("migrations applied")
	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.Ping()
}

func (db *DB) GetDB() *DB {
	return db
}
