package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dinerozz/tabsnoop-backend/config"
	"github.com/dinerozz/tabsnoop-backend/internal/entity"
	"github.com/dinerozz/tabsnoop-backend/migrations"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DomainRecordRepository is the durable domain -> DomainRecord mapping.
type DomainRecordRepository interface {
	// GetOrDefault returns an empty record when the domain has never been seen.
	GetOrDefault(ctx context.Context, domain string) (*entity.DomainRecord, error)
	GetAll(ctx context.Context) (map[string]entity.DomainRecord, error)
	// AppendVisit loads, extends and stores the record for domain as one
	// atomic read-modify-write and returns the stored record.
	AppendVisit(ctx context.Context, domain string, visit entity.VisitInterval) (*entity.DomainRecord, error)
	Clear(ctx context.Context) error
}

func NewRepository(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.PostgresURL())
	if err != nil {
		log.Println("❌ Error connecting to database:", err)
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		log.Println("❌ Error pinging database:", err)
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("✅ Connected to database")

	return db, nil
}

// NewSQLiteRepository opens a SQLite file (or ":memory:"). SQLite allows a
// single writer, so the pool is pinned to one connection; this also keeps
// an in-memory database alive for the life of the handle.
func NewSQLiteRepository(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		log.Println("❌ Error opening sqlite database:", err)
		return nil, err
	}

	db.SetMaxOpenConns(1)

	log.Printf("✅ Opened sqlite database at %s", path)

	return db, nil
}

// Open builds the store selected by cfg.Store. The returned closer releases
// the underlying connection.
func Open(ctx context.Context, cfg *config.Config) (DomainRecordRepository, func() error, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return NewMemoryDomainRecordRepository(), func() error { return nil }, nil

	case config.StoreRedis:
		client, err := NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisDomainRecordRepository(client, cfg.Redis.Key), client.Close, nil

	case config.StorePostgres, config.StoreSQLite:
		var (
			db  *sqlx.DB
			err error
		)
		if cfg.Store == config.StorePostgres {
			db, err = NewRepository(cfg.DB)
		} else {
			db, err = NewSQLiteRepository(cfg.DB.SQLitePath)
		}
		if err != nil {
			return nil, nil, err
		}

		if cfg.DB.AutoMigrate {
			if err := migrations.Up(db.DB, db.DriverName()); err != nil {
				db.Close()
				return nil, nil, err
			}
		}

		return NewDomainRecordRepository(db), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.Store)
}
