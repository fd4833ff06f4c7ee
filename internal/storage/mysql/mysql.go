package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"famigliapp/internal/config"
)

// Storage хранит каждую коллекцию одной строкой в famiglia_collections (JSON-документ целиком).
type Storage struct {
	db *sql.DB
}

func New(cfg config.Storage) (*Storage, error) {
	const op = "storage.mysql.New"

	dsn := mysql.NewConfig()
	dsn.User = cfg.DBUser
	dsn.Passwd = cfg.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = fmt.Sprintf("%s:%d", cfg.DBHost, cfg.DBPort)
	dsn.DBName = cfg.DBName
	dsn.ParseTime = true

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB: для тестов и для уже открытого пула.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.mysql.Migrate"

	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS famiglia_collections (
			name       VARCHAR(64) NOT NULL PRIMARY KEY,
			data       JSON        NOT NULL,
			updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("%s: create famiglia_collections: %w", op, err)
	}

	return nil
}

func (s *Storage) Load(ctx context.Context, collection string, dst any) error {
	const op = "storage.mysql.Load"

	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM famiglia_collections WHERE name = ?`, collection).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: select %s: %w", op, collection, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%s: decode %s: %w", op, collection, err)
	}

	return nil
}

func (s *Storage) Save(ctx context.Context, collection string, v any) error {
	const op = "storage.mysql.Save"

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: encode %s: %w", op, collection, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO famiglia_collections (name, data) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE data = VALUES(data), updated_at = CURRENT_TIMESTAMP`,
		collection, data)
	if err != nil {
		return fmt.Errorf("%s: upsert %s: %w", op, collection, err)
	}

	return nil
}
