// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package store persists the client's own state between runs: the auth
// token and user, the language choice and the theme flag. It is the
// console's analogue of the browser's localStorage, one key per value.
//
// The default backend is a local SQLite file. Shared kiosk setups can
// point several terminals at one MySQL or PostgreSQL store instead;
// writes are last-wins with no coordination, the same accepted
// inconsistency the web client has between tabs.
package store // import "github.com/resvlab/resv/internal/store"

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/resvlab/resv/internal/model"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Well-known keys, mirroring the web client's localStorage entries.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyLanguage = "language"
	KeyDarkMode = "darkMode"
)

// Store is the persisted key-value state.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// settingRow maps the settings table for bun.
type settingRow struct {
	bun.BaseModel `bun:"table:settings"`
	Key           string `bun:"key,pk"`
	Value         string `bun:"value"`
}

// BunStore is the bun-backed Store implementation.
type BunStore struct {
	sqlDB  *sql.DB
	bun    *bun.DB
	dbType string
}

// New opens the given backend and ensures the settings table exists.
// dbType is one of "sqlite", "mysql", "postgres".
func New(dbType, dsn string) (*BunStore, error) {
	driver := dbType
	if dbType == "postgres" {
		driver = "pgx"
	}
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", dbType, err)
	}

	var bdb *bun.DB
	switch dbType {
	case "sqlite":
		bdb = bun.NewDB(sqlDB, sqlitedialect.New())
	case "mysql":
		bdb = bun.NewDB(sqlDB, mysqldialect.New())
	case "postgres":
		bdb = bun.NewDB(sqlDB, pgdialect.New())
	default:
		sqlDB.Close()
		return nil, fmt.Errorf("unsupported store type %q", dbType)
	}

	s := &BunStore{sqlDB: sqlDB, bun: bdb, dbType: dbType}
	if err := s.migrate(context.Background()); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return s, nil
}

func (s *BunStore) migrate(ctx context.Context) error {
	_, err := s.bun.NewCreateTable().
		Model((*settingRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}
	return nil
}

// Get returns the stored value for key, or "" when the key is absent.
// Absence is not an error: every consumer treats missing state as a
// fresh default.
func (s *BunStore) Get(ctx context.Context, key string) (string, error) {
	var row settingRow
	err := s.bun.NewSelect().Model(&row).Where("\"key\" = ?", key).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}
	return row.Value, nil
}

// Set writes key=value, replacing any previous value.
func (s *BunStore) Set(ctx context.Context, key, value string) error {
	row := &settingRow{Key: key, Value: value}
	q := s.bun.NewInsert().Model(row)
	if s.dbType == "mysql" {
		q = q.On("DUPLICATE KEY UPDATE").Set("value = ?", value)
	} else {
		q = q.On("CONFLICT (\"key\") DO UPDATE").Set("value = EXCLUDED.value")
	}
	if _, err := q.Exec(ctx); err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *BunStore) Delete(ctx context.Context, key string) error {
	_, err := s.bun.NewDelete().Model((*settingRow)(nil)).Where("\"key\" = ?", key).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *BunStore) Close() error {
	return s.bun.Close()
}

// LoadSession reads the persisted auth state. Corrupt or missing user
// JSON degrades to a token-only session rather than failing startup.
func LoadSession(ctx context.Context, s Store) (model.Session, error) {
	token, err := s.Get(ctx, KeyToken)
	if err != nil {
		return model.Session{}, err
	}
	sess := model.Session{Token: token}
	raw, err := s.Get(ctx, KeyUser)
	if err != nil {
		return sess, err
	}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &sess.User)
	}
	return sess, nil
}

// SaveSession persists auth state; called on every login.
func SaveSession(ctx context.Context, s Store, sess model.Session) error {
	if err := s.Set(ctx, KeyToken, sess.Token); err != nil {
		return err
	}
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.Set(ctx, KeyUser, string(raw))
}

// ClearSession removes persisted auth state; called on logout and
// forced auth expiry. Idempotent.
func ClearSession(ctx context.Context, s Store) error {
	if err := s.Delete(ctx, KeyToken); err != nil {
		return err
	}
	return s.Delete(ctx, KeyUser)
}
