package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SettingsDB persists Settings as key/value rows in a small SQLite file.
type SettingsDB struct {
	db *sql.DB
}

// OpenSettings opens (creating if needed) the settings database at path.
func OpenSettings(ctx context.Context, path string) (*SettingsDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Several huba processes may share the file; WAL + busy_timeout avoid "database is locked".
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS settings (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SettingsDB{db: db}, nil
}

// OpenDefaultSettings opens <ConfigDir>/settings.db.
func OpenDefaultSettings(ctx context.Context) (*SettingsDB, error) {
	path, err := settingsDBPath()
	if err != nil {
		return nil, err
	}
	return OpenSettings(ctx, path)
}

func (s *SettingsDB) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SettingsDB) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM settings WHERE k = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set validates and stores one setting.
func (s *SettingsDB) Set(ctx context.Context, key, value string) error {
	probe := DefaultSettings()
	if err := probe.Apply(key, value); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (k, v, updated_at_unixms) VALUES (?, ?, ?)
		 ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at_unixms = excluded.updated_at_unixms`,
		key, probe.Values()[key], time.Now().UnixMilli())
	return err
}

// Load returns the stored settings over the defaults. Rows with unknown keys
// or invalid values are ignored.
func (s *SettingsDB) Load(ctx context.Context) (Settings, error) {
	out := DefaultSettings()
	rows, err := s.db.QueryContext(ctx, `SELECT k, v FROM settings`)
	if err != nil {
		return out, err
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return out, err
		}
		_ = out.Apply(k, v)
	}
	return out, rows.Err()
}

// Save writes every setting in one transaction.
func (s *SettingsDB) Save(ctx context.Context, st Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	now := time.Now().UnixMilli()
	for k, v := range st.Values() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO settings (k, v, updated_at_unixms) VALUES (?, ?, ?)
			 ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at_unixms = excluded.updated_at_unixms`,
			k, v, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("save setting %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// Reset removes every stored setting.
func (s *SettingsDB) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings`)
	return err
}
