// Package keychain persists judge-id → auth-key mappings so later CLI
// invocations can skip the network login.
package keychain

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

var ErrNoKey = fmt.Errorf("no auth key stored")

type Store struct {
	db *sql.DB
}

// DefaultPath places the keychain under the user's local data directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "acmcli", "keychain.db"), nil
}

func Open(path string) (Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		err := os.MkdirAll(dir, 0o700)
		if err != nil {
			return Store{}, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, err
	}
	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return Store{}, err
	}
	return Store{db: db}, nil
}

func (s Store) Get(ctx context.Context, judgeID string) (string, error) {
	row := s.db.QueryRowContext(
		ctx,
		"SELECT auth_key FROM auth_keys WHERE judge_id = ?",
		judgeID,
	)
	var authKey string
	err := row.Scan(&authKey)
	if err == sql.ErrNoRows {
		return "", ErrNoKey
	}
	if err != nil {
		return "", err
	}
	return authKey, nil
}

func (s Store) Set(ctx context.Context, judgeID, authKey string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO auth_keys (judge_id, auth_key, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (judge_id) DO UPDATE SET auth_key = excluded.auth_key, created_at = excluded.created_at`,
		judgeID, authKey, time.Now().Unix(),
	)
	return err
}

func (s Store) Close() error {
	return s.db.Close()
}
