package storage

import (
	"context"
	"database/sql"
	"encoding/json"
)

// Postgres persiste os registros em uma tabela chave/valor com coluna JSONB.
// Espera a tabela:
//
//	CREATE TABLE IF NOT EXISTS kv_state (
//	    key        TEXT PRIMARY KEY,
//	    value      JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	)
type Postgres struct {
	DB *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{DB: db} }

func (p *Postgres) Load(ctx context.Context, key string, dst any) (bool, error) {
	var raw []byte
	err := p.DB.QueryRowContext(ctx, `SELECT value FROM kv_state WHERE key=$1`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, dst)
}

func (p *Postgres) Save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = p.DB.ExecContext(ctx, `
		INSERT INTO kv_state (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, b)
	return err
}
