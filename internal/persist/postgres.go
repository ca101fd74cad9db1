// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres stores blobs in the "blobs" table created by the database
// migrations.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns a Backend on top of an open, migrated database.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load blob: %w", err)
	}
	return value, nil
}

func (p *Postgres) Save(ctx context.Context, key string, value []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("save blob: %w", err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}
