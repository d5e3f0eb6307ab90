// Package store composes the Postgres-backed stores into a shared
// transaction scope for the login update sequence.
package store

import (
	"context"

	"presto-auth/internal/db"
	"presto-auth/internal/media"
	"presto-auth/internal/user"
)

// Postgres hands out transaction-bound user and media stores. The
// heavy-import document write must land in the same transaction as
// the user row: on first login the user_media foreign key references
// a parent row that is not visible outside the transaction, and on
// any later failure the document must roll back with the rest.
type Postgres struct {
	db    *db.DB
	users *user.PGStore
	media *media.PGStore
}

func NewPostgres(database *db.DB, users *user.PGStore, mediaStore *media.PGStore) *Postgres {
	return &Postgres{db: database, users: users, media: mediaStore}
}

// WithinTx runs fn with both stores bound to a single transaction,
// committing only when fn succeeds.
func (p *Postgres) WithinTx(ctx context.Context, fn func(user.Store, media.Store) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(p.users.WithQuerier(tx), p.media.WithQuerier(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
