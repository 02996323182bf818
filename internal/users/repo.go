// Package users keeps a registry of people who have signed in.
// Generated project text is never stored here.
package users

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var schema string

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repo struct {
	db querier
}

// NewRepo accepts a *pgxpool.Pool, *pgx.Conn or pgx.Tx.
func NewRepo(db querier) *Repo {
	return &Repo{db: db}
}

type SignIn struct {
	FirebaseUID string
	Email       string
	DisplayName string
	PhotoURL    string
}

func (r *Repo) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	return nil
}

// RecordSignIn upserts the user and stamps last_login_at. Empty profile fields
// never overwrite stored ones. Returns the registry id.
func (r *Repo) RecordSignIn(ctx context.Context, u SignIn) (string, error) {
	if u.FirebaseUID == "" {
		return "", fmt.Errorf("firebase_uid required")
	}

	const q = `
insert into users (firebase_uid, email, display_name, photo_url, last_login_at, updated_at)
values ($1, nullif($2,''), nullif($3,''), nullif($4,''), now(), now())
on conflict (firebase_uid) do update
set
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(excluded.display_name, users.display_name),
  photo_url = coalesce(excluded.photo_url, users.photo_url),
  last_login_at = now(),
  updated_at = now()
returning id::text;
`
	var id string
	if err := r.db.QueryRow(ctx, q, u.FirebaseUID, u.Email, u.DisplayName, u.PhotoURL).Scan(&id); err != nil {
		return "", fmt.Errorf("record sign-in: %w", err)
	}
	return id, nil
}
