package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repo struct {
	db querier
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// UpsertUser is a verified identity from one of the auth providers.
type UpsertUser struct {
	Provider    string
	ExternalID  string
	Email       string
	DisplayName string
	PhotoURL    string
}

// EnsureUser creates or refreshes the caller's row and returns its id. Blank profile
// fields never overwrite stored ones.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (string, error) {
	if u.ExternalID == "" {
		return "", fmt.Errorf("external id required")
	}
	if u.Provider == "" {
		return "", fmt.Errorf("provider required")
	}

	const q = `
insert into users (provider, external_id, email, display_name, photo_url, last_seen_at)
values ($1, $2, nullif($3,''), nullif($4,''), nullif($5,''), now())
on conflict (provider, external_id) do update
set
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(excluded.display_name, users.display_name),
  photo_url = coalesce(excluded.photo_url, users.photo_url),
  last_seen_at = now()
returning id::text;
`
	var id string
	if err := r.db.QueryRow(ctx, q, u.Provider, u.ExternalID, u.Email, u.DisplayName, u.PhotoURL).Scan(&id); err != nil {
		return "", fmt.Errorf("ensure user: %w", err)
	}
	return id, nil
}
