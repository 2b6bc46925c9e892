package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/domain"
)

// pq error code for malformed input such as a non-uuid id.
const invalidTextRepresentation = "22P02"

const diagramColumns = `id, title, description, content, thumbnail_url, user_id, is_public, created_at, updated_at`

// PostgresStore keeps diagrams in the diagrams table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, d *domain.Diagram) error {
	d.ID = uuid.New().String()

	query := `
		INSERT INTO diagrams (id, title, description, content, thumbnail_url, user_id, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		d.ID, d.Title, d.Description, d.Content, d.ThumbnailURL, d.OwnerID, d.IsPublic,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert diagram: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, d *domain.Diagram) error {
	query := `
		UPDATE diagrams
		SET title = $1, description = $2, content = $3, thumbnail_url = NULLIF($4, ''), is_public = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		d.Title, d.Description, d.Content, d.ThumbnailURL, d.IsPublic, d.ID, d.OwnerID,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update diagram: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*domain.Diagram, error) {
	query := `SELECT ` + diagramColumns + ` FROM diagrams WHERE id = $1`

	d, err := scanDiagram(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get diagram: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Diagram, error) {
	query := `SELECT ` + diagramColumns + ` FROM diagrams WHERE user_id = $1 ORDER BY updated_at DESC`
	return s.list(ctx, query, ownerID)
}

func (s *PostgresStore) ListPublic(ctx context.Context) ([]domain.Diagram, error) {
	query := `SELECT ` + diagramColumns + ` FROM diagrams WHERE is_public = TRUE ORDER BY updated_at DESC`
	return s.list(ctx, query)
}

func (s *PostgresStore) Delete(ctx context.Context, id, ownerID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM diagrams WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil && !isInvalidID(err) {
		return fmt.Errorf("failed to delete diagram: %w", err)
	}
	return nil
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...interface{}) ([]domain.Diagram, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list diagrams: %w", err)
	}
	defer rows.Close()

	out := []domain.Diagram{}
	for rows.Next() {
		d, err := scanDiagram(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan diagram: %w", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list diagrams: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDiagram(row rowScanner) (*domain.Diagram, error) {
	var (
		d         domain.Diagram
		thumbnail sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(&d.ID, &d.Title, &d.Description, &d.Content, &thumbnail, &d.OwnerID, &d.IsPublic, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	d.ThumbnailURL = thumbnail.String
	d.CreatedAt = createdAt
	d.UpdatedAt = updatedAt
	return &d, nil
}

func isInvalidID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation
}
