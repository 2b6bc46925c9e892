package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/domain"
)

const diagramsTable = "diagrams"

// SupabaseStore talks to the hosted diagrams table through PostgREST with the
// service role key; owner scoping is applied as filters on every write.
type SupabaseStore struct {
	client *postgrest.Client
}

// NewSupabaseStore builds a PostgREST client for {projectURL}/rest/v1.
func NewSupabaseStore(projectURL, serviceKey string) *SupabaseStore {
	restURL := strings.TrimSuffix(projectURL, "/") + "/rest/v1"
	client := postgrest.NewClient(restURL, "public", map[string]string{
		"apikey":        serviceKey,
		"Authorization": "Bearer " + serviceKey,
	})
	return &SupabaseStore{client: client}
}

type supabaseRow struct {
	ID           string     `json:"id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Content      string     `json:"content"`
	ThumbnailURL *string    `json:"thumbnail_url"`
	OwnerID      string     `json:"user_id,omitempty"`
	IsPublic     bool       `json:"is_public"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func toRow(d *domain.Diagram) supabaseRow {
	row := supabaseRow{
		Title:       d.Title,
		Description: d.Description,
		Content:     d.Content,
		IsPublic:    d.IsPublic,
	}
	if d.ThumbnailURL != "" {
		thumb := d.ThumbnailURL
		row.ThumbnailURL = &thumb
	}
	return row
}

// PostgREST calls are not context aware; ctx is checked before each request.
func (s *SupabaseStore) Insert(ctx context.Context, d *domain.Diagram) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row := toRow(d)
	row.ID = uuid.New().String()
	row.OwnerID = d.OwnerID

	var out []domain.Diagram
	if _, err := s.client.From(diagramsTable).Insert(row, false, "", "representation", "").ExecuteTo(&out); err != nil {
		return fmt.Errorf("failed to insert diagram: %w", err)
	}
	if len(out) == 0 {
		return fmt.Errorf("failed to insert diagram: no row returned")
	}
	*d = out[0]
	return nil
}

func (s *SupabaseStore) Update(ctx context.Context, d *domain.Diagram) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row := toRow(d)
	now := time.Now().UTC()
	row.UpdatedAt = &now

	var out []domain.Diagram
	_, err := s.client.From(diagramsTable).
		Update(row, "representation", "").
		Eq("id", d.ID).
		Eq("user_id", d.OwnerID).
		ExecuteTo(&out)
	if err != nil {
		return fmt.Errorf("failed to update diagram: %w", err)
	}
	if len(out) == 0 {
		return domain.ErrNotFound
	}
	*d = out[0]
	return nil
}

func (s *SupabaseStore) Get(ctx context.Context, id string) (*domain.Diagram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	var out []domain.Diagram
	if _, err := s.client.From(diagramsTable).Select("*", "", false).Eq("id", id).ExecuteTo(&out); err != nil {
		return nil, fmt.Errorf("failed to get diagram: %w", err)
	}
	if len(out) == 0 {
		return nil, domain.ErrNotFound
	}
	return &out[0], nil
}

func (s *SupabaseStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Diagram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []domain.Diagram{}
	_, err := s.client.From(diagramsTable).
		Select("*", "", false).
		Eq("user_id", ownerID).
		Order("updated_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to list diagrams: %w", err)
	}
	return out, nil
}

func (s *SupabaseStore) ListPublic(ctx context.Context) ([]domain.Diagram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []domain.Diagram{}
	_, err := s.client.From(diagramsTable).
		Select("*", "", false).
		Eq("is_public", "true").
		Order("updated_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to list public diagrams: %w", err)
	}
	return out, nil
}

func (s *SupabaseStore) Delete(ctx context.Context, id, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	_, _, err := s.client.From(diagramsTable).
		Delete("minimal", "").
		Eq("id", id).
		Eq("user_id", ownerID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete diagram: %w", err)
	}
	return nil
}
