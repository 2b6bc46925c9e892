package repository

import (
	"context"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/domain"
)

// Store is a diagram backend. Owner scoping is enforced by the store on Update and
// Delete; Get is unscoped.
type Store interface {
	// Insert assigns ID and timestamps.
	Insert(ctx context.Context, d *domain.Diagram) error
	// Update returns domain.ErrNotFound when no row has d.ID owned by d.OwnerID.
	Update(ctx context.Context, d *domain.Diagram) error
	Get(ctx context.Context, id string) (*domain.Diagram, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Diagram, error)
	ListPublic(ctx context.Context) ([]domain.Diagram, error)
	// Delete removes the row only if ownerID owns it. Matching nothing is not an error.
	Delete(ctx context.Context, id, ownerID string) error
}
