package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/domain"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/repository"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/logging"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/metrics"
)

// DiagramService is the persistence gateway. Every operation except Get and
// ListPublic needs the caller's identity.
type DiagramService struct {
	store    repository.Store
	validate *validator.Validate
}

func NewDiagramService(store repository.Store) *DiagramService {
	return &DiagramService{store: store, validate: newValidator()}
}

// Save inserts d when it has no ID and updates the caller's row otherwise.
func (s *DiagramService) Save(ctx context.Context, ownerID string, d domain.Diagram) (_ *domain.Diagram, err error) {
	op := "insert"
	if d.ID != "" {
		op = "update"
	}
	defer func() { metrics.RecordDiagramOp(op, err) }()

	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	d.OwnerID = ownerID
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		d.Title = domain.DefaultTitle
	}
	d.ThumbnailURL = strings.TrimSpace(d.ThumbnailURL)
	if verr := s.validate.Struct(d); verr != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidDiagram, formatValidationError(verr))
	}

	if d.ID == "" {
		err = s.store.Insert(ctx, &d)
	} else {
		err = s.store.Update(ctx, &d)
	}
	if err != nil {
		return nil, s.wrap(ctx, op, err)
	}
	return &d, nil
}

// Get is unscoped: any diagram is readable by ID.
func (s *DiagramService) Get(ctx context.Context, id string) (_ *domain.Diagram, err error) {
	defer func() { metrics.RecordDiagramOp("get", err) }()

	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.wrap(ctx, "get", err)
	}
	return d, nil
}

func (s *DiagramService) ListMine(ctx context.Context, ownerID string) (_ []domain.Diagram, err error) {
	defer func() { metrics.RecordDiagramOp("list_mine", err) }()

	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	items, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.wrap(ctx, "list_mine", err)
	}
	return items, nil
}

func (s *DiagramService) ListPublic(ctx context.Context) (_ []domain.Diagram, err error) {
	defer func() { metrics.RecordDiagramOp("list_public", err) }()

	items, err := s.store.ListPublic(ctx)
	if err != nil {
		return nil, s.wrap(ctx, "list_public", err)
	}
	return items, nil
}

// Delete removes the caller's diagram. A missing or foreign ID is a silent no-op.
func (s *DiagramService) Delete(ctx context.Context, id, ownerID string) (err error) {
	defer func() { metrics.RecordDiagramOp("delete", err) }()

	if ownerID == "" {
		return domain.ErrUnauthenticated
	}
	if err := s.store.Delete(ctx, id, ownerID); err != nil {
		return s.wrap(ctx, "delete", err)
	}
	return nil
}

func (s *DiagramService) wrap(ctx context.Context, op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	logging.NewLogger(ctx).LogError("diagrams."+op, err)
	return &domain.PersistenceError{Op: op, Err: err}
}
