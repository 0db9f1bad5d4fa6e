package plan

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidCategory signals a category outside the supported set.
var ErrInvalidCategory = errors.New("plan: invalid category")

// CatalogReader abstracts repository operations for the service.
type CatalogReader interface {
	ListByCategory(ctx context.Context, category Category) ([]Plan, error)
	StatsByCategory(ctx context.Context, category Category) (CategoryStats, error)
	Summary(ctx context.Context, id int64) (Summary, error)
}

// Service exposes business-level catalog operations.
type Service struct {
	repo CatalogReader
}

// NewService builds a Service using the provided repository.
func NewService(repo CatalogReader) *Service {
	return &Service{repo: repo}
}

// ListByCategory returns the plans offered in category.
func (s *Service) ListByCategory(ctx context.Context, category Category) ([]Plan, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return s.repo.ListByCategory(ctx, category)
}

// StatsByCategory returns the header statistics for category.
func (s *Service) StatsByCategory(ctx context.Context, category Category) (CategoryStats, error) {
	if !category.Valid() {
		return CategoryStats{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return s.repo.StatsByCategory(ctx, category)
}

// Summary returns the detail record of a plan.
func (s *Service) Summary(ctx context.Context, id int64) (Summary, error) {
	if id <= 0 {
		return Summary{}, ErrNotFound
	}
	return s.repo.Summary(ctx, id)
}
