package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/spacebook/backend/internal/db"
	"github.com/spacebook/backend/internal/model"
)

// ResourceStore is the persistence a ResourceService needs. db.Store
// implements it for every model.
type ResourceStore[T any] interface {
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, skip, limit int, filter db.Filter) ([]T, int, error)
	Create(ctx context.Context, row *T) error
	Update(ctx context.Context, row *T, columns []string) error
	Delete(ctx context.Context, id string) error
}

// ResourceService is the CRUD flow shared by spaces, bookings, rentals,
// payments and notifications.
type ResourceService[T any] struct {
	store        ResourceStore[T]
	defaultLimit int
}

func NewResourceService[T any](store ResourceStore[T], defaultLimit int) *ResourceService[T] {
	if defaultLimit <= 0 {
		defaultLimit = model.DefaultPageLimit
	}
	return &ResourceService[T]{store: store, defaultLimit: defaultLimit}
}

func (s *ResourceService[T]) Get(ctx context.Context, id string) (*T, error) {
	row, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return row, nil
}

func (s *ResourceService[T]) List(ctx context.Context, q model.PageQuery, filter db.Filter) (model.Page[T], error) {
	q = q.Normalize(s.defaultLimit)
	rows, total, err := s.store.List(ctx, q.Skip, q.Limit, filter)
	if err != nil {
		return model.Page[T]{}, mapStoreError(err)
	}
	return model.NewPage(rows, total, q.Limit), nil
}

func (s *ResourceService[T]) Create(ctx context.Context, payload model.Creator[T]) (*T, error) {
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	row := payload.Build()
	if err := s.store.Create(ctx, row); err != nil {
		return nil, mapStoreError(err)
	}
	return row, nil
}

// Update loads the row, applies the non-null fields of payload and writes
// back only those columns.
func (s *ResourceService[T]) Update(ctx context.Context, id string, payload model.Editor[T]) (*T, error) {
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	row, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	columns := payload.Apply(row)
	if err := s.store.Update(ctx, row, columns); err != nil {
		return nil, mapStoreError(err)
	}
	return row, nil
}

func (s *ResourceService[T]) Delete(ctx context.Context, id string) error {
	return mapStoreError(s.store.Delete(ctx, id))
}

func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, db.ErrDuplicate):
		return ErrConflict
	default:
		return err
	}
}
