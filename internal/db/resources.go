package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Filter narrows a list query. A nil Filter lists everything.
type Filter func(q *bun.SelectQuery) *bun.SelectQuery

// Store is a generic repository over one bun model keyed by a string "id".
type Store[T any] struct {
	db *bun.DB
}

func NewStore[T any](db *bun.DB) *Store[T] {
	return &Store[T]{db: db}
}

func (s *Store[T]) Get(ctx context.Context, id string) (*T, error) {
	row := new(T)
	err := s.db.NewSelect().
		Model(row).
		Where("?TableAlias.id = ?", id).
		Scan(ctx)
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %T: %w", row, err)
	}
	return row, nil
}

// List returns one page ordered by id together with the total
// number of rows matching filter.
func (s *Store[T]) List(ctx context.Context, skip, limit int, filter Filter) ([]T, int, error) {
	var rows []T
	q := s.db.NewSelect().Model(&rows)
	if filter != nil {
		q = filter(q)
	}
	total, err := q.
		OrderExpr("?TableAlias.id").
		Offset(skip).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %T: %w", rows, err)
	}
	return rows, total, nil
}

func (s *Store[T]) Create(ctx context.Context, row *T) error {
	_, err := s.db.NewInsert().
		Model(row).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create %T: %w", row, translate(err))
	}
	return nil
}

// Update writes only the named columns of row, matched by primary key.
func (s *Store[T]) Update(ctx context.Context, row *T, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	res, err := s.db.NewUpdate().
		Model(row).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update %T: %w", row, translate(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().
		Model((*T)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete: %w", translate(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
