package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/spacebook/backend/internal/model"
	"github.com/uptrace/bun"
)

// EnsureSchema creates every table the service needs when it is missing.
// Child tables reference users and spaces, so order matters.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	tables := []struct {
		model any
		fks   []string
	}{
		{model: (*model.Account)(nil)},
		{model: (*model.Space)(nil)},
		{model: (*model.Booking)(nil), fks: []string{
			`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
			`("space_id") REFERENCES "spaces" ("id") ON DELETE CASCADE`,
		}},
		{model: (*model.Rental)(nil), fks: []string{
			`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
			`("space_id") REFERENCES "spaces" ("id") ON DELETE CASCADE`,
		}},
		{model: (*model.Payment)(nil), fks: []string{
			`("booking_id") REFERENCES "bookings" ("id") ON DELETE SET NULL`,
			`("rental_id") REFERENCES "rentals" ("id") ON DELETE SET NULL`,
		}},
		{model: (*model.Notification)(nil), fks: []string{
			`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
		}},
	}

	for _, t := range tables {
		q := p.DB.NewCreateTable().Model(t.model).IfNotExists()
		for _, fk := range t.fks {
			q = q.ForeignKey(fk)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", t.model, err)
		}
	}
	return nil
}

// AccountRepository is the bun-backed account directory.
type AccountRepository struct {
	db *bun.DB
}

func NewAccountRepository(db *bun.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByEmail matches case-insensitively; emails are stored lowercased.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	account := new(model.Account)
	err := r.db.NewSelect().
		Model(account).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*model.Account, error) {
	account := new(model.Account)
	err := r.db.NewSelect().
		Model(account).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account, nil
}

// Create inserts the account and fills server-side defaults back into it.
func (r *AccountRepository) Create(ctx context.Context, account *model.Account) error {
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	_, err := r.db.NewInsert().
		Model(account).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}
