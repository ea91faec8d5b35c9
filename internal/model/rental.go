package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Rental struct {
	bun.BaseModel `bun:"table:rentals,alias:r"`

	ID             string     `bun:"id,pk,type:varchar(60)" json:"id"`
	UserID         string     `bun:"user_id,notnull,type:varchar(60)" json:"user_id"`
	SpaceID        string     `bun:"space_id,notnull,type:varchar(60)" json:"space_id"`
	StartDate      time.Time  `bun:"start_date,notnull" json:"start_date"`
	EndDate        *time.Time `bun:"end_date" json:"end_date"`
	MonthlyFee     float64    `bun:"monthly_fee,notnull,type:numeric(10,2)" json:"monthly_fee"`
	SpecialRemarks *string    `bun:"special_remarks" json:"special_remarks"`
	CreatedAt      time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

type RentalCreate struct {
	UserID         string     `json:"user_id"`
	SpaceID        string     `json:"space_id"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	MonthlyFee     float64    `json:"monthly_fee"`
	SpecialRemarks *string    `json:"special_remarks"`
}

func (r RentalCreate) Validate() error {
	if strings.TrimSpace(r.UserID) == "" || len(r.UserID) > 60 {
		return invalid("user_id", "must be 1-60 characters")
	}
	if strings.TrimSpace(r.SpaceID) == "" || len(r.SpaceID) > 60 {
		return invalid("space_id", "must be 1-60 characters")
	}
	if r.StartDate.IsZero() {
		return invalid("start_date", "is required")
	}
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return invalid("end_date", "must not be before start_date")
	}
	if r.MonthlyFee <= 0 {
		return invalid("monthly_fee", "must be greater than zero")
	}
	return nil
}

func (r RentalCreate) Build() *Rental {
	return &Rental{
		ID:             uuid.NewString(),
		UserID:         r.UserID,
		SpaceID:        r.SpaceID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		MonthlyFee:     r.MonthlyFee,
		SpecialRemarks: r.SpecialRemarks,
	}
}

type RentalEdit struct {
	UserID         *string    `json:"user_id"`
	SpaceID        *string    `json:"space_id"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	MonthlyFee     *float64   `json:"monthly_fee"`
	SpecialRemarks *string    `json:"special_remarks"`
}

func (r RentalEdit) Validate() error {
	if r.UserID != nil && strings.TrimSpace(*r.UserID) == "" {
		return invalid("user_id", "cannot be blank")
	}
	if r.SpaceID != nil && strings.TrimSpace(*r.SpaceID) == "" {
		return invalid("space_id", "cannot be blank")
	}
	if r.MonthlyFee != nil && *r.MonthlyFee <= 0 {
		return invalid("monthly_fee", "must be greater than zero")
	}
	return nil
}

func (r RentalEdit) Apply(rt *Rental) []string {
	var cols []string
	if r.UserID != nil {
		rt.UserID = *r.UserID
		cols = append(cols, "user_id")
	}
	if r.SpaceID != nil {
		rt.SpaceID = *r.SpaceID
		cols = append(cols, "space_id")
	}
	if r.StartDate != nil {
		rt.StartDate = *r.StartDate
		cols = append(cols, "start_date")
	}
	if r.EndDate != nil {
		rt.EndDate = r.EndDate
		cols = append(cols, "end_date")
	}
	if r.MonthlyFee != nil {
		rt.MonthlyFee = *r.MonthlyFee
		cols = append(cols, "monthly_fee")
	}
	if r.SpecialRemarks != nil {
		rt.SpecialRemarks = r.SpecialRemarks
		cols = append(cols, "special_remarks")
	}
	return cols
}
