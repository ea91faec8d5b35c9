package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	return s == BookingActive || s == BookingCancelled
}

type Booking struct {
	bun.BaseModel `bun:"table:bookings,alias:b"`

	ID             string        `bun:"id,pk,type:varchar(36)" json:"id"`
	UserID         string        `bun:"user_id,notnull,type:varchar(60)" json:"user_id"`
	SpaceID        string        `bun:"space_id,notnull,type:varchar(60)" json:"space_id"`
	StartDate      time.Time     `bun:"start_date,notnull" json:"start_date"`
	EndDate        *time.Time    `bun:"end_date" json:"end_date"`
	Status         BookingStatus `bun:"status,notnull,type:varchar(16),default:'active'" json:"status"`
	SpecialRemarks *string       `bun:"special_remarks" json:"special_remarks"`
	CreatedAt      time.Time     `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

type BookingCreate struct {
	UserID         string        `json:"user_id"`
	SpaceID        string        `json:"space_id"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        *time.Time    `json:"end_date"`
	Status         BookingStatus `json:"status"`
	SpecialRemarks *string       `json:"special_remarks"`
}

func (r BookingCreate) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return invalid("user_id", "is required")
	}
	if strings.TrimSpace(r.SpaceID) == "" {
		return invalid("space_id", "is required")
	}
	if r.StartDate.IsZero() {
		return invalid("start_date", "is required")
	}
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return invalid("end_date", "must not be before start_date")
	}
	if r.Status != "" && !r.Status.Valid() {
		return invalid("status", "must be active or cancelled")
	}
	return nil
}

func (r BookingCreate) Build() *Booking {
	status := r.Status
	if status == "" {
		status = BookingActive
	}
	return &Booking{
		ID:             uuid.NewString(),
		UserID:         r.UserID,
		SpaceID:        r.SpaceID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Status:         status,
		SpecialRemarks: r.SpecialRemarks,
	}
}

type BookingEdit struct {
	UserID         *string        `json:"user_id"`
	SpaceID        *string        `json:"space_id"`
	StartDate      *time.Time     `json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`
	Status         *BookingStatus `json:"status"`
	SpecialRemarks *string        `json:"special_remarks"`
}

func (r BookingEdit) Validate() error {
	if r.UserID != nil && strings.TrimSpace(*r.UserID) == "" {
		return invalid("user_id", "cannot be blank")
	}
	if r.SpaceID != nil && strings.TrimSpace(*r.SpaceID) == "" {
		return invalid("space_id", "cannot be blank")
	}
	if r.Status != nil && !r.Status.Valid() {
		return invalid("status", "must be active or cancelled")
	}
	return nil
}

func (r BookingEdit) Apply(b *Booking) []string {
	var cols []string
	if r.UserID != nil {
		b.UserID = *r.UserID
		cols = append(cols, "user_id")
	}
	if r.SpaceID != nil {
		b.SpaceID = *r.SpaceID
		cols = append(cols, "space_id")
	}
	if r.StartDate != nil {
		b.StartDate = *r.StartDate
		cols = append(cols, "start_date")
	}
	if r.EndDate != nil {
		b.EndDate = r.EndDate
		cols = append(cols, "end_date")
	}
	if r.Status != nil {
		b.Status = *r.Status
		cols = append(cols, "status")
	}
	if r.SpecialRemarks != nil {
		b.SpecialRemarks = r.SpecialRemarks
		cols = append(cols, "special_remarks")
	}
	return cols
}
