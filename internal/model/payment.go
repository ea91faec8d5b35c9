package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type PaymentType string

const (
	PaymentForBooking PaymentType = "booking"
	PaymentForRental  PaymentType = "rental"
)

func (t PaymentType) Valid() bool {
	return t == PaymentForBooking || t == PaymentForRental
}

// Payment is recorded against either a booking or a rental, as named by Type.
type Payment struct {
	bun.BaseModel `bun:"table:payments,alias:p"`

	ID          string      `bun:"id,pk,type:varchar(60)" json:"id"`
	BookingID   *string     `bun:"booking_id,type:varchar(60)" json:"booking_id"`
	RentalID    *string     `bun:"rental_id,type:varchar(60)" json:"rental_id"`
	Type        PaymentType `bun:"type,notnull,type:varchar(16)" json:"type"`
	PaymentDate time.Time   `bun:"payment_date,notnull" json:"payment_date"`
	PaymentRef  string      `bun:"payment_ref,notnull,type:varchar(255)" json:"payment_ref"`
	Amount      float64     `bun:"amount,notnull,type:numeric(10,2)" json:"amount"`
}

type PaymentCreate struct {
	BookingID   *string     `json:"booking_id"`
	RentalID    *string     `json:"rental_id"`
	Type        PaymentType `json:"type"`
	PaymentDate time.Time   `json:"payment_date"`
	PaymentRef  string      `json:"payment_ref"`
	Amount      float64     `json:"amount"`
}

func (r PaymentCreate) Validate() error {
	if !r.Type.Valid() {
		return invalid("type", "must be booking or rental")
	}
	if r.Type == PaymentForBooking && blank(r.BookingID) {
		return invalid("booking_id", "is required for booking payments")
	}
	if r.Type == PaymentForRental && blank(r.RentalID) {
		return invalid("rental_id", "is required for rental payments")
	}
	if r.PaymentDate.IsZero() {
		return invalid("payment_date", "is required")
	}
	if strings.TrimSpace(r.PaymentRef) == "" || len(r.PaymentRef) > 255 {
		return invalid("payment_ref", "must be 1-255 characters")
	}
	if r.Amount <= 0 {
		return invalid("amount", "must be greater than zero")
	}
	return nil
}

func (r PaymentCreate) Build() *Payment {
	return &Payment{
		ID:          uuid.NewString(),
		BookingID:   r.BookingID,
		RentalID:    r.RentalID,
		Type:        r.Type,
		PaymentDate: r.PaymentDate,
		PaymentRef:  r.PaymentRef,
		Amount:      r.Amount,
	}
}

type PaymentEdit struct {
	BookingID   *string      `json:"booking_id"`
	RentalID    *string      `json:"rental_id"`
	Type        *PaymentType `json:"type"`
	PaymentDate *time.Time   `json:"payment_date"`
	PaymentRef  *string      `json:"payment_ref"`
	Amount      *float64     `json:"amount"`
}

func (r PaymentEdit) Validate() error {
	if r.Type != nil && !r.Type.Valid() {
		return invalid("type", "must be booking or rental")
	}
	if r.PaymentRef != nil && (strings.TrimSpace(*r.PaymentRef) == "" || len(*r.PaymentRef) > 255) {
		return invalid("payment_ref", "must be 1-255 characters")
	}
	if r.Amount != nil && *r.Amount <= 0 {
		return invalid("amount", "must be greater than zero")
	}
	return nil
}

func (r PaymentEdit) Apply(p *Payment) []string {
	var cols []string
	if r.BookingID != nil {
		p.BookingID = r.BookingID
		cols = append(cols, "booking_id")
	}
	if r.RentalID != nil {
		p.RentalID = r.RentalID
		cols = append(cols, "rental_id")
	}
	if r.Type != nil {
		p.Type = *r.Type
		cols = append(cols, "type")
	}
	if r.PaymentDate != nil {
		p.PaymentDate = *r.PaymentDate
		cols = append(cols, "payment_date")
	}
	if r.PaymentRef != nil {
		p.PaymentRef = *r.PaymentRef
		cols = append(cols, "payment_ref")
	}
	if r.Amount != nil {
		p.Amount = *r.Amount
		cols = append(cols, "amount")
	}
	return cols
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
