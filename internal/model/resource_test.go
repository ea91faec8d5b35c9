package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		limit     int
		wantPages int
	}{
		{name: "empty", total: 0, limit: 10, wantPages: 0},
		{name: "exact", total: 20, limit: 10, wantPages: 2},
		{name: "remainder", total: 21, limit: 10, wantPages: 3},
		{name: "single", total: 1, limit: 100, wantPages: 1},
		{name: "zero limit", total: 5, limit: 0, wantPages: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage[Space](nil, tt.total, tt.limit)
			assert.Equal(t, tt.total, page.TotalRecords)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.NotNil(t, page.Records)
		})
	}
}

func TestPageQueryNormalize(t *testing.T) {
	assert.Equal(t, PageQuery{Skip: 0, Limit: 20}, PageQuery{Skip: -1}.Normalize(20))
	assert.Equal(t, PageQuery{Skip: 5, Limit: MaxPageLimit}, PageQuery{Skip: 5, Limit: 500}.Normalize(10))
	assert.Equal(t, PageQuery{Skip: 0, Limit: 7}, PageQuery{Limit: 7}.Normalize(10))
}

func TestBookingCreate(t *testing.T) {
	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)

	req := BookingCreate{UserID: "u1", SpaceID: "s1", StartDate: start}
	require.NoError(t, req.Validate())
	assert.Equal(t, BookingActive, req.Build().Status)

	req.EndDate = &before
	var verr *ValidationError
	require.True(t, errors.As(req.Validate(), &verr))
	assert.Equal(t, "end_date", verr.Field)

	req.EndDate = nil
	req.Status = "pending"
	require.Error(t, req.Validate())
}

func TestPaymentCreateRequiresMatchingReference(t *testing.T) {
	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	bookingID := "b1"

	ok := PaymentCreate{Type: PaymentForBooking, BookingID: &bookingID, PaymentDate: date, PaymentRef: "ref-1", Amount: 10}
	require.NoError(t, ok.Validate())

	missing := PaymentCreate{Type: PaymentForRental, BookingID: &bookingID, PaymentDate: date, PaymentRef: "ref-1", Amount: 10}
	var verr *ValidationError
	require.True(t, errors.As(missing.Validate(), &verr))
	assert.Equal(t, "rental_id", verr.Field)

	badAmount := ok
	badAmount.Amount = 0
	require.Error(t, badAmount.Validate())
}

func TestRentalEditApply(t *testing.T) {
	rental := &Rental{ID: "r1", UserID: "u1", MonthlyFee: 100}
	fee := 150.0
	remarks := "corner desk"

	edit := RentalEdit{MonthlyFee: &fee, SpecialRemarks: &remarks}
	require.NoError(t, edit.Validate())
	cols := edit.Apply(rental)

	assert.Equal(t, []string{"monthly_fee", "special_remarks"}, cols)
	assert.Equal(t, 150.0, rental.MonthlyFee)
	assert.Equal(t, "u1", rental.UserID)
	assert.Empty(t, RentalEdit{}.Apply(rental))
}

func TestNotificationEditValidate(t *testing.T) {
	blankMsg := "  "
	require.Error(t, NotificationEdit{Message: &blankMsg}.Validate())

	read := true
	n := &Notification{ID: "n1", Message: "hello"}
	assert.Equal(t, []string{"read_status"}, NotificationEdit{ReadStatus: &read}.Apply(n))
	assert.True(t, n.ReadStatus)
}

func TestAccountViewHidesHash(t *testing.T) {
	view := NewAccountView(&Account{ID: "u1", Email: "a@b.com", PasswordHash: "$2a$secret", AuthProvider: AuthProviderLocal})
	assert.Equal(t, "u1", view.ID)
	assert.Equal(t, AuthProviderLocal, view.AuthProvider)
}
