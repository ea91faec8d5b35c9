package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/spacebook/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t, stubLimiter{allowed: true})

	for _, path := range []string{"/spaces", "/bookings", "/rentals", "/payments", "/notifications"} {
		w := srv.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestSpaceCRUD(t *testing.T) {
	srv := newTestServer(t, stubLimiter{allowed: true})
	token := srv.token(t, "user-1")

	w := srv.do(t, http.MethodPost, "/spaces", model.SpaceCreate{
		Name:    "Loft",
		Type:    model.SpacePrivateOffice,
		Fee:     25,
		FeeType: model.FeeHourly,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[model.Space](t, w)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, []string{}, created.Photos)

	w = srv.do(t, http.MethodPost, "/spaces", model.SpaceCreate{
		Name:    "Loft",
		Type:    model.SpaceCommonArea,
		FeeType: model.FeeDaily,
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Record already exists", decode[model.ErrorResponse](t, w).Error)

	w = srv.do(t, http.MethodGet, "/spaces/"+created.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Loft", decode[model.Space](t, w).Name)

	newName := "Penthouse"
	w = srv.do(t, http.MethodPut, "/spaces/"+created.ID, model.SpaceEdit{Name: &newName}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[model.Space](t, w)
	assert.Equal(t, "Penthouse", updated.Name)
	assert.Equal(t, model.SpacePrivateOffice, updated.Type)

	w = srv.do(t, http.MethodDelete, "/spaces/"+created.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/spaces/"+created.ID, nil, token)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Record not found", decode[model.ErrorResponse](t, w).Error)

	w = srv.do(t, http.MethodDelete, "/spaces/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodPut, "/spaces/missing", model.SpaceEdit{Name: &newName}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSpaceValidation(t *testing.T) {
	srv := newTestServer(t, stubLimiter{allowed: true})
	token := srv.token(t, "user-1")

	w := srv.do(t, http.MethodPost, "/spaces", model.SpaceCreate{Name: "Hall", Type: "garage", FeeType: model.FeeDaily}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[model.ErrorResponse](t, w).Error, "type")

	w = srv.do(t, http.MethodPost, "/spaces", "not an object", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSpaceListPagination(t *testing.T) {
	srv := newTestServer(t, stubLimiter{allowed: true})
	token := srv.token(t, "user-1")

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		w := srv.do(t, http.MethodPost, "/spaces", model.SpaceCreate{Name: name, Type: model.SpaceEventSpace, FeeType: model.FeeDaily}, token)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := srv.do(t, http.MethodGet, "/spaces?skip=1&limit=2", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[model.Page[model.Space]](t, w)
	assert.Equal(t, 5, page.TotalRecords)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Records, 2)
	assert.Nil(t, srv.spaces.lastFilter)

	w = srv.do(t, http.MethodGet, "/spaces?type=event_space", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, srv.spaces.lastFilter)
	assert.Equal(t, spacesPageLimit, srv.spaces.lastLimit)

	w = srv.do(t, http.MethodGet, "/spaces?limit=1000", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.MaxPageLimit, srv.spaces.lastLimit)

	w = srv.do(t, http.MethodGet, "/spaces?skip=abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingsByUserRequiresOwner(t *testing.T) {
	srv := newTestServer(t, stubLimiter{allowed: true})
	token := srv.token(t, "user-1")

	w := srv.do(t, http.MethodPost, "/bookings", model.BookingCreate{
		UserID:    "user-1",
		SpaceID:   "space-1",
		StartDate: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, model.BookingActive, decode[model.Booking](t, w).Status)

	w = srv.do(t, http.MethodGet, "/bookings/user/user-2", nil, token)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodGet, "/bookings/user/user-1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, srv.bookings.lastFilter)
	assert.Equal(t, model.DefaultPageLimit, srv.bookings.lastLimit)
}

func TestRentalSearch(t *testing.T) {
	srv := newTestServer(t, stubLimiter{allowed: true})
	token := srv.token(t, "user-1")

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantFilter bool
	}{
		{"no bounds", "", http.StatusOK, false},
		{"date bounds", "?start_date=2026-01-01&end_date=2026-12-31", http.StatusOK, true},
		{"timestamp bound", "?start_date=2026-01-01T00:00:00Z", http.StatusOK, true},
		{"bad start", "?start_date=yesterday", http.StatusBadRequest, false},
		{"bad end", "?end_date=31/12/2026", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv.rentals.lastFilter = nil
			w := srv.do(t, http.MethodGet, "/rentals/search"+tt.query, nil, token)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantFilter, srv.rentals.lastFilter != nil)
		})
	}
}

func TestNotificationSearch(t *testing.T) {
	srv := newTestServer(t, stubLimiter{allowed: true})
	token := srv.token(t, "user-1")

	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"valid", "?user_id=user-1&read_status=false", http.StatusOK},
		{"missing user", "?read_status=true", http.StatusBadRequest},
		{"missing status", "?user_id=user-1", http.StatusBadRequest},
		{"bad status", "?user_id=user-1&read_status=maybe", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodGet, "/notifications/search"+tt.query, nil, token)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestPaymentValidation(t *testing.T) {
	srv := newTestServer(t, stubLimiter{allowed: true})
	token := srv.token(t, "user-1")

	w := srv.do(t, http.MethodPost, "/payments", model.PaymentCreate{
		Type:        model.PaymentForRental,
		PaymentDate: time.Now().UTC(),
		PaymentRef:  "INV-1",
		Amount:      100,
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[model.ErrorResponse](t, w).Error, "rental_id")

	rentalID := "rental-1"
	w = srv.do(t, http.MethodPost, "/payments", model.PaymentCreate{
		RentalID:    &rentalID,
		Type:        model.PaymentForRental,
		PaymentDate: time.Now().UTC(),
		PaymentRef:  "INV-1",
		Amount:      100,
	}, token)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
