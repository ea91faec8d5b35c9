package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spacebook/backend/internal/db"
	"github.com/spacebook/backend/internal/model"
	"github.com/spacebook/backend/internal/service"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "handler-test-secret"

type memAccounts struct {
	mu      sync.Mutex
	byEmail map[string]*model.Account
}

func (m *memAccounts) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.byEmail[email]; ok {
		return a, nil
	}
	return nil, db.ErrNotFound
}

func (m *memAccounts) FindByID(ctx context.Context, id string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memAccounts) Create(ctx context.Context, account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[account.Email]; ok {
		return db.ErrDuplicate
	}
	m.byEmail[account.Email] = account
	return nil
}

// memStore keeps rows in insertion order. Filters are recorded, not applied.
type memStore[T any] struct {
	mu         sync.Mutex
	rows       map[string]*T
	idOf       func(*T) string
	unique     func(*T) string
	lastFilter db.Filter
	lastSkip   int
	lastLimit  int
}

func newMemStore[T any](idOf func(*T) string) *memStore[T] {
	return &memStore[T]{rows: make(map[string]*T), idOf: idOf}
}

func (s *memStore[T]) Get(ctx context.Context, id string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *memStore[T]) List(ctx context.Context, skip, limit int, filter db.Filter) ([]T, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter, s.lastSkip, s.lastLimit = filter, skip, limit

	ids := make([]string, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []T
	for i, id := range ids {
		if i < skip || len(out) >= limit {
			continue
		}
		out = append(out, *s.rows[id])
	}
	return out, len(ids), nil
}

func (s *memStore[T]) Create(ctx context.Context, row *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unique != nil {
		for _, existing := range s.rows {
			if s.unique(existing) == s.unique(row) {
				return db.ErrDuplicate
			}
		}
	}
	s.rows[s.idOf(row)] = row
	return nil
}

func (s *memStore[T]) Update(ctx context.Context, row *T, columns []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.idOf(row)
	if _, ok := s.rows[id]; !ok {
		return db.ErrNotFound
	}
	s.rows[id] = row
	return nil
}

func (s *memStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

type stubLimiter struct {
	allowed bool
	err     error
}

func (l stubLimiter) Allow(context.Context, string, string) (bool, error) {
	return l.allowed, l.err
}

type testServer struct {
	router        *gin.Engine
	accounts      *memAccounts
	tokens        *service.TokenService
	spaces        *memStore[model.Space]
	bookings      *memStore[model.Booking]
	rentals       *memStore[model.Rental]
	notifications *memStore[model.Notification]
}

func newTestServer(t *testing.T, limiter stubLimiter) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dict := service.NewDictionary([]string{"password", "dragon", "sunshine"})
	tokens, err := service.NewTokenService(testSecret)
	require.NoError(t, err)

	accounts := &memAccounts{byEmail: make(map[string]*model.Account)}
	authSvc, err := service.NewAuthService(service.AuthDeps{
		Accounts:              accounts,
		Hasher:                service.NewHasher(bcrypt.MinCost),
		Policy:                service.NewPasswordPolicy(dict),
		Generator:             service.NewPasswordGenerator(dict),
		Tokens:                tokens,
		MaxGenerationAttempts: 100,
	})
	require.NoError(t, err)

	spaces := newMemStore(func(s *model.Space) string { return s.ID })
	spaces.unique = func(s *model.Space) string { return s.Name }
	bookings := newMemStore(func(b *model.Booking) string { return b.ID })
	rentals := newMemStore(func(r *model.Rental) string { return r.ID })
	payments := newMemStore(func(p *model.Payment) string { return p.ID })
	notifications := newMemStore(func(n *model.Notification) string { return n.ID })

	router := NewRouter(RouterDeps{
		Auth: authSvc,
		Resources: Resources{
			Spaces:        service.NewResourceService[model.Space](spaces, spacesPageLimit),
			Bookings:      service.NewResourceService[model.Booking](bookings, model.DefaultPageLimit),
			Rentals:       service.NewResourceService[model.Rental](rentals, model.DefaultPageLimit),
			Payments:      service.NewResourceService[model.Payment](payments, model.DefaultPageLimit),
			Notifications: service.NewResourceService[model.Notification](notifications, model.DefaultPageLimit),
		},
		Limiter:        limiter,
		AllowedOrigins: []string{"http://localhost:3000"},
	})

	return &testServer{
		router:        router,
		accounts:      accounts,
		tokens:        tokens,
		spaces:        spaces,
		bookings:      bookings,
		rentals:       rentals,
		notifications: notifications,
	}
}

func (s *testServer) token(t *testing.T, userID string) string {
	t.Helper()
	tok, _, err := s.tokens.Issue(userID+"@example.com", userID, service.PrimaryTokenTTL)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
