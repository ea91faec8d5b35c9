package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/spacebook/backend/internal/db"
	"github.com/spacebook/backend/internal/model"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// AccountStore is the account directory the auth flows depend on.
// db.AccountRepository implements it.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByID(ctx context.Context, id string) (*model.Account, error)
	Create(ctx context.Context, account *model.Account) error
}

type AuthDeps struct {
	Accounts  AccountStore
	Hasher    *Hasher
	Policy    *PasswordPolicy
	Generator *PasswordGenerator
	Tokens    *TokenService

	// Optional; nil disables the federated routes.
	Verifier  IdentityVerifier
	Exchanger CodeExchanger

	MaxGenerationAttempts int
}

type AuthService struct {
	accounts    AccountStore
	hasher      *Hasher
	policy      *PasswordPolicy
	generator   *PasswordGenerator
	tokens      *TokenService
	verifier    IdentityVerifier
	exchanger   CodeExchanger
	maxAttempts int

	// compared against on unknown emails so login timing does not reveal
	// whether the account exists
	dummyHash string
}

func NewAuthService(deps AuthDeps) (*AuthService, error) {
	if deps.Accounts == nil || deps.Hasher == nil || deps.Policy == nil || deps.Generator == nil || deps.Tokens == nil {
		return nil, fmt.Errorf("%w: missing auth dependency", ErrMisconfigured)
	}
	if deps.MaxGenerationAttempts <= 0 {
		return nil, fmt.Errorf("%w: PASSWORD_MAX_ATTEMPTS must be positive", ErrMisconfigured)
	}

	dummy, err := deps.Hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &AuthService{
		accounts:    deps.Accounts,
		hasher:      deps.Hasher,
		policy:      deps.Policy,
		generator:   deps.Generator,
		tokens:      deps.Tokens,
		verifier:    deps.Verifier,
		exchanger:   deps.Exchanger,
		maxAttempts: deps.MaxGenerationAttempts,
		dummyHash:   dummy,
	}, nil
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func (s *AuthService) FederationEnabled() bool {
	return s.verifier != nil
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.Account, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !IsValidEmail(email) {
		return nil, fmt.Errorf("%w: %q is not a valid email address", ErrInvalidEmail, req.Email)
	}
	if len(req.Password) > MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrWeakPassword, MaxPasswordBytes)
	}
	if err := s.policy.Check(req.Password); err != nil {
		return nil, err
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = email
	}
	account := &model.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		AuthProvider: model.AuthProviderLocal,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return account, nil
}

// Login checks email/password and issues a PrimaryTokenTTL token. Unknown
// email and wrong password yield the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(account.Email, account.ID, PrimaryTokenTTL)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   model.TokenTypeBearer,
		Email:       account.Email,
		UserID:      account.ID,
		IsAdmin:     account.IsAdmin,
	}, nil
}

// Validate checks a bearer token. It is the gate for every protected route.
func (s *AuthService) Validate(token string) (*model.TokenClaims, error) {
	return s.tokens.Validate(token)
}

func (s *AuthService) Account(ctx context.Context, id string) (*model.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

// CheckOwner enforces that the authenticated caller is the owner named by
// ownerID.
func CheckOwner(claims *model.TokenClaims, ownerID string) error {
	if claims == nil {
		return ErrUnauthorized
	}
	if claims.UserID == "" || claims.UserID != ownerID {
		return ErrForbidden
	}
	return nil
}
