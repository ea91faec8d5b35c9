package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spacebook/backend/internal/db"
	"github.com/spacebook/backend/internal/model"
)

// IdentityClaims are the fields taken from a verified provider assertion.
type IdentityClaims struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// IdentityVerifier checks a provider-issued ID token (signature, audience,
// issuer, expiry) and returns its claims.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*IdentityClaims, error)
}

// CodeExchanger trades an OAuth2 authorization code for a raw ID token.
type CodeExchanger interface {
	Exchange(ctx context.Context, code, redirectURI string) (string, error)
}

// AuthenticateExternal verifies a provider assertion, resolves or creates the
// matching local account and issues a short-lived local token.
func (s *AuthService) AuthenticateExternal(ctx context.Context, assertion string) (*model.FederatedTokenResponse, error) {
	if s.verifier == nil {
		return nil, ErrFederationDisabled
	}
	assertion = strings.TrimSpace(assertion)
	if assertion == "" {
		return nil, ErrInvalidAssertion
	}

	identity, err := s.verifier.Verify(ctx, assertion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssertion, err)
	}
	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: assertion carries no email", ErrInvalidAssertion)
	}

	account, err := s.resolveFederatedAccount(ctx, email, identity.Name)
	if err != nil {
		return nil, err
	}

	token, _, err := s.tokens.Issue(account.Email, account.ID, FederatedTokenTTL)
	if err != nil {
		return nil, err
	}
	return &model.FederatedTokenResponse{
		AccessToken: token,
		TokenType:   model.TokenTypeBearer,
	}, nil
}

// ExchangeCode completes the authorization-code flow and then behaves like
// AuthenticateExternal with the returned ID token.
func (s *AuthService) ExchangeCode(ctx context.Context, code, redirectURI string) (*model.FederatedTokenResponse, error) {
	if s.exchanger == nil || s.verifier == nil {
		return nil, ErrFederationDisabled
	}
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	rawIDToken, err := s.exchanger.Exchange(ctx, code, redirectURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssertion, err)
	}
	return s.AuthenticateExternal(ctx, rawIDToken)
}

func (s *AuthService) resolveFederatedAccount(ctx context.Context, email, name string) (*model.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	password, err := s.generator.Generate(s.maxAttempts)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(name)
	if username == "" {
		username = email
	}
	account = &model.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		AuthProvider: model.AuthProviderGoogle,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			// lost a race with a concurrent first login
			return s.accounts.FindByEmail(ctx, email)
		}
		return nil, err
	}
	return account, nil
}
