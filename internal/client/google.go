// Google sign-in client
//
// Env:
//   - GOOGLE_CLIENT_ID: expected audience of ID tokens (required to enable)
//   - GOOGLE_CLIENT_SECRET: enables the authorization-code exchange
//   - GOOGLE_ISSUER (default: https://accounts.google.com)
//
// Signing keys come from Google's JWKS endpoint and are cached by go-oidc.

package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spacebook/backend/internal/config"
	"github.com/spacebook/backend/internal/service"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
	googleJWKSURL  = "https://www.googleapis.com/oauth2/v3/certs"
)

var errCodeExchangeDisabled = errors.New("google code exchange requires GOOGLE_CLIENT_SECRET")

// GoogleClient verifies Google ID tokens and, when a client secret is
// configured, redeems authorization codes for them.
type GoogleClient struct {
	verifier *oidc.IDTokenVerifier
	oauth    *oauth2.Config
}

type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

func NewGoogleClient(ctx context.Context, cfg config.GoogleConfig) (*GoogleClient, error) {
	if strings.TrimSpace(cfg.ClientID) == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID is required")
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "https://accounts.google.com"
	}

	provider := (&oidc.ProviderConfig{
		IssuerURL:  issuer,
		AuthURL:    googleAuthURL,
		TokenURL:   googleTokenURL,
		JWKSURL:    googleJWKSURL,
		Algorithms: []string{oidc.RS256},
	}).NewProvider(ctx)

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})

	var oauthConf *oauth2.Config
	if cfg.ClientSecret != "" {
		oauthConf = &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		}
	}
	return newGoogleClient(verifier, oauthConf), nil
}

func newGoogleClient(verifier *oidc.IDTokenVerifier, oauthConf *oauth2.Config) *GoogleClient {
	return &GoogleClient{verifier: verifier, oauth: oauthConf}
}

// CanExchange reports whether authorization codes can be redeemed.
func (g *GoogleClient) CanExchange() bool {
	return g.oauth != nil
}

// Verify checks signature, issuer, audience and expiry of rawIDToken.
func (g *GoogleClient) Verify(ctx context.Context, rawIDToken string) (*service.IdentityClaims, error) {
	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}

	var claims googleClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decode id token claims: %w", err)
	}

	return &service.IdentityClaims{
		Subject:       idToken.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
	}, nil
}

func (g *GoogleClient) Exchange(ctx context.Context, code, redirectURI string) (string, error) {
	if g.oauth == nil {
		return "", errCodeExchangeDisabled
	}

	conf := *g.oauth
	conf.RedirectURL = redirectURI
	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", fmt.Errorf("token response carries no id_token")
	}
	return rawIDToken, nil
}
