package model

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"

	TokenTypeBearer = "bearer"
)

// Account is a row of the users table. PasswordHash is never serialized.
type Account struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string    `bun:"id,pk,type:varchar(36)" json:"id"`
	Username     string    `bun:"username,type:varchar(100)" json:"username"`
	Email        string    `bun:"email,unique,notnull,type:varchar(100)" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull,type:varchar(100)" json:"-"`
	IsAdmin      bool      `bun:"is_admin,notnull,default:false" json:"is_admin"`
	AuthProvider string    `bun:"auth_provider,notnull,type:varchar(20),default:'local'" json:"auth_provider"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// TokenClaims is the validated content of an access token.
type TokenClaims struct {
	Email     string
	UserID    string
	ExpiresAt time.Time
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest mirrors the OAuth2 password grant form; username carries the email.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type GoogleAuthRequest struct {
	Token string `form:"token" json:"token"`
}

type GoogleCodeRequest struct {
	Code        string `json:"code" binding:"required"`
	RedirectURI string `json:"redirect_uri" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Email       string `json:"email"`
	UserID      string `json:"userid"`
	IsAdmin     bool   `json:"is_admin"`
}

type FederatedTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AccountView struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsAdmin      bool      `json:"is_admin"`
	AuthProvider string    `json:"auth_provider"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewAccountView(a *Account) AccountView {
	return AccountView{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		IsAdmin:      a.IsAdmin,
		AuthProvider: a.AuthProvider,
		CreatedAt:    a.CreatedAt,
	}
}

type MeResponse struct {
	UserID string `json:"userid"`
	Email  string `json:"email"`
}
