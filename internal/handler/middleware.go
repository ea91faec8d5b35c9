package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spacebook/backend/internal/model"
	"github.com/spacebook/backend/internal/ratelimit"
	"github.com/spacebook/backend/internal/service"
)

const claimsKey = "token_claims"

// TokenValidator is the bearer-token gate. service.AuthService and
// service.TokenService both satisfy it.
type TokenValidator interface {
	Validate(token string) (*model.TokenClaims, error)
}

func AuthMiddleware(tokens TokenValidator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.Header("WWW-Authenticate", "Bearer")
			writeError(c, logger, service.ErrUnauthorized)
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(token))
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			writeError(c, logger, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func GetClaims(c *gin.Context) *model.TokenClaims {
	if value, ok := c.Get(claimsKey); ok {
		if claims, ok := value.(*model.TokenClaims); ok {
			return claims
		}
	}
	return nil
}

// RequireOwner rejects callers whose token user id differs from the named
// path parameter. Must run after AuthMiddleware.
func RequireOwner(param string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.CheckOwner(GetClaims(c), c.Param(param)); err != nil {
			writeError(c, logger, err)
			return
		}
		c.Next()
	}
}

// RateLimit throttles by client IP. Limiter failures let the request through.
func RateLimit(limiter ratelimit.Limiter, purpose string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), purpose, ip)
		if err != nil {
			logger.Error("failed to check rate limit", "purpose", purpose, "error", err)
		}
		if !allowed {
			logger.Warn("rate limit exceeded", "purpose", purpose, "ip", ip)
			writeError(c, logger, service.ErrRateLimited)
			return
		}
		c.Next()
	}
}

func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
