package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/Ethansurfas/launchpad/config"
	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by the auth middleware.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
	CtxName   = "name"
)

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func abort(c *gin.Context, status int, code utils.Code, msg string) {
	c.AbortWithStatusJSON(status, apiError{Code: code, Message: msg})
}

func unauthorized(c *gin.Context) {
	abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Unauthorized")
}

type supabaseClaims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email"`
	AppMetadata  map[string]any `json:"app_metadata"` // {"role":"EMPLOYER"}
	UserMetadata map[string]any `json:"user_metadata"`
}

var errNoToken = errors.New("missing bearer token")

type verifier struct {
	secret   []byte
	issuer   string
	audience string
}

func (v verifier) verify(header string) (*supabaseClaims, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, errNoToken
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" {
		return nil, errNoToken
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &supabaseClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if tok == nil || !tok.Valid || claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// role reads app_metadata.role; anything unknown is a student.
func (c *supabaseClaims) role() models.UserRole {
	if s, ok := c.AppMetadata["role"].(string); ok {
		if r, ok := models.ParseRole(strings.ToUpper(strings.TrimSpace(s))); ok {
			return r
		}
	}
	return models.RoleStudent
}

func (c *supabaseClaims) name() string {
	for _, k := range []string{"name", "full_name"} {
		if s, ok := c.UserMetadata[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func setIdentity(c *gin.Context, claims *supabaseClaims) {
	c.Set(CtxUserID, claims.Subject)
	c.Set(CtxRole, claims.role())
	c.Set(CtxEmail, claims.Email)
	c.Set(CtxName, claims.name())
}

func newVerifier(cfg config.AuthConfig) verifier {
	return verifier{secret: []byte(cfg.JWTSecret), issuer: cfg.Issuer, audience: cfg.Audience}
}

// JWTAuth rejects requests without a valid HS256 bearer token.
func JWTAuth(cfg config.AuthConfig) gin.HandlerFunc {
	v := newVerifier(cfg)
	return func(c *gin.Context) {
		if len(v.secret) == 0 {
			abort(c, http.StatusInternalServerError, utils.CodeInternal, "SUPABASE_JWT_SECRET is not set")
			return
		}
		claims, err := v.verify(c.GetHeader("Authorization"))
		if err != nil {
			_ = c.Error(err)
			unauthorized(c)
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth identifies the caller when a valid token is present and
// lets anonymous requests through otherwise.
func OptionalJWTAuth(cfg config.AuthConfig) gin.HandlerFunc {
	v := newVerifier(cfg)
	return func(c *gin.Context) {
		if len(v.secret) > 0 {
			if claims, err := v.verify(c.GetHeader("Authorization")); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// UserID is empty for anonymous callers.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

func Role(c *gin.Context) models.UserRole {
	if r, ok := c.Get(CtxRole); ok {
		if role, ok := r.(models.UserRole); ok {
			return role
		}
	}
	return ""
}

// RequireRole answers every mismatch with the same 401.
func RequireRole(allowed ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" || !slices.Contains(allowed, Role(c)) {
			unauthorized(c)
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc { return RequireRole(models.RoleAdmin) }
