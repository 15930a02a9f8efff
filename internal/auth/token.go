package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/car-marketplace/internal/config"
	"github.com/spec-kit/car-marketplace/internal/domain"
)

// Token verification failures, kept distinct for logging and telemetry.
// All of them surface as a plain 401 at the API boundary.
var (
	ErrTokenInvalid      = errors.New("token invalid")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenKindMismatch = errors.New("token kind mismatch")
)

// TokenManager issues and validates the two JWT kinds. Decoding is a pure
// function of (token, secret, algorithm, now); no state is kept per token.
type TokenManager struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenManager builds a manager from auth configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	method := jwt.GetSigningMethod(cfg.JWTAlgorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	accessTTL := cfg.AccessTokenTTL()
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	refreshTTL := cfg.RefreshTokenTTL()
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}
	return &TokenManager{
		secret:     []byte(cfg.JWTSecret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Claims describes the JWT payload. Role is present only on access tokens.
type Claims struct {
	Role *domain.UserRole `json:"role,omitempty"`
	Kind domain.TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// UserID returns the user reference the token was issued for.
func (c *Claims) UserID() string {
	return c.RegisteredClaims.Subject
}

// GenerateAccessToken signs a short-lived token carrying the user's role.
func (tm *TokenManager) GenerateAccessToken(userID string, role domain.UserRole) (string, error) {
	return tm.generate(userID, domain.TokenKindAccess, &role, tm.accessTTL)
}

// GenerateRefreshToken signs a long-lived token with no role claim.
func (tm *TokenManager) GenerateRefreshToken(userID string) (string, error) {
	return tm.generate(userID, domain.TokenKindRefresh, nil, tm.refreshTTL)
}

func (tm *TokenManager) generate(userID string, kind domain.TokenKind, role *domain.UserRole, ttl time.Duration) (string, error) {
	issuedAt := tm.now()
	claims := &Claims{
		Role: role,
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(tm.method, claims)
	return token.SignedString(tm.secret)
}

// ParseToken validates signature, expiry and kind, returning claims on success.
func (tm *TokenManager) ParseToken(tokenStr string, expected domain.TokenKind) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != tm.method.Alg() {
			return nil, ErrTokenInvalid
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Kind != expected {
		return nil, ErrTokenKindMismatch
	}
	return claims, nil
}
