package auth

import (
	"errors"
	"time"

	"billpilot_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when a token's signature is fine but its exp has passed
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for malformed tokens or bad signatures
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the payload carried by both access and refresh tokens.
// Refresh tokens carry an empty role list.
type Claims struct {
	UserID string   `json:"id"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a short-lived access token carrying the user id
// and role set. Verified by signature and expiry only, never persisted.
func GenerateAccessToken(userID string, roles []string) (string, error) {
	cfg := config.GetConfig()
	ttl := time.Duration(cfg.JWT.AccessTTLMinutes) * time.Minute
	return sign(userID, roles, ttl, cfg.JWT.Secret)
}

// GenerateRefreshToken signs a longer-lived refresh token carrying only the
// user id. Validity additionally depends on the token still being present in
// the user's stored set.
func GenerateRefreshToken(userID string) (string, error) {
	cfg := config.GetConfig()
	ttl := time.Duration(cfg.JWT.RefreshTTLHours) * time.Hour
	return sign(userID, nil, ttl, cfg.JWT.Secret)
}

func sign(userID string, roles []string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry of a token and returns its
// claims. Expired tokens are reported as ErrTokenExpired so callers can
// distinguish them from forgeries.
func ParseToken(tokenString string) (*Claims, error) {
	cfg := config.GetConfig()

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// DecodeUnverified extracts the claims of a token without enforcing expiry.
// Used only for reuse containment: a revoked refresh token still names the
// account whose session set must be cleared. Signature is still checked.
func DecodeUnverified(tokenString string) (*Claims, error) {
	claims, err := ParseToken(tokenString)
	if err == nil {
		return claims, nil
	}
	if !errors.Is(err, ErrTokenExpired) {
		return nil, err
	}

	cfg := config.GetConfig()
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, perr := parser.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if perr != nil {
		return nil, ErrTokenInvalid
	}
	if claims, ok := token.Claims.(*Claims); ok {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}
