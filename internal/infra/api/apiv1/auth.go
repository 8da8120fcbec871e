package apiv1

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// ScopeStats is the only scope minted today.
const ScopeStats = "stats"

var (
	ErrNoSecret     = errors.New("api key is not configured")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are carried by operator tokens.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and checks HS256 tokens signed with the configured API key.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Mint signs a stats token for subject valid from now for ttl.
func (t *TokenIssuer) Mint(subject string, now time.Time, ttl time.Duration) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrNoSecret
	}
	claims := Claims{
		Scope: ScopeStats,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   subject,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *TokenIssuer) Parse(tok string) (*Claims, error) {
	if len(t.secret) == 0 {
		return nil, ErrNoSecret
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid || claims.Scope != ScopeStats {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// bearerAuth requires "Authorization: Bearer <token>" minted by issuer.
// Without a configured key every request is forbidden.
func bearerAuth(issuer *TokenIssuer, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(issuer.secret) == 0 {
				logger.Error().Msg("api key is not configured")
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			claims, err := issuer.Parse(parts[1])
			if err != nil {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			logger.Debug().Str("sub", claims.Subject).Msg("stats token accepted")
			next.ServeHTTP(w, r)
		})
	}
}
