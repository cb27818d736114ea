package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"subscription-billing-ledger/internal/infra/logging"

	"github.com/golang-jwt/jwt/v5"
)

// ===== Caller identity =====
//
// The ledger needs a stable, unforgeable caller identifier for every
// mutating call. Over HTTP that is the subject of a signed bearer token;
// the middleware resolves it once and hands it to handlers via the request
// context.

type AuthManager struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthManager(secret string, ttl time.Duration) *AuthManager {
	return &AuthManager{secret: []byte(secret), ttl: ttl}
}

type CallerClaims struct {
	Role string `json:"role,omitempty"` // "admin" unlocks plan creation
	jwt.RegisteredClaims
}

// Mint issues a token for the given account. Used by the seed tool and by
// tests; production deployments are expected to mint tokens out of band.
func (a *AuthManager) Mint(account, role string) (string, error) {
	now := time.Now()
	claims := CallerClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Parse validates the token and returns its claims.
func (a *AuthManager) Parse(raw string) (*CallerClaims, error) {
	claims := &CallerClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

type callerKey struct{}

// Caller returns the authenticated account from the request context.
func Caller(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(callerKey{}).(*CallerClaims)
	if !ok || v.Subject == "" {
		return "", false
	}
	return v.Subject, true
}

func callerClaims(ctx context.Context) *CallerClaims {
	v, _ := ctx.Value(callerKey{}).(*CallerClaims)
	return v
}

// Authenticate resolves the bearer token into caller claims.
func (a *AuthManager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			http.Error(w, "Unauthorized: malformed token", http.StatusUnauthorized)
			return
		}
		claims, err := a.Parse(parts[1])
		if err != nil || claims.Subject == "" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		ctx := context.WithValue(r.Context(), callerKey{}, claims)
		ctx = logging.WithAccount(ctx, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates operator-only routes such as plan creation.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(r.Context())
		if claims == nil || claims.Role != "admin" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
