// Package auth guards the administrative endpoints with HS256 bearer tokens.
// Tokens are minted by the CLI and carry a fixed issuer and audience.
package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iamsank8/portfolio/pkg/defaults"
	cerrors "github.com/iamsank8/portfolio/pkg/errors"
	"github.com/iamsank8/portfolio/pkg/server"
)

const (
	// Issuer is the iss claim of admin tokens.
	Issuer = "portfolio-api"
	// Audience is the aud claim of admin tokens.
	Audience = "portfolio-admin"

	minSecretLength = 16
)

// Claims are the verified contents of an admin token.
type Claims struct {
	Subject   string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Verifier issues and checks admin tokens signed with a shared secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier creates a Verifier. An empty secret yields a verifier that
// rejects every token.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// Configured reports whether a secret is set.
func (v *Verifier) Configured() bool {
	return len(v.secret) > 0
}

// ValidateSecret rejects secrets too short to be useful for HS256.
func ValidateSecret(secret string) error {
	if len(secret) < minSecretLength {
		return cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "admin token secret is too short",
			map[string]any{"min_length": minSecretLength})
	}
	return nil
}

// Issue mints a token for subject valid for ttl.
func (v *Verifier) Issue(subject string, ttl time.Duration) (string, error) {
	if !v.Configured() {
		return "", cerrors.New(cerrors.ErrCodeInvalidRequest, "admin token secret is not configured")
	}
	if ttl <= 0 {
		ttl = defaults.AdminTokenTTL
	}
	if ttl > defaults.AdminTokenMaxTTL {
		return "", cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "token ttl exceeds maximum",
			map[string]any{"ttl": ttl.String(), "max": defaults.AdminTokenMaxTTL.String()})
	}
	if strings.TrimSpace(subject) == "" {
		subject = "admin"
	}

	now := v.now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   subject,
		Audience:  jwt.ClaimStrings{Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", cerrors.Wrap(cerrors.ErrCodeInternal, "sign admin token", err)
	}
	return signed, nil
}

// Verify parses and validates a token string.
func (v *Verifier) Verify(token string) (Claims, error) {
	if !v.Configured() {
		return Claims{}, cerrors.New(cerrors.ErrCodeUnauthorized, "admin token secret is not configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, cerrors.New(cerrors.ErrCodeUnauthorized, "token is required")
	}

	var parsed jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}

	claims := Claims{
		Subject: parsed.Subject,
		ID:      parsed.ID,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time.UTC()
	}
	return claims, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return cerrors.Wrap(cerrors.ErrCodeUnauthorized, "token is expired", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return cerrors.Wrap(cerrors.ErrCodeUnauthorized, "token signature is invalid", err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		return cerrors.Wrap(cerrors.ErrCodeUnauthorized, "token was not issued for this api", err)
	default:
		return cerrors.Wrap(cerrors.ErrCodeUnauthorized, "token is invalid", err)
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Require rejects requests without a valid bearer token with
// 401 {"error":"Unauthorized"}.
func (v *Verifier) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := v.Verify(BearerToken(r))
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="portfolio-admin"`)
			server.WriteErrorFromErr(w, r, err)
			return
		}
		slog.InfoContext(r.Context(), "admin request authorized",
			"path", r.URL.Path, "subject", claims.Subject, "jti", claims.ID)
		next.ServeHTTP(w, r)
	})
}
