// Package session issues and verifies the signed token cookie that carries a
// caller's identity. Tokens are stateless: nothing is stored server-side, so a
// token stays valid until it expires or the browser drops the cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName is the cookie holding the signed token
	CookieName = "token"
	// DefaultTTL is the token lifetime when none is configured
	DefaultTTL = 8 * time.Hour
)

var (
	// ErrMissingToken is returned when the request carries no token cookie
	ErrMissingToken = errors.New("missing token")
	// ErrInvalidToken is returned for malformed tokens or bad signatures
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a token is past its expiry
	ErrTokenExpired = errors.New("token expired")
)

// Manager signs identity claims into cookies and verifies them back.
type Manager interface {
	Issue(w http.ResponseWriter, claims Claims) (string, error)
	Revoke(w http.ResponseWriter)
	Verify(token string) (*Claims, error)
}

// Option customizes a manager.
type Option func(*manager)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(m *manager) {
		m.now = now
	}
}

// manager implements Manager with HS256 JWTs
type manager struct {
	secret     []byte
	ttl        time.Duration
	production bool
	now        func() time.Time
}

// NewManager creates a session manager. In production the cookie is sent
// cross-site over TLS only; otherwise it is restricted to same-site requests.
func NewManager(secret []byte, ttl time.Duration, production bool, opts ...Option) Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &manager{
		secret:     secret,
		ttl:        ttl,
		production: production,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue signs the claims and sets the token cookie on w
func (m *manager) Issue(w http.ResponseWriter, claims Claims) (string, error) {
	token, err := m.sign(claims)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, m.cookie(token, int(m.ttl.Seconds())))
	return token, nil
}

// Revoke clears the token cookie. The attributes must match the ones used by
// Issue or browsers keep the previously issued cookie.
func (m *manager) Revoke(w http.ResponseWriter) {
	c := m.cookie("", -1)
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

// Verify checks signature and expiry and returns the embedded claims
func (m *manager) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (m *manager) sign(claims Claims) (string, error) {
	now := m.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *manager) cookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteStrictMode
	if m.production {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.production,
		SameSite: sameSite,
	}
}
