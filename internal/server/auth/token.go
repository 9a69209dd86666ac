package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avolkov/storefront/internal/common"
)

// DefaultSessionTTL applies when the issuer is constructed with a
// non-positive lifetime.
const DefaultSessionTTL = 24 * time.Hour

// clockLeeway bounds the clock skew tolerated when validating expiry.
const clockLeeway = 5 * time.Second

// SessionClaims is the identity carried by a parsed session token.
type SessionClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer mints and parses signed session tokens (HS256 JWT). It holds the
// only copy of the signing secret and is immutable after construction.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer constructs an Issuer. An empty secret is a configuration error;
// the caller must treat it as fatal.
func NewIssuer(secret []byte, ttl time.Duration) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("session issuer: signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}, nil
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue mints a signed token for userID with issuedAt = now and
// expiresAt = now + TTL.
func (i *Issuer) Issue(userID string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	})
	return token.SignedString(i.secret)
}

// Parse decodes tokenString, verifies the signature, and checks expiry.
// Errors are one of common.ErrTokenMalformed, common.ErrTokenSignatureInvalid,
// or common.ErrTokenExpired; the gate treats all three as unauthenticated,
// the split exists for diagnostics.
func (i *Issuer) Parse(tokenString string) (*SessionClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(clockLeeway),
		jwt.WithTimeFunc(func() time.Time { return i.now() }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrTokenSignatureInvalid
		default:
			return nil, common.ErrTokenMalformed
		}
	}
	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrTokenMalformed
	}

	out := &SessionClaims{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
