package admin

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer  = "arionfm"
	tokenSubject = "admin"
	// DefaultTokenTTL bounds how long a studio login lasts.
	DefaultTokenTTL = 12 * time.Hour
)

// ErrInvalidToken is returned for tokens that fail verification.
var ErrInvalidToken = errors.New("invalid admin token")

// Issuer verifies the studio password and signs HS256 admin tokens.
type Issuer struct {
	hash   []byte
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer hashes the configured password once so it is never compared in
// plain text.
func NewIssuer(password, secret string, ttl time.Duration) (*Issuer, error) {
	password = strings.TrimSpace(password)
	if password == "" {
		return nil, errors.New("admin password is required")
	}
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{hash: hash, secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Authenticate returns a signed token when password matches.
func (i *Issuer) Authenticate(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(i.hash, []byte(password)); err != nil {
		return "", ErrIncorrectPassword
	}
	return i.Issue()
}

// Issue signs a fresh admin token.
func (i *Issuer) Issue() (string, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   tokenSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry and subject.
func (i *Issuer) Verify(raw string) error {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithSubject(tokenSubject),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}
