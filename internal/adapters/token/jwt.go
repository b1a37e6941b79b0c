// Package token issues the session tokens handed out by the mock login.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"worldacross/internal/domain"
)

var ErrInvalid = errors.New("invalid token")

const issuer = "worldacross"

type Maker struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewMaker(secret string, ttl time.Duration) *Maker {
	return &Maker{secret: []byte(secret), ttl: ttl, now: time.Now}
}

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func (m *Maker) Issue(id domain.Identity) (string, error) {
	now := m.now()
	claims := Claims{
		Email: id.Email,
		Name:  id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Maker) Parse(tokenStr string) (Claims, error) {
	var c Claims
	tok, err := jwt.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))
	if err != nil || tok == nil || !tok.Valid {
		return Claims{}, ErrInvalid
	}
	return c, nil
}

// Verify parses tok and returns the identity it was issued for.
func (m *Maker) Verify(tok string) (domain.Identity, error) {
	c, err := m.Parse(tok)
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{UserID: c.Subject, Email: c.Email, Name: c.Name}, nil
}
