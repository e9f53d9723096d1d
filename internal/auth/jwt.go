package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/alexanderramin/rebound/internal/domain"
)

const issuer = "rebound"

// Token purposes. A reset token cannot be used to call the API and a session
// token cannot reset a password.
const (
	PurposeSession = "session"
	PurposeReset   = "reset"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongPurpose = errors.New("token not valid for this use")
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Role    domain.Role `json:"role,omitempty"`
	Purpose string      `json:"purpose"`
}

// UserID is the subject of the token.
func (c *Claims) UserID() string {
	return c.Subject
}

type Manager struct {
	secret   []byte
	ttl      time.Duration
	resetTTL time.Duration
}

func NewManager(secret string, ttl, resetTTL time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, resetTTL: resetTTL}
}

// IssueSession signs a session token for u.
func (m *Manager) IssueSession(u *domain.User, now time.Time) (string, error) {
	return m.sign(u, PurposeSession, now, m.ttl)
}

// IssueReset signs a short-lived password reset token for u.
func (m *Manager) IssueReset(u *domain.User, now time.Time) (string, error) {
	return m.sign(u, PurposeReset, now, m.resetTTL)
}

func (m *Manager) sign(u *domain.User, purpose string, now time.Time, ttl time.Duration) (string, error) {
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    issuer,
			Subject:   u.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		Role:    u.Role,
		Purpose: purpose,
	}
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return ss, nil
}

// Parse verifies the signature and expiry of raw and checks that it was
// issued for purpose.
func (m *Manager) Parse(raw, purpose string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != issuer || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}
