// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements cookie-based session authentication.
//
// A session is a client-held, signed token; nothing is persisted server
// side and the lifecycle is bounded by cookie expiry (7 days by default)
// and explicit logout. The token is an HS256 JWT carrying the user id,
// org id, admin flag, and email. The keyed MAC and structured claims
// replace the rolling-hash checksum and positional pipe-delimited payload
// of the original MVP scheme: tampering with any segment invalidates the
// token, and field values containing delimiter characters round-trip
// correctly.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/invoiceme/organizer/internal/config"
	"github.com/invoiceme/organizer/internal/models"
)

// CookieName is the session cookie name.
const CookieName = "invoiceme_session"

// ErrNoSession indicates a missing, malformed, tampered, or expired
// session token. All invalid-token shapes collapse into this one error;
// callers treat them uniformly as "not logged in".
var ErrNoSession = errors.New("no valid session")

// SessionClaims is the JWT payload. Subject carries the user id.
type SessionClaims struct {
	OrgID   string `json:"org"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"adm"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies session tokens and manages the session
// cookie. Tokens are signed with HMAC-SHA256 using the configured secret.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewSessions creates a session manager from security config. The secret
// must be at least 32 characters (enforced by config validation).
func NewSessions(cfg config.SecurityConfig) (*Sessions, error) {
	if cfg.CookieSecret == "" {
		return nil, fmt.Errorf("cookie secret is required but was empty")
	}
	return &Sessions{
		secret: []byte(cfg.CookieSecret),
		ttl:    cfg.SessionTTL,
		secure: cfg.CookieSecure,
	}, nil
}

// Issue creates a signed session token for the given user.
func (s *Sessions) Issue(user models.SessionUser) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		OrgID:   user.OrgID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a token and returns the session user. Any mismatch or
// malformed token is reported as ErrNoSession; Verify never panics. A
// verified token missing the user id or email is also treated as no
// session.
func (s *Sessions) Verify(tokenString string) (models.SessionUser, error) {
	var zero models.SessionUser
	if tokenString == "" {
		return zero, ErrNoSession
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return zero, ErrNoSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return zero, ErrNoSession
	}
	if claims.Subject == "" || claims.Email == "" {
		return zero, ErrNoSession
	}

	return models.SessionUser{
		ID:      claims.Subject,
		OrgID:   claims.OrgID,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
	}, nil
}

// FromRequest reads and verifies the session cookie on r.
func (s *Sessions) FromRequest(r *http.Request) (models.SessionUser, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return models.SessionUser{}, ErrNoSession
	}
	return s.Verify(c.Value)
}

// SetCookie writes the session cookie for the given user.
func (s *Sessions) SetCookie(w http.ResponseWriter, user models.SessionUser) error {
	token, err := s.Issue(user)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
