package services

import (
	"crypto/sha512"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminCookieName = "hf_admin_auth"
	AdminSessionTTL = 12 * time.Hour
	adminRole       = "admin"
)

var (
	ErrAdminNotConfigured = errors.New("ADMIN_PASSWORD is not set")
	ErrInvalidPassword    = errors.New("invalid password")
)

type adminSession struct {
	Role     string
	IssuedAt int64
}

// AuthService guards the admin console with a single shared password and a
// signed session cookie. The signing key is derived from the password and
// secret, so rotating either one logs every admin out.
type AuthService struct {
	passwordHash []byte
	codec        *securecookie.SecureCookie
}

func NewAuthService(password, secret string) (*AuthService, error) {
	s := &AuthService{}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		s.passwordHash = hash
	}

	key := sha512.Sum512([]byte(password + ":" + secret))
	s.codec = securecookie.New(key[:], nil)
	s.codec.MaxAge(int(AdminSessionTTL.Seconds()))
	return s, nil
}

func (s *AuthService) VerifyPassword(password string) error {
	if s.passwordHash == nil {
		return ErrAdminNotConfigured
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// IssueSession returns the cookie value for a freshly authenticated admin.
func (s *AuthService) IssueSession() (string, error) {
	if s.passwordHash == nil {
		return "", ErrAdminNotConfigured
	}
	return s.codec.Encode(AdminCookieName, adminSession{Role: adminRole, IssuedAt: time.Now().Unix()})
}

// IsAdmin reports whether token is a valid, unexpired admin session.
func (s *AuthService) IsAdmin(token string) bool {
	if token == "" || s.passwordHash == nil {
		return false
	}
	var sess adminSession
	if err := s.codec.Decode(AdminCookieName, token, &sess); err != nil {
		return false
	}
	return sess.Role == adminRole
}
