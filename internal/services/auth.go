package services

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/editais-backend/internal/platform/ctxutil"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

const adminSubject = "admin"

type AuthService interface {
	// Login checks the shared admin password and issues a signed session token.
	Login(password string) (token string, expiresAt time.Time, err error)
	// Verify parses a session token issued by Login.
	Verify(token string) (*ctxutil.AdminSession, error)
	SessionTTL() time.Duration
}

type authService struct {
	log        *logger.Logger
	password   string
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(log *logger.Logger, adminPassword string, sessionTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	if adminPassword == "" {
		serviceLog.Warn("ADMIN_PASSWORD is empty; admin login is disabled")
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &authService{log: serviceLog, password: adminPassword, sessionTTL: sessionTTL, now: time.Now}
}

func (as *authService) SessionTTL() time.Duration { return as.sessionTTL }

func (as *authService) Login(password string) (string, time.Time, error) {
	if as.password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(as.password)) != 1 {
		return "", time.Time{}, ErrInvalidPassword
	}
	now := as.now()
	expiresAt := now.Add(as.sessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(as.signingKey())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

func (as *authService) Verify(tokenString string) (*ctxutil.AdminSession, error) {
	if as.password == "" || tokenString == "" {
		return nil, ErrInvalidSession
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return as.signingKey(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	if claims.Subject != adminSubject || claims.ExpiresAt == nil {
		return nil, ErrInvalidSession
	}
	session := &ctxutil.AdminSession{ExpiresAt: claims.ExpiresAt.Time}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	return session, nil
}

// signingKey ties sessions to the current password, so rotating it logs everyone out.
func (as *authService) signingKey() []byte {
	return []byte("editais-admin-session:" + as.password)
}
