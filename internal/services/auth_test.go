package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/editais-backend/internal/platform/logger"
)

func TestAuthLoginAndVerify(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "s3nha", time.Hour)

	token, expiresAt, err := svc.Login("s3nha")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	session, err := svc.Verify(token)
	require.NoError(t, err)
	assert.WithinDuration(t, expiresAt, session.ExpiresAt, time.Second)
}

func TestAuthRejectsWrongPassword(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "s3nha", time.Hour)
	_, _, err := svc.Login("outra")
	assert.True(t, errors.Is(err, ErrInvalidPassword))
}

func TestAuthDisabledWithoutPassword(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "", time.Hour)
	_, _, err := svc.Login("")
	assert.ErrorIs(t, err, ErrInvalidPassword)
	_, err = svc.Verify("anything")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestAuthVerifyRejectsForeignAndExpiredTokens(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "s3nha", time.Hour)
	token, _, err := svc.Login("s3nha")
	require.NoError(t, err)

	rotated := NewAuthService(logger.Nop(), "nova", time.Hour)
	_, err = rotated.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = svc.Verify(token + "x")
	assert.ErrorIs(t, err, ErrInvalidSession)

	as := svc.(*authService)
	as.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
