package services

import (
	"errors"
	"net/http"

	"github.com/yungbote/editais-backend/internal/platform/apierr"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidSession  = errors.New("invalid or expired session")
)

var (
	errCongressNotFound = apierr.NotFound("not_found", "Congress not found")
	errSlugTaken        = apierr.Conflict("slug_taken", "A congress with this slug already exists.")
	errChatDisabled     = apierr.New(http.StatusForbidden, "chat_disabled", errors.New("O assistente virtual está desativado para este congresso."))
)
