package relay

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/editais-backend/internal/platform/httpx"
)

const (
	RateLimitMessage = "⚠️ **Alto volume de acessos**\n\nNossos servidores estão ocupados no momento devido à alta demanda. Por favor, aguarde alguns instantes e tente novamente."
	InternalMessage  = "Desculpe, a IA encontrou um erro interno. Tente novamente mais tarde."
)

// ConfigError is a per-request configuration failure. Its message is shown to the caller.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

func missingKey(provider string) error {
	label := "Gemini"
	if provider == "openai" {
		label = "OpenAI"
	}
	return &ConfigError{Msg: fmt.Sprintf("%s API Key not configured globally.", label)}
}

func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	if httpx.StatusCode(err) == http.StatusTooManyRequests {
		return true
	}
	return strings.Contains(err.Error(), "429")
}

// Classify maps a relay failure to the status and plain-text body sent to the caller.
func Classify(err error) (int, string) {
	var cfgErr *ConfigError
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError, cfgErr.Msg
	case IsRateLimit(err):
		return http.StatusTooManyRequests, RateLimitMessage
	default:
		return http.StatusInternalServerError, InternalMessage
	}
}
