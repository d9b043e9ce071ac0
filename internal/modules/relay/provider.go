package relay

import (
	"context"
	"strings"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NormalizeRole folds every non-user role into the assistant side.
func NormalizeRole(role string) string {
	if strings.EqualFold(strings.TrimSpace(role), RoleUser) {
		return RoleUser
	}
	return RoleAssistant
}

type Request struct {
	Model        string
	APIKey       string
	SystemPrompt string
	History      []Message
	Temperature  float64
}

// Provider streams one completion. onDelta receives chunks in arrival order;
// a non-nil return from onDelta stops the stream and is returned as-is.
type Provider interface {
	Name() string
	Stream(ctx context.Context, req Request, onDelta func(delta string) error) error
}
