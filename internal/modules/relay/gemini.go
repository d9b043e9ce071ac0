package relay

import (
	"context"
	"errors"

	"github.com/yungbote/editais-backend/internal/domain/settings"
	"github.com/yungbote/editais-backend/internal/modules/prompt"
	"github.com/yungbote/editais-backend/internal/platform/gemini"
)

type GeminiStreamer interface {
	StreamChat(ctx context.Context, apiKey string, req gemini.ChatRequest, onDelta func(delta string) error) error
}

type geminiProvider struct {
	client GeminiStreamer
}

func NewGeminiProvider(client GeminiStreamer) Provider {
	return &geminiProvider{client: client}
}

func (p *geminiProvider) Name() string { return string(settings.ProviderGemini) }

// Stream sends the system prompt as the opening user turn, replays every
// message but the last as session history, and sends the last one.
func (p *geminiProvider) Stream(ctx context.Context, req Request, onDelta func(delta string) error) error {
	if len(req.History) == 0 {
		return errors.New("gemini: empty history")
	}
	turns := make([]gemini.Turn, 0, len(req.History))
	turns = append(turns, gemini.Turn{Role: gemini.RoleUser, Text: req.SystemPrompt + prompt.GeminiSuffix})
	last := len(req.History) - 1
	for _, m := range req.History[:last] {
		turns = append(turns, gemini.Turn{Role: geminiRole(m.Role), Text: m.Content})
	}
	return p.client.StreamChat(ctx, req.APIKey, gemini.ChatRequest{
		Model:       req.Model,
		Temperature: float32(req.Temperature),
		History:     turns,
		Message:     req.History[last].Content,
	}, onDelta)
}

func geminiRole(role string) string {
	if NormalizeRole(role) == RoleUser {
		return gemini.RoleUser
	}
	return gemini.RoleModel
}
