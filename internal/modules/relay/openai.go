package relay

import (
	"context"

	"github.com/yungbote/editais-backend/internal/domain/settings"
	"github.com/yungbote/editais-backend/internal/platform/openai"
)

type OpenAIStreamer interface {
	StreamChat(ctx context.Context, apiKey string, req openai.ChatRequest, onDelta func(delta string) error) error
}

type openAIProvider struct {
	client OpenAIStreamer
}

func NewOpenAIProvider(client OpenAIStreamer) Provider {
	return &openAIProvider{client: client}
}

func (p *openAIProvider) Name() string { return string(settings.ProviderOpenAI) }

func (p *openAIProvider) Stream(ctx context.Context, req Request, onDelta func(delta string) error) error {
	msgs := make([]openai.Message, 0, len(req.History)+1)
	msgs = append(msgs, openai.Message{Role: "system", Content: req.SystemPrompt})
	for _, m := range req.History {
		msgs = append(msgs, openai.Message{Role: NormalizeRole(m.Role), Content: m.Content})
	}
	return p.client.StreamChat(ctx, req.APIKey, openai.ChatRequest{
		Model:       req.Model,
		Messages:    msgs,
		Temperature: req.Temperature,
	}, onDelta)
}
