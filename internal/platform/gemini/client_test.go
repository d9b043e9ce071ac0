package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/editais-backend/internal/platform/logger"
)

func TestToContentsMapsRoles(t *testing.T) {
	got := toContents([]Turn{
		{Role: RoleUser, Text: "contexto"},
		{Role: RoleModel, Text: "ok"},
		{Role: "assistant", Text: "fallback"},
	})
	require.Len(t, got, 3)
	assert.Equal(t, RoleUser, got[0].Role)
	assert.Equal(t, RoleModel, got[1].Role)
	assert.Equal(t, RoleUser, got[2].Role)
	assert.Equal(t, genai.Text("contexto"), got[0].Parts[0])
}

func TestResponseTextJoinsParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Ol"), genai.Text("á")}}},
			nil,
			{Content: nil},
		},
	}
	assert.Equal(t, "Olá", responseText(resp))
	assert.Equal(t, "", responseText(nil))
}

func TestStreamChatValidatesInput(t *testing.T) {
	c := NewClient(logger.Nop())
	assert.Error(t, c.StreamChat(context.Background(), "", ChatRequest{Message: "x"}, nil))
	assert.Error(t, c.StreamChat(context.Background(), "key", ChatRequest{Message: "  "}, nil))
}
