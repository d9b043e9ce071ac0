package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/yungbote/editais-backend/internal/platform/logger"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

type Turn struct {
	Role string
	Text string
}

type ChatRequest struct {
	Model       string
	Temperature float32
	// History holds every turn before Message, oldest first.
	History []Turn
	Message string
}

// Client opens a genai client per call since the API key comes from
// stored settings and can change between requests.
type Client struct {
	log  *logger.Logger
	opts []option.ClientOption
}

func NewClient(log *logger.Logger, opts ...option.ClientOption) *Client {
	return &Client{log: log.With("client", "GeminiClient"), opts: opts}
}

func (c *Client) StreamChat(ctx context.Context, apiKey string, req ChatRequest, onDelta func(delta string) error) error {
	if strings.TrimSpace(apiKey) == "" {
		return errors.New("gemini: missing api key")
	}
	if strings.TrimSpace(req.Message) == "" {
		return errors.New("gemini: empty message")
	}
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, c.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return fmt.Errorf("gemini: create client: %w", err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			c.log.Debug("gemini client close failed", "error", cerr)
		}
	}()

	model := client.GenerativeModel(req.Model)
	model.SetTemperature(req.Temperature)

	cs := model.StartChat()
	cs.History = toContents(req.History)

	iter := cs.SendMessageStream(ctx, genai.Text(req.Message))
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return err
		}
		if text := responseText(resp); text != "" {
			if err := onDelta(text); err != nil {
				return err
			}
		}
	}
}

func toContents(turns []Turn) []*genai.Content {
	out := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := RoleUser
		if t.Role == RoleModel {
			role = RoleModel
		}
		out = append(out, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(t.Text)}})
	}
	return out
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
	}
	return sb.String()
}
