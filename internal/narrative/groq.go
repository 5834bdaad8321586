package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Dan9191/finance-advisor/internal/config"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const (
	systemPrompt = "You are a helpful financial advisor."
	temperature  = 0.6
	maxTokens    = 500
)

// GroqGenerator asks Groq's OpenAI-compatible chat completions API for the narrative
type GroqGenerator struct {
	client *openai.Client
	model  string
	log    *logrus.Logger
}

// NewGroqGenerator initializes a new Groq client. GroqURL is the API base, without /chat/completions.
func NewGroqGenerator(cfg *config.Config, log *logrus.Logger) *GroqGenerator {
	clientCfg := openai.DefaultConfig(cfg.GroqAPIKey)
	clientCfg.BaseURL = strings.TrimSuffix(cfg.GroqURL, "/")
	clientCfg.HTTPClient = &http.Client{
		Timeout: 30 * time.Second,
	}
	return &GroqGenerator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.GroqModel,
		log:    log,
	}
}

func (g *GroqGenerator) Name() string { return BackendGroq }

// buildPrompt embeds the user's profile in the advisor prompt
func buildPrompt(nc Context) (string, error) {
	data := nc.Profile
	if data == nil {
		data = map[string]any{"snapshot": nc.Snapshot}
	}
	userData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode user data: %w", err)
	}
	return fmt.Sprintf(`You are a personal finance advisor.

Analyze the user's financial data below and provide:
- Net worth analysis
- Budget feedback
- Debt advice
- Short actionable checklist (max 5 bullets)

User Data:
%s
`, userData), nil
}

// Generate sends the chat completion request and returns the first choice
func (g *GroqGenerator) Generate(ctx context.Context, nc Context) (string, error) {
	prompt, err := buildPrompt(nc)
	if err != nil {
		return "", err
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("response contained no narrative")
	}

	g.log.Infof("Narrative generated by %s (%s)", g.Name(), g.model)
	return resp.Choices[0].Message.Content, nil
}
