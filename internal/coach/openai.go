// ABOUTME: Generator backed by an OpenAI-compatible chat completions endpoint.
// ABOUTME: One attempt per call with a bounded timeout; failures become Responses.
package coach

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	// DefaultBaseURL is a Groq OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "llama-3.1-8b-instant"
	// DefaultTimeout bounds a single generation call.
	DefaultTimeout = 20 * time.Second

	// APIKeyEnv overrides the keyring-stored API key.
	APIKeyEnv = "HABITS_AI_API_KEY"
)

// OpenAIGenerator implements Generator with openai-go.
type OpenAIGenerator struct {
	client  openai.Client
	model   string
	timeout time.Duration
	logger  *log.Logger
}

// NewOpenAIGenerator creates a generator. Empty baseURL or model use the
// defaults; logger may be nil.
func NewOpenAIGenerator(apiKey, baseURL, model string, logger *log.Logger) *OpenAIGenerator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(&http.Client{Timeout: DefaultTimeout}),
		option.WithMaxRetries(0),
	)

	return &OpenAIGenerator{
		client:  client,
		model:   model,
		timeout: DefaultTimeout,
		logger:  logger,
	}
}

// Model returns the configured model name.
func (g *OpenAIGenerator) Model() string {
	return g.model
}

// Generate sends one chat completion request.
func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) Response {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.PromptContext),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}

	start := time.Now()
	resp, err := g.client.Chat.Completions.New(ctx, params)
	latency := time.Since(start)
	if err != nil {
		if g.logger != nil {
			g.logger.Debug("llm request failed", "model", g.model, "latency", latency, "err", err)
		}
		return Response{Error: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return Response{Error: "no choices in response"}
	}

	if g.logger != nil {
		g.logger.Debug("llm response", "model", g.model, "latency", latency, "length", len(resp.Choices[0].Message.Content))
	}
	return Response{Success: true, Text: resp.Choices[0].Message.Content}
}
