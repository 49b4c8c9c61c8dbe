// Package llm wraps hosted OpenAI-compatible chat-completion endpoints
// (Groq, OpenRouter) behind one client with explicit sampling bounds
// and a circuit breaker.
package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"mailmind_server/pkg/apperr"
	"mailmind_server/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

const (
	groqBaseURL       = "https://api.groq.com/openai/v1"
	openRouterBaseURL = "https://openrouter.ai/api/v1"

	DefaultGroqModel       = "llama-3.3-70b-versatile"
	DefaultOpenRouterModel = "qwen/qwen-2.5-coder-32b-instruct"
)

// Message is one role-tagged chat message.
type Message struct {
	Role    string
	Content string
}

// Client calls a single hosted chat-completion provider.
type Client struct {
	client   *openai.Client
	provider string
	model    string
	cb       *gobreaker.CircuitBreaker
}

// ClientConfig configures a provider client.
type ClientConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration

	// Referer and Title are forwarded as HTTP-Referer / X-Title
	// attribution headers (OpenRouter ranks apps by them).
	Referer string
	Title   string
}

// NewGroqClient creates a client for Groq's OpenAI-compatible API.
func NewGroqClient(cfg ClientConfig) *Client {
	return newClient("groq", groqBaseURL, DefaultGroqModel, cfg)
}

// NewOpenRouterClient creates a client for OpenRouter.
func NewOpenRouterClient(cfg ClientConfig) *Client {
	return newClient("openrouter", openRouterBaseURL, DefaultOpenRouterModel, cfg)
}

func newClient(provider, baseURL, defaultModel string, cfg ClientConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	apiConfig.BaseURL = baseURL
	apiConfig.HTTPClient = &http.Client{
		Timeout: timeout,
		Transport: &attributionTransport{
			base:    http.DefaultTransport,
			referer: cfg.Referer,
			title:   cfg.Title,
		},
	}

	cbSettings := gobreaker.Settings{
		Name:        provider + "-llm",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	}

	return &Client{
		client:   openai.NewClientWithConfig(apiConfig),
		provider: provider,
		model:    model,
		cb:       gobreaker.NewCircuitBreaker(cbSettings),
	}
}

// Provider returns the provider name ("groq", "openrouter").
func (c *Client) Provider() string {
	return c.provider
}

// Complete sends a single user prompt.
func (c *Client) Complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error) {
	return c.Chat(ctx, []Message{{Role: openai.ChatMessageRoleUser, Content: prompt}}, temperature, maxTokens)
}

// CompleteWithSystem sends a system prompt plus a user prompt.
func (c *Client) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	return c.Chat(ctx, []Message{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt},
	}, temperature, maxTokens)
}

// Chat sends a role-tagged message list with explicit sampling bounds
// and returns the generated text. Provider failures come back as
// apperr values so the route layer can map rate limits to fallbacks.
func (c *Client) Chat(ctx context.Context, messages []Message, temperature float32, maxTokens int) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		chatMessages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    chatMessages,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		})
	})
	if err != nil {
		return "", c.wrapError(err)
	}

	resp := result.(openai.ChatCompletionResponse)
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) wrapError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperr.LLMError(c.provider, err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return apperr.RateLimited(c.provider)
	}
	if strings.Contains(err.Error(), "rate limit") {
		return apperr.RateLimited(c.provider)
	}

	return apperr.LLMError(c.provider, err)
}

// attributionTransport adds OpenRouter attribution headers to every
// request. Groq ignores them.
type attributionTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(req)
}

func truncateBody(body string, maxLen int) string {
	if len(body) > maxLen {
		return body[:maxLen]
	}
	return body
}
