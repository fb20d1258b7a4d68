package llm

import (
	"context"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider wraps the OpenAI SDK.
type OpenAIProvider struct {
	client     openai.Client
	model      string
	timeout    time.Duration
	configured bool
}

// NewOpenAIProvider creates a new OpenAI provider. A missing API key leaves
// the provider unconfigured rather than failing construction.
func NewOpenAIProvider(cfg ProviderConfig) (*OpenAIProvider, error) {
	opts := []option.RequestOption{}

	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = string(openai.ChatModelGPT4o)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultProviderConfig().Timeout
	}

	return &OpenAIProvider{
		client:     openai.NewClient(opts...),
		model:      model,
		timeout:    timeout,
		configured: cfg.APIKey != "",
	}, nil
}

// Extract sends the job description to OpenAI and returns the raw response.
func (p *OpenAIProvider) Extract(ctx context.Context, jobText string) (Response, error) {
	if !p.configured {
		return Response{}, newProviderError(p.Name(), "missing API key", ErrNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt(jobText)),
		},
		MaxTokens:   openai.Int(1024),
		Temperature: openai.Float(0.1),
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Response{}, newProviderError(p.Name(), "chat completion", err)
	}
	latency := time.Since(start)

	if len(resp.Choices) == 0 {
		return Response{}, newProviderError(p.Name(), "no choices in response", nil)
	}

	return Response{
		Text:    resp.Choices[0].Message.Content,
		Latency: latency,
		Usage: &Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
	}, nil
}

// Healthy lists models to verify the API key and endpoint work.
func (p *OpenAIProvider) Healthy(ctx context.Context) bool {
	if !p.configured {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := p.client.Models.List(ctx)
	return err == nil
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Kind reports that OpenAI is a cloud backend.
func (p *OpenAIProvider) Kind() Kind {
	return KindCloud
}

func init() {
	RegisterProvider("openai", func(cfg ProviderConfig) (Provider, error) {
		return NewOpenAIProvider(cfg)
	})
}
