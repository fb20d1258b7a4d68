package llm

import (
	"context"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider wraps the Anthropic SDK. It is not part of the default
// fallback chain but can be enabled through the provider order configuration.
type AnthropicProvider struct {
	client     anthropic.Client
	model      string
	timeout    time.Duration
	configured bool
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(cfg ProviderConfig) (*AnthropicProvider, error) {
	opts := []option.RequestOption{}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	model := cfg.Model
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_20250514)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultProviderConfig().Timeout
	}

	return &AnthropicProvider{
		client:     anthropic.NewClient(opts...),
		model:      model,
		timeout:    timeout,
		configured: cfg.APIKey != "",
	}, nil
}

// Extract sends the job description to Anthropic and returns the raw response.
func (p *AnthropicProvider) Extract(ctx context.Context, jobText string) (Response, error) {
	if !p.configured {
		return Response{}, newProviderError(p.Name(), "missing API key", ErrNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt(jobText))),
		},
	}

	start := time.Now()
	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return Response{}, newProviderError(p.Name(), "message create", err)
	}
	latency := time.Since(start)

	var text string
	for _, block := range resp.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok {
			text = b.Text
		}
	}
	if text == "" {
		return Response{}, newProviderError(p.Name(), "no text in response", nil)
	}

	return Response{
		Text:    text,
		Latency: latency,
		Usage: &Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
	}, nil
}

// Healthy reports whether credentials are configured.
func (p *AnthropicProvider) Healthy(ctx context.Context) bool {
	return p.configured
}

// Name returns the provider identifier.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Kind reports that Anthropic is a cloud backend.
func (p *AnthropicProvider) Kind() Kind {
	return KindCloud
}

func init() {
	RegisterProvider("anthropic", func(cfg ProviderConfig) (Provider, error) {
		return NewAnthropicProvider(cfg)
	})
}
