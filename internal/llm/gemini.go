package llm

import (
	"context"
	"time"

	"google.golang.org/genai"
)

// GeminiProvider wraps the Google GenAI SDK.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiProvider creates a new Gemini provider. A missing API key is not
// an error here: the provider is constructed unconfigured and reports
// unhealthy until credentials are supplied.
func NewGeminiProvider(cfg ProviderConfig) (*GeminiProvider, error) {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultProviderConfig().Timeout
	}

	p := &GeminiProvider{
		model:   model,
		timeout: timeout,
	}

	if cfg.APIKey != "" {
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			Backend: genai.BackendGeminiAPI,
			APIKey:  cfg.APIKey,
		})
		if err != nil {
			return nil, newProviderError("gemini", "create client", err)
		}
		p.client = client
	}

	return p, nil
}

// Extract sends the job description to Gemini and returns the raw response.
func (p *GeminiProvider) Extract(ctx context.Context, jobText string) (Response, error) {
	if p.client == nil {
		return Response{}, newProviderError(p.Name(), "missing API key", ErrNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	temperature := float32(0.1)
	config := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		Temperature:       &temperature,
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(userPrompt(jobText))}, genai.RoleUser),
	}

	start := time.Now()
	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return Response{}, newProviderError(p.Name(), "generate content", err)
	}
	latency := time.Since(start)

	if len(resp.Candidates) == 0 {
		return Response{}, newProviderError(p.Name(), "no candidates in response", nil)
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return Response{}, newProviderError(p.Name(), "no parts in candidate content", nil)
	}
	text := candidate.Content.Parts[0].Text
	if text == "" {
		return Response{}, newProviderError(p.Name(), "empty response text", nil)
	}

	var usage *Usage
	if resp.UsageMetadata != nil {
		usage = &Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}

	return Response{
		Text:    text,
		Latency: latency,
		Usage:   usage,
	}, nil
}

// Healthy reports whether credentials are configured. The SDK has no cheap
// unauthenticated ping, so reachability is discovered on the first call.
func (p *GeminiProvider) Healthy(ctx context.Context) bool {
	return p.client != nil
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Kind reports that Gemini is a cloud backend.
func (p *GeminiProvider) Kind() Kind {
	return KindCloud
}

func init() {
	RegisterProvider("gemini", func(cfg ProviderConfig) (Provider, error) {
		return NewGeminiProvider(cfg)
	})
}
