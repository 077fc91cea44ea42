// Package inference wraps the remote model APIs behind one client. Chat
// completion is routed by the model's provider; image generation, speech and
// transcription always go to OpenAI. No retries beyond what the SDKs do
// themselves: a failure is reported once and the exchange ends.
package inference

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"beseda/internal/session"
)

// Client is the inference boundary the bot consumes
type Client interface {
	// CompleteChat sends the trimmed history (plus an optional transient
	// system entry) to the chat model and returns the assistant text.
	CompleteChat(ctx context.Context, model session.Model, system string, messages []session.Message) (string, error)

	// GenerateImage returns the URL of a generated image.
	GenerateImage(ctx context.Context, prompt, size, quality string) (string, error)

	// DescribeImage answers a question about an image given as a URL or
	// base64 data URL.
	DescribeImage(ctx context.Context, question, imageURL string) (string, error)

	// TranscribeAudio converts spoken audio into text.
	TranscribeAudio(ctx context.Context, audio io.Reader, filename string) (string, error)

	// SynthesizeSpeech renders text as spoken audio bytes.
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}

// chatProvider completes chats for one API vendor
type chatProvider interface {
	CompleteChat(ctx context.Context, model session.Model, system string, messages []session.Message) (string, error)
}

// Router implements Client by routing each call to the right provider
type Router struct {
	openai    *OpenAIProvider
	anthropic *AnthropicProvider
	logger    zerolog.Logger
}

// NewRouter creates a router over the configured providers. The Anthropic key
// may be empty; Claude models then report a configuration error.
func NewRouter(openaiKey, anthropicKey string, logger zerolog.Logger) *Router {
	r := &Router{
		openai: NewOpenAIProvider(openaiKey),
		logger: logger.With().Str("component", "inference").Logger(),
	}
	if anthropicKey != "" {
		r.anthropic = NewAnthropicProvider(anthropicKey)
	}
	return r
}

// CompleteChat routes to the provider serving the model
func (r *Router) CompleteChat(ctx context.Context, model session.Model, system string, messages []session.Message) (string, error) {
	provider, err := r.chatProviderFor(model)
	if err != nil {
		return "", err
	}

	text, err := provider.CompleteChat(ctx, model, system, messages)
	if err != nil {
		r.logger.Error().Str("model", string(model)).Err(err).Msg("Chat completion failed")
		return "", err
	}
	return text, nil
}

// GenerateImage always uses OpenAI
func (r *Router) GenerateImage(ctx context.Context, prompt, size, quality string) (string, error) {
	return r.openai.GenerateImage(ctx, prompt, size, quality)
}

// DescribeImage always uses OpenAI
func (r *Router) DescribeImage(ctx context.Context, question, imageURL string) (string, error) {
	return r.openai.DescribeImage(ctx, question, imageURL)
}

// TranscribeAudio always uses OpenAI
func (r *Router) TranscribeAudio(ctx context.Context, audio io.Reader, filename string) (string, error) {
	return r.openai.TranscribeAudio(ctx, audio, filename)
}

// SynthesizeSpeech always uses OpenAI
func (r *Router) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	return r.openai.SynthesizeSpeech(ctx, text)
}

func (r *Router) chatProviderFor(model session.Model) (chatProvider, error) {
	switch model.Provider() {
	case session.ProviderOpenAI:
		return r.openai, nil
	case session.ProviderAnthropic:
		if r.anthropic == nil {
			return nil, fmt.Errorf("anthropic api key is not configured")
		}
		return r.anthropic, nil
	default:
		return nil, fmt.Errorf("no provider for model %s", model)
	}
}
