// Package textgen adapts text generation providers to narrative.Generator.
package textgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"donationsrv/internal/infra"
	"donationsrv/internal/narrative"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// ErrUnavailable is returned by Unavailable for every call.
var ErrUnavailable = errors.New("text generation unavailable")

// Unavailable is the generator used when no provider is configured. The
// composers turn its error into their fallback text.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Generate(context.Context, string, string) (string, error) {
	if u.Reason == "" {
		return "", ErrUnavailable
	}
	return "", fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}

var _ narrative.Generator = Unavailable{}

// New builds the generator selected by cfg.TextGenProvider. Misconfiguration
// never fails startup; it yields Unavailable and a warning.
func New(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (narrative.Generator, string) {
	provider := strings.ToLower(strings.TrimSpace(cfg.TextGenProvider))
	switch provider {
	case ProviderOpenAI:
		gen, err := NewOpenAIGenerator(OpenAIOptions{
			APIKey:       cfg.OpenAIAPIKey,
			Model:        cfg.OpenAIModel,
			BaseURL:      cfg.OpenAIBaseURL,
			Organization: cfg.OpenAIOrg,
			OnWarning: func(reason, detail string) {
				logger.Warn().Str("provider", ProviderOpenAI).Str("reason", reason).Msg(detail)
			},
		})
		if err != nil {
			logger.Warn().Err(err).Msg("textgen: openai disabled")
			return Unavailable{Reason: err.Error()}, ProviderNone
		}
		logger.Info().Str("provider", ProviderOpenAI).Str("model", gen.Model()).Msg("textgen: ready")
		return gen, ProviderOpenAI
	case ProviderGemini:
		gen, err := NewGeminiGenerator(ctx, GeminiOptions{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("textgen: gemini disabled")
			return Unavailable{Reason: err.Error()}, ProviderNone
		}
		logger.Info().Str("provider", ProviderGemini).Str("model", gen.Model()).Msg("textgen: ready")
		return gen, ProviderGemini
	case "", ProviderNone:
		logger.Info().Msg("textgen: no provider configured, using fallback templates")
		return Unavailable{Reason: "no provider configured"}, ProviderNone
	default:
		logger.Warn().Str("provider", provider).Msg("textgen: unknown provider, using fallback templates")
		return Unavailable{Reason: "unknown provider " + provider}, ProviderNone
	}
}
