// Package narrative composes donor-facing text. Every composition asks an
// external text generator first and falls back to a deterministic template
// when the generator fails.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"donationsrv/internal/domain"
)

// Generator produces text for a system and user prompt.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}

// Composition kinds passed to Hooks.
const (
	KindNarrative = "narrative"
	KindThankYou  = "thank_you"
)

// Fallback reasons passed to Hooks.OnFallback.
const (
	ReasonNoGenerator   = "no_generator"
	ReasonGenerateError = "generate_error"
	ReasonPanic         = "generator_panic"
	ReasonEmptyResponse = "empty_response"
)

var (
	errNoGenerator   = errors.New("no generator configured")
	errEmptyResponse = errors.New("generator returned no text")
)

// Hooks observe composition outcomes. Both callbacks are optional.
type Hooks struct {
	OnGenerated func(kind string)
	OnFallback  func(kind, reason string, err error)
}

// Options configures a Composer.
type Options struct {
	Hooks Hooks
}

// Outcome is composed text and the path that produced it. Reason is set only
// for fallbacks.
type Outcome struct {
	Text   string
	Source domain.NarrativeSource
	Reason string
}

// Composer builds narratives and thank-you messages. It is safe for
// concurrent use when its Generator is.
type Composer struct {
	gen   Generator
	hooks Hooks
}

// NewComposer returns a Composer backed by gen. A nil gen makes every
// composition use its fallback.
func NewComposer(gen Generator, opts Options) *Composer {
	return &Composer{gen: gen, hooks: opts.Hooks}
}

// generate calls the generator once. It returns the text verbatim, or a
// fallback reason and the underlying error.
func (c *Composer) generate(ctx context.Context, systemPrompt, userPrompt string) (text, reason string, err error) {
	if c.gen == nil {
		return "", ReasonNoGenerator, errNoGenerator
	}
	defer func() {
		if r := recover(); r != nil {
			text, reason, err = "", ReasonPanic, fmt.Errorf("generator panic: %v", r)
		}
	}()
	text, err = c.gen.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", ReasonGenerateError, err
	}
	if strings.TrimSpace(text) == "" {
		return "", ReasonEmptyResponse, errEmptyResponse
	}
	return text, "", nil
}

func (c *Composer) compose(ctx context.Context, kind, systemPrompt, userPrompt string, fallback func() string) Outcome {
	text, reason, err := c.generate(ctx, systemPrompt, userPrompt)
	if err == nil {
		if c.hooks.OnGenerated != nil {
			c.hooks.OnGenerated(kind)
		}
		return Outcome{Text: text, Source: domain.NarrativeGenerated}
	}
	if c.hooks.OnFallback != nil {
		c.hooks.OnFallback(kind, reason, err)
	}
	return Outcome{Text: fallback(), Source: domain.NarrativeFallback, Reason: reason}
}
