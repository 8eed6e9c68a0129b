package ai

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/logger"
)

// Options tune a single generation request.
type Options struct {
	MaxOutputTokens int
	Temperature     float64
}

// TextGenerator is implemented by provider clients.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string, opts Options) (string, error)
	Model() string
}

// Adapter is the optional external question generator. Generate returns the
// raw model output or an empty string on any failure. It never retries.
type Adapter interface {
	Enabled() bool
	Generate(ctx context.Context, prompt string, maxOutputTokens int) string
}

type adapter struct {
	generator   TextGenerator
	provider    string
	temperature float64
	logger      *zap.Logger
}

// NewAdapter wraps a provider client into an Adapter.
func NewAdapter(gen TextGenerator, provider string, temperature float64, log *zap.Logger) Adapter {
	if gen == nil {
		return Disabled("ai generator is not configured")
	}

	return &adapter{
		generator:   gen,
		provider:    provider,
		temperature: temperature,
		logger:      logger.WithCommonFields(log, provider, gen.Model()),
	}
}

func (a *adapter) Enabled() bool { return true }

func (a *adapter) Generate(ctx context.Context, prompt string, maxOutputTokens int) string {
	start := time.Now()

	out, err := a.generator.GenerateContent(ctx, prompt, Options{
		MaxOutputTokens: maxOutputTokens,
		Temperature:     a.temperature,
	})
	if err != nil {
		a.logger.Warn("ai generation failed, falling back to local generator",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return ""
	}

	a.logger.Debug("ai response received",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_length", utf8.RuneCountInString(out)),
	)

	return strings.TrimSpace(out)
}

// DisabledAdapter is the Adapter used when no provider is available.
type DisabledAdapter struct {
	reason string
}

// Disabled returns an Adapter that never produces output.
func Disabled(reason string) *DisabledAdapter {
	return &DisabledAdapter{reason: strings.TrimSpace(reason)}
}

func (d *DisabledAdapter) Enabled() bool { return false }

func (d *DisabledAdapter) Generate(context.Context, string, int) string { return "" }

// DisabledReason returns the reason of a disabled adapter and an empty
// string for an enabled one.
func DisabledReason(a Adapter) string {
	if d, ok := a.(*DisabledAdapter); ok {
		return d.reason
	}
	return ""
}
