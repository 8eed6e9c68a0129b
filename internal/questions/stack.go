package questions

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/ai"
	"github.com/spigell/talent-scout/internal/difficulty"
	"github.com/spigell/talent-scout/internal/logger"
	"github.com/spigell/talent-scout/internal/utils"
)

const (
	defaultMaxOutputTokens = 300
	defaultMaxLogLength    = 200
)

// StackOptions tune the external generation path.
type StackOptions struct {
	MaxOutputTokens int
	MaxLogLength    int
}

// Stack builds question sets for a whole tech stack. The external adapter is
// optional, a disabled adapter makes every technology use the local bank.
type Stack struct {
	adapter   ai.Adapter
	logger    *zap.Logger
	maxTokens int
	maxLogLen int
}

func NewStack(adapter ai.Adapter, log *zap.Logger, opts StackOptions) *Stack {
	if adapter == nil {
		adapter = ai.Disabled("no ai adapter provided")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = defaultMaxOutputTokens
	}
	if opts.MaxLogLength <= 0 {
		opts.MaxLogLength = defaultMaxLogLength
	}

	return &Stack{
		adapter:   adapter,
		logger:    log,
		maxTokens: opts.MaxOutputTokens,
		maxLogLen: opts.MaxLogLength,
	}
}

// AIAvailable reports whether external generation can be attempted.
func (s *Stack) AIAvailable() bool {
	return s.adapter.Enabled()
}

// Generate returns perTech questions for every technology in techs, in input
// order. When useAI is set and the adapter is available the questions are
// requested from the model and any shortfall is filled from the local bank.
func (s *Stack) Generate(ctx context.Context, techs []string, perTech int, yearsExp string, useAI bool) *Set {
	level := difficulty.Classify(yearsExp)
	external := useAI && s.adapter.Enabled()
	set := NewSet()
	start := time.Now()

	for i, tech := range techs {
		tech = strings.TrimSpace(tech)
		if tech == "" {
			continue
		}

		log := s.logger.With(logger.TechFields(tech, level.String())...)
		log.Info("generating questions",
			zap.Int("position", i+1),
			zap.Int("total", len(techs)),
			zap.Bool("external", external),
		)

		techStart := time.Now()
		if external {
			qs, src := s.generateExternal(ctx, log, tech, perTech, level, yearsExp)
			set.Put(tech, qs, src)
		} else {
			set.Put(tech, Local(tech, perTech, level), SourceLocal)
		}

		log.Debug("questions ready", zap.Duration("elapsed", time.Since(techStart)))
	}

	s.logger.Info("all questions generated",
		zap.Int("techs", set.Len()),
		zap.Int("questions", set.Total()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return set
}

func (s *Stack) generateExternal(ctx context.Context, log *zap.Logger, tech string, count int, level difficulty.Level, yearsExp string) ([]string, Source) {
	if count <= 0 {
		return []string{}, SourceLocal
	}

	prompt := BuildPrompt(tech, count, level, yearsExp)

	log.Debug("ai generate request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw := s.adapter.Generate(ctx, prompt, s.maxTokens)

	log.Debug("ai generate response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	lines := ParseLines(raw)
	received := len(lines)
	if received >= count {
		return lines[:count], SourceAI
	}

	log.Info("ai returned too few questions, filling remaining with local generator",
		zap.Int("received", received),
		zap.Int("requested", count),
	)

	lines = append(lines, Local(tech, count-received, level)...)
	if received == 0 {
		return lines, SourceLocal
	}
	return lines, SourceAIFilled
}
