package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/ai"
	"github.com/spigell/talent-scout/internal/ai/gemini"
	"github.com/spigell/talent-scout/internal/ai/openai"
	"github.com/spigell/talent-scout/internal/assistant"
	"github.com/spigell/talent-scout/internal/logger"
	"github.com/spigell/talent-scout/internal/questions"
	"github.com/spigell/talent-scout/internal/secrets"
	"github.com/spigell/talent-scout/internal/submission"
)

const (
	providerGemini = "gemini"
	providerOpenAI = "openai"
)

var (
	geminiKeyEnv = []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"}
	openAIKeyEnv = []string{"OPENAI_API_KEY"}
)

// setup builds the logger and the config shared by every command.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config.redacted(), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return logger, config
}

// newAssistant wires the question stack and the submission store.
func newAssistant(ctx context.Context, config *Config, logger *zap.Logger) *assistant.Assistant {
	adapter, err := newAdapter(ctx, &config.AI, logger)
	if err != nil {
		logger.Fatal("building ai adapter", zap.Error(err))
	}

	if !adapter.Enabled() {
		logger.Info("ai question generation is unavailable", zap.String("reason", ai.DisabledReason(adapter)))
	}

	stack := questions.NewStack(adapter, logger, questions.StackOptions{
		MaxOutputTokens: config.AI.MaxOutputTokens,
		MaxLogLength:    config.AI.MaxLogLength,
	})

	return assistant.New(assistant.Deps{
		Logger:    logger,
		Questions: stack,
		Store:     submission.NewStore(logger),
		PerTech:   config.Questions.PerTech,
	})
}

// newAdapter picks the configured provider. A disabled provider or a missing
// credential yields a disabled adapter, only a broken configuration is an error.
func newAdapter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Adapter, error) {
	if cfg == nil || !cfg.Enabled {
		return ai.Disabled("ai is disabled in configuration"), nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider == "" {
		provider = providerGemini
	}

	var (
		generator ai.TextGenerator
		err       error
	)

	switch provider {
	case providerGemini:
		apiKey, keyErr := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			File:  cfg.Gemini.APIKeyFile,
			Env:   geminiKeyEnv,
		})
		if keyErr != nil {
			return missingKey(keyErr, "set ai.gemini.api-key-file, ai.gemini.api-key or GOOGLE_API_KEY")
		}
		generator, err = gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	case providerOpenAI:
		apiKey, keyErr := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: cfg.OpenAI.APIKey,
			File:  cfg.OpenAI.APIKeyFile,
			Env:   openAIKeyEnv,
		})
		if keyErr != nil {
			return missingKey(keyErr, "set ai.openai.api-key-file, ai.openai.api-key or OPENAI_API_KEY")
		}
		generator, err = openai.NewGenerator(apiKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", provider, err)
	}

	return ai.NewAdapter(generator, provider, cfg.Temperature, logger), nil
}

func missingKey(err error, hint string) (ai.Adapter, error) {
	if errors.Is(err, secrets.ErrNotConfigured) {
		return ai.Disabled(err.Error()), nil
	}
	return nil, fmt.Errorf("%w (%s)", err, hint)
}
