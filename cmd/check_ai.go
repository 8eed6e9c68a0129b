package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/ai"
	"github.com/spigell/talent-scout/internal/questions"
)

const probePrompt = "Generate 2 simple Python interview questions. Return as a numbered list."

var checkAICmd = &cobra.Command{
	Use:     "check-ai",
	Aliases: []string{"doctor"},
	Short:   "Send a single probe request to the configured ai provider",
	Run: func(cmd *cobra.Command, _ []string) {
		checkAI(cmd)
	},
}

func init() {
	rootCmd.AddCommand(checkAICmd)

	checkAICmd.Flags().Duration("timeout", 30*time.Second, "probe timeout")
}

func checkAI(cmd *cobra.Command) {
	logger, config := setup()

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	adapter, err := newAdapter(ctx, &config.AI, logger)
	if err != nil {
		logger.Fatal("building ai adapter", zap.Error(err))
	}

	if !adapter.Enabled() {
		logger.Fatal("ai is unavailable", zap.String("reason", ai.DisabledReason(adapter)))
	}

	start := time.Now()
	out := adapter.Generate(ctx, probePrompt, config.AI.MaxOutputTokens)
	elapsed := time.Since(start)

	if out == "" {
		logger.Fatal("probe returned no output", zap.Duration("elapsed", elapsed), zap.String("hint", "the provider error is logged above"))
	}

	logger.Info("probe succeeded",
		zap.Duration("elapsed", elapsed),
		zap.Int("questions", len(questions.ParseLines(out))),
	)
	fmt.Println(out)
}
