package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spigell/talent-scout/internal/difficulty"
	"github.com/spigell/talent-scout/internal/questions"
	"github.com/spigell/talent-scout/internal/session"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate screening questions for a tech stack",
	Run: func(cmd *cobra.Command, _ []string) {
		generate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("tech", "t", "", "comma separated tech stack, e.g. \"Python, Django, AWS\"")
	generateCmd.Flags().String("years", "", "years of experience used to pick the difficulty")
	generateCmd.Flags().IntP("per-tech", "n", 0, "questions per technology (3-6, default from config)")
	generateCmd.Flags().Bool("ai", false, "use the configured ai provider when available")
	generateCmd.Flags().StringP("format", "f", formatText, "output format: text, json or yaml")

	viper.BindPFlag("questions.per-tech", generateCmd.Flags().Lookup("per-tech"))
	viper.BindPFlag("questions.use-ai", generateCmd.Flags().Lookup("ai"))
}

func generate(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	tech, _ := cmd.Flags().GetString("tech")
	years, _ := cmd.Flags().GetString("years")
	format, _ := cmd.Flags().GetString("format")

	st := session.New()
	if err := st.ApplyDetails(map[string]any{"years_exp": years, "tech_stack": tech}); err != nil {
		logger.Fatal("reading flags", zap.Error(err))
	}

	a := newAssistant(ctx, config, logger)

	logger.Info("generating questions",
		zap.Strings("tech_stack", st.Profile.TechStack),
		zap.String("difficulty", difficulty.Classify(st.Profile.YearsExp).String()),
		zap.Int("per_tech", config.Questions.PerTech),
		zap.Bool("use_ai", config.Questions.UseAI),
	)

	set, err := a.GenerateQuestions(ctx, st, config.Questions.PerTech, config.Questions.UseAI)
	if err != nil {
		logger.Fatal("generating questions", zap.Error(err), zap.String("hint", "pass --tech and keep --per-tech between 3 and 6"))
	}

	if err := writeQuestions(os.Stdout, set, format); err != nil {
		logger.Fatal("writing questions", zap.Error(err))
	}
}

// writeQuestions renders a question set in the requested format.
func writeQuestions(w io.Writer, set *questions.Set, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", formatText:
		for _, entry := range set.Entries() {
			if _, err := fmt.Fprintf(w, "%s (%s)\n", entry.Tech, entry.Source); err != nil {
				return err
			}
			for i, q := range entry.Questions {
				if _, err := fmt.Fprintf(w, "  %d. %s\n", i+1, q); err != nil {
					return err
				}
			}
		}
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(set.Entries())
	case formatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(set.Entries()); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
