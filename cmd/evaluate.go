package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spigell/talent-scout/internal/evaluation"
	"github.com/spigell/talent-scout/internal/session"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a file of answers",
	Long: "Score a JSON object of answers keyed by <tech>_<n>, e.g. {\"Python_1\": \"...\"}.\n" +
		"Empty answers count toward the maximum score.",
	Run: func(cmd *cobra.Command, _ []string) {
		evaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringP("answers", "a", "", "path to a JSON file with answers")
	evaluateCmd.Flags().StringP("tech", "t", "", "comma separated tech stack the answers belong to")
	evaluateCmd.Flags().StringP("format", "f", formatText, "output format: text, json or yaml")

	evaluateCmd.MarkFlagRequired("answers")
}

func evaluate(cmd *cobra.Command) {
	logger, _ := setup()

	path, _ := cmd.Flags().GetString("answers")
	tech, _ := cmd.Flags().GetString("tech")
	format, _ := cmd.Flags().GetString("format")

	answers, err := readAnswers(path)
	if err != nil {
		logger.Fatal("reading answers", zap.Error(err), zap.String("file", path))
	}

	result := evaluation.Evaluate(answers, session.ParseTechStack(tech))

	logger.Info("answers evaluated",
		zap.Int("answers", len(answers)),
		zap.Int("answered", result.Answered),
		zap.String("rating", string(result.Rating())),
	)

	if err := writeResult(os.Stdout, result, format); err != nil {
		logger.Fatal("writing result", zap.Error(err))
	}
}

func readAnswers(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	answers := make(map[string]string)
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}

	return answers, nil
}

func writeResult(w io.Writer, result evaluation.Result, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", formatText:
		return writeSummary(w, result)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case formatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// writeSummary prints the final score followed by the per answer feedback.
func writeSummary(w io.Writer, result evaluation.Result) error {
	rating := result.Rating()
	if rating == evaluation.RatingNone {
		_, err := fmt.Fprintln(w, "No answers to evaluate.")
		return err
	}

	if _, err := fmt.Fprintf(w, "Score: %d/%d (%.1f%%)\nRating: %s %s\nAnswered: %d\n",
		result.TotalScore, result.MaxScore, result.Percentage(), rating.Stars(), rating, result.Answered,
	); err != nil {
		return err
	}

	for _, key := range slices.Sorted(maps.Keys(result.Details)) {
		detail := result.Details[key]
		if _, err := fmt.Fprintf(w, "  %s: %d/%d - %s\n", key, detail.Score, evaluation.MaxAnswerScore, detail.Feedback); err != nil {
			return err
		}
	}

	return nil
}
