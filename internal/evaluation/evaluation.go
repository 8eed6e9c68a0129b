package evaluation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxAnswerScore is the highest score a single answer can get.
	MaxAnswerScore = 10

	feedbackEmpty = "No response provided"
	feedbackBasic = "Basic response"
)

var techKeywords = []string{
	"algorithm", "data", "code", "function", "method", "class",
	"performance", "optimization", "debugging", "testing", "design",
	"architecture", "database", "api", "framework", "library",
}

var experienceIndicators = []string{"project", "experience", "used", "implemented", "worked", "built"}

// Detail is the score of one answer.
type Detail struct {
	Score    int    `json:"score" yaml:"score"`
	Feedback string `json:"feedback" yaml:"feedback"`
}

// Result aggregates the scores of all answers.
type Result struct {
	TotalScore int               `json:"total_score" yaml:"total_score"`
	MaxScore   int               `json:"max_score" yaml:"max_score"`
	Answered   int               `json:"answered" yaml:"answered"`
	Details    map[string]Detail `json:"details" yaml:"details"`
}

// AnswerKey identifies the answer to the ordinal-th (1-based) question of tech.
func AnswerKey(tech string, ordinal int) string {
	return fmt.Sprintf("%s_%d", tech, ordinal)
}

// Evaluate scores every answer with length and keyword heuristics.
// Empty answers count toward MaxScore but score zero. techStack is not used
// by the current heuristics.
func Evaluate(answers map[string]string, techStack []string) Result {
	_ = techStack

	result := Result{
		MaxScore: len(answers) * MaxAnswerScore,
		Details:  make(map[string]Detail, len(answers)),
	}

	for key, answer := range answers {
		detail := ScoreAnswer(answer)
		if strings.TrimSpace(answer) != "" {
			result.Answered++
		}
		result.Details[key] = detail
		result.TotalScore += detail.Score
	}

	return result
}

// ScoreAnswer scores a single free-text answer in the [0, 10] range.
func ScoreAnswer(answer string) Detail {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return Detail{Score: 0, Feedback: feedbackEmpty}
	}

	score := 0
	feedback := make([]string, 0, 3)

	switch n := utf8.RuneCountInString(trimmed); {
	case n > 50:
		score += 3
		feedback = append(feedback, "Good response length")
	case n > 20:
		score += 2
		feedback = append(feedback, "Adequate response length")
	default:
		score++
		feedback = append(feedback, "Brief response")
	}

	lower := strings.ToLower(answer)

	switch n := countContained(lower, techKeywords); {
	case n >= 3:
		score += 4
		feedback = append(feedback, "Good use of technical terminology")
	case n >= 1:
		score += 2
		feedback = append(feedback, "Some technical terminology used")
	}

	if countContained(lower, experienceIndicators) > 0 {
		score += 3
		feedback = append(feedback, "Mentions practical experience")
	}

	// unreachable while the length tier always adds a note
	text := feedbackBasic
	if len(feedback) > 0 {
		text = strings.Join(feedback, "; ")
	}

	return Detail{Score: min(score, MaxAnswerScore), Feedback: text}
}

func countContained(s string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(s, term) {
			n++
		}
	}
	return n
}
