package questions

import (
	"fmt"
	"strconv"
	"strings"

	_ "embed"

	"github.com/spigell/talent-scout/internal/difficulty"
)

//go:embed prompt.md
var promptTemplate string

// BuildPrompt renders the instruction sent to the external generator. The
// difficulty hint is only added when the candidate stated their experience.
func BuildPrompt(tech string, count int, level difficulty.Level, yearsExp string) string {
	template := strings.TrimSpace(promptTemplate)
	if template == "" {
		template = "Technology: {{TECH}}\nQuestions: {{COUNT}}{{DIFFICULTY_HINT}}\nNumbered list:"
	}

	hint := ""
	if years := strings.TrimSpace(yearsExp); years != "" {
		hint = fmt.Sprintf(" Generate %s-level questions suitable for someone with %s years of experience.", level, years)
	}

	prompt := strings.ReplaceAll(template, "{{TECH}}", tech)
	prompt = strings.ReplaceAll(prompt, "{{COUNT}}", strconv.Itoa(count))
	prompt = strings.ReplaceAll(prompt, "{{DIFFICULTY_HINT}}", hint)
	return prompt
}
