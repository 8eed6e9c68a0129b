package questions

import (
	"fmt"
	"strings"

	"github.com/spigell/talent-scout/internal/difficulty"
)

type category struct {
	name      string
	keywords  []string
	templates []string
}

// categories are checked in order, the first match wins. Templates may
// reference the technology label through a single %[1]s verb.
var categories = []category{
	{
		name:     "language",
		keywords: []string{"python"},
		templates: []string{
			"Describe the difference between deep and shallow copies in Python. Give examples.",
			"How do you optimize Python code for performance? Name tools or techniques you use.",
		},
	},
	{
		name:     "web_framework",
		keywords: []string{"django", "flask"},
		templates: []string{
			"How do you handle authentication and authorization in %[1]s?",
			"Explain how you structure a medium-sized web application using %[1]s.",
		},
	},
	{
		name:     "database",
		keywords: []string{"sql", "mysql", "postgres", "postgresql"},
		templates: []string{
			"Write a SQL query to find duplicate rows in a table and remove them.",
			"Explain indexes. When do indexes hurt performance?",
		},
	},
	{
		name:     "cloud",
		keywords: []string{"aws", "gcp", "azure"},
		templates: []string{
			"Which services do you use for deploying a scalable API on %[1]s? Why?",
			"How do you design for high availability and disaster recovery in cloud?",
		},
	},
	{
		name:     "ml_framework",
		keywords: []string{"pytorch", "tensorflow", "keras"},
		templates: []string{
			"Explain the difference between model.train() and model.eval().",
			"How do you prevent overfitting? List techniques and give examples.",
		},
	},
	{
		name:     "frontend_framework",
		keywords: []string{"react", "vue", "angular"},
		templates: []string{
			"Explain how state management works in your chosen frontend framework.",
			"How do you optimize rendering performance for complex UI components?",
		},
	},
}

var genericTemplates = []string{
	"What are the key concepts of %[1]s?",
	"Describe a debugging approach you follow when a %[1]s based solution fails in production.",
}

// Local returns exactly count questions about tech built from the static
// templates. The level is accepted for signature parity with the AI path,
// the templates do not vary by level yet.
func Local(tech string, count int, level difficulty.Level) []string {
	_ = level

	if count <= 0 {
		return []string{}
	}

	qs := make([]string, 0, max(count, 3))
	qs = append(qs, fmt.Sprintf("Explain a recent project where you used %s. What was your role and the biggest challenge?", tech))

	for _, tpl := range templatesFor(tech) {
		qs = append(qs, render(tpl, tech))
	}

	if len(qs) >= count {
		return qs[:count]
	}

	for i := 1; len(qs) < count; i++ {
		qs = append(qs, fmt.Sprintf("Additional question %d about %s.", i, tech))
	}

	return qs
}

// categoryOf reports which template group tech falls into, "generic" when
// none matches.
func categoryOf(tech string) string {
	if c := match(tech); c != nil {
		return c.name
	}
	return "generic"
}

func templatesFor(tech string) []string {
	if c := match(tech); c != nil {
		return c.templates
	}
	return genericTemplates
}

func match(tech string) *category {
	t := strings.ToLower(strings.TrimSpace(tech))
	for i := range categories {
		for _, kw := range categories[i].keywords {
			if strings.Contains(t, kw) {
				return &categories[i]
			}
		}
	}
	return nil
}

func render(tpl, tech string) string {
	if !strings.Contains(tpl, "%[1]s") {
		return tpl
	}
	return fmt.Sprintf(tpl, tech)
}
