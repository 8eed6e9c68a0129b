package assistant

import (
	"context"
	"strings"
	"unicode"

	"github.com/spigell/talent-scout/internal/session"
)

const (
	// FallbackMessage answers anything the router does not understand.
	FallbackMessage = "I'm here to help! I can:\n" +
		"• Collect your details (use 'Provide Details')\n" +
		"• Generate technical questions based on your tech stack\n" +
		"• Answer questions about filling the form (try asking 'What do I write in desired positions?')\n\n" +
		"Type 'help' for commands or ask me about any form field!"

	GoodbyeMessage = "Thanks for your time - ending the conversation."

	HelpMessage = "Commands:\n" +
		"- Provide Details\n" +
		"- Enter Tech Stack\n" +
		"- Generate Questions\n" +
		"- exit/quit to end\n\n" +
		"You can also ask questions like 'What do I write in desired positions?' or 'How do I fill the tech stack?'"
)

var exitKeywords = map[string]struct{}{
	"exit": {}, "quit": {}, "bye": {}, "stop": {}, "end": {},
}

// DefaultHandlers returns the chat steps in the order they are tried.
func DefaultHandlers() []Handler {
	return []Handler{
		exitHandler{},
		helpHandler{},
		formHelp("position_help", []string{"desired position", "position", "job title", "role"},
			"For **Desired Position(s)**, write the job roles you're interested in. Examples:\n"+
				"• AI/ML Engineer Intern\n"+
				"• Software Engineer\n"+
				"• Data Scientist\n"+
				"• Full Stack Developer\n"+
				"• Python Developer, Backend Engineer (for multiple positions)\n\n"+
				"Match it with your tech stack and experience level!"),
		formHelp("tech_stack_help", []string{"tech stack", "technology", "programming", "skills"},
			"For **Tech Stack**, list technologies you know separated by commas. Examples:\n"+
				"• Python, Django, PostgreSQL, AWS\n"+
				"• JavaScript, React, Node.js, MongoDB\n"+
				"• Java, Spring Boot, MySQL\n"+
				"• Python, TensorFlow, Pandas, scikit-learn\n\n"+
				"Include programming languages, frameworks, databases, and tools you're proficient in!"),
		formHelp("experience_help", []string{"experience", "years", "how long"},
			"For **Years of Experience**, enter a number representing your total programming/technical experience:\n"+
				"• 0 or 0.5 for beginners/students\n"+
				"• 1-2 for junior level\n"+
				"• 3-5 for mid-level\n"+
				"• 5+ for senior level\n\n"+
				"Include internships, projects, and professional work!"),
		formHelp("contact_help", []string{"email", "phone", "contact"},
			"For contact information:\n"+
				"• **Email**: Use a professional email address (e.g., john.doe@email.com)\n"+
				"• **Phone**: Include country code if international (e.g., +1 123-456-7890)\n"+
				"• **Location**: City, State/Country (e.g., San Francisco, CA or Mumbai, India)"),
		formHelp("name_help", []string{"name", "full name"},
			"For **Full Name**, enter your complete name as you'd like it to appear professionally.\n"+
				"Example: John Smith or Jane Doe"),
		techStackHandler{},
		generateHandler{},
		fallbackHandler{},
	}
}

type exitHandler struct{}

func (exitHandler) Name() string { return "exit" }

func (exitHandler) Match(text string, _ *session.State) bool {
	_, ok := exitKeywords[strings.ToLower(text)]
	return ok
}

func (exitHandler) Handle(_ context.Context, _ *Assistant, st *session.State, _ string) (Reply, error) {
	st.Ended = true
	return Reply{Text: GoodbyeMessage, Ended: true}, nil
}

type helpHandler struct{}

func (helpHandler) Name() string { return "help" }

func (helpHandler) Match(text string, _ *session.State) bool {
	return strings.EqualFold(text, "help")
}

func (helpHandler) Handle(context.Context, *Assistant, *session.State, string) (Reply, error) {
	return Reply{Text: HelpMessage}, nil
}

type formHelpHandler struct {
	name     string
	keywords []string
	text     string
}

func formHelp(name string, keywords []string, text string) Handler {
	return formHelpHandler{name: name, keywords: keywords, text: text}
}

func (h formHelpHandler) Name() string { return h.name }

func (h formHelpHandler) Match(text string, _ *session.State) bool {
	return containsAny(strings.ToLower(text), h.keywords)
}

func (h formHelpHandler) Handle(context.Context, *Assistant, *session.State, string) (Reply, error) {
	return Reply{Text: h.text}, nil
}

// techStackHandler treats comma separated words as a tech stack declaration.
type techStackHandler struct{}

func (techStackHandler) Name() string { return "tech_stack" }

func (techStackHandler) Match(text string, _ *session.State) bool {
	return strings.Contains(text, ",") && strings.IndexFunc(text, unicode.IsLetter) >= 0
}

func (techStackHandler) Handle(_ context.Context, a *Assistant, st *session.State, text string) (Reply, error) {
	_, msg := a.setTechStack(st, text)
	return Reply{Text: msg}, nil
}

type generateHandler struct{}

func (generateHandler) Name() string { return "generate" }

func (generateHandler) Match(text string, st *session.State) bool {
	return strings.Contains(strings.ToLower(text), "generate") && len(st.Profile.TechStack) > 0
}

func (generateHandler) Handle(ctx context.Context, a *Assistant, st *session.State, text string) (Reply, error) {
	lower := strings.ToLower(text)
	useAI := strings.Contains(lower, "ai") || strings.Contains(lower, "smart")

	_, msg, err := a.generate(ctx, st, a.perTech, useAI)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: msg, Generated: true}, nil
}

type fallbackHandler struct{}

func (fallbackHandler) Name() string { return "fallback" }

func (fallbackHandler) Match(string, *session.State) bool { return true }

func (fallbackHandler) Handle(context.Context, *Assistant, *session.State, string) (Reply, error) {
	return Reply{Text: FallbackMessage}, nil
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
