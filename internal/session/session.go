package session

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/talent-scout/internal/evaluation"
	"github.com/spigell/talent-scout/internal/questions"
	"github.com/spigell/talent-scout/internal/utils"
)

const (
	RoleBot  = "bot"
	RoleUser = "user"
)

// Profile holds the candidate details collected by the forms.
type Profile struct {
	FullName         string   `mapstructure:"full_name" json:"full_name"`
	Email            string   `mapstructure:"email" json:"email"`
	Phone            string   `mapstructure:"phone" json:"phone"`
	YearsExp         string   `mapstructure:"years_exp" json:"years_exp"`
	DesiredPositions string   `mapstructure:"desired_positions" json:"desired_positions"`
	Location         string   `mapstructure:"location" json:"location"`
	TechStack        []string `mapstructure:"tech_stack" json:"tech_stack"`
}

// Message is a single conversation line.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// State is everything one interactive session knows about the candidate.
// It is owned by the host and passed to every operation. Not safe for
// concurrent use.
type State struct {
	Profile      Profile
	Conversation []Message
	Questions    *questions.Set
	Answers      map[string]string
	Evaluation   *evaluation.Result
	Ended        bool
}

func New() *State {
	st := &State{}
	st.Reset()
	return st
}

// Reset discards the profile, the conversation and everything derived from them.
func (s *State) Reset() {
	*s = State{
		Profile:      Profile{TechStack: []string{}},
		Conversation: []Message{},
		Answers:      make(map[string]string),
	}
}

// Say appends a message to the conversation.
func (s *State) Say(role, text string) {
	s.Conversation = append(s.Conversation, Message{Role: role, Text: text})
}

// ApplyDetails updates the profile from a submitted form. Only keys present
// in the form are changed, string values are trimmed. tech_stack may be a
// list or a comma separated string.
func (s *State) ApplyDetails(form map[string]any) error {
	cleaned := make(map[string]any, len(form))
	for key, value := range form {
		switch v := value.(type) {
		case string:
			if key == "tech_stack" {
				cleaned[key] = ParseTechStack(v)
				continue
			}
			cleaned[key] = strings.TrimSpace(v)
		case []string:
			cleaned[key] = trimAll(v)
		default:
			cleaned[key] = value
		}
	}

	// decoded into a copy so a rejected form leaves the profile untouched
	next := s.Profile
	if _, ok := cleaned["tech_stack"]; ok {
		// slices are decoded in place, a shorter list would keep stale items
		next.TechStack = nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &next,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return fmt.Errorf("create profile decoder: %w", err)
	}

	if err := decoder.Decode(cleaned); err != nil {
		return fmt.Errorf("decode profile form: %w", err)
	}

	s.Profile = next
	return nil
}

// SetTechStack replaces the declared technologies.
func (s *State) SetTechStack(techs []string) {
	s.Profile.TechStack = trimAll(techs)
}

// SetQuestions stores a freshly generated question set, dropping the answers
// and evaluation of the previous one.
func (s *State) SetQuestions(set *questions.Set) {
	s.Questions = set
	s.Answers = make(map[string]string)
	s.Evaluation = nil
}

// RecordAnswer stores the answer to the ordinal-th (1-based) question of tech.
func (s *State) RecordAnswer(tech string, ordinal int, answer string) {
	if s.Answers == nil {
		s.Answers = make(map[string]string)
	}
	s.Answers[evaluation.AnswerKey(tech, ordinal)] = answer
}

// Answer returns the stored answer to a question, if any.
func (s *State) Answer(tech string, ordinal int) string {
	return s.Answers[evaluation.AnswerKey(tech, ordinal)]
}

// ParseTechStack splits free text on commas and semicolons.
func ParseTechStack(text string) []string {
	return utils.SplitList(text, ',', ';')
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
