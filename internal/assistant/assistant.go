package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/evaluation"
	"github.com/spigell/talent-scout/internal/questions"
	"github.com/spigell/talent-scout/internal/session"
	"github.com/spigell/talent-scout/internal/submission"
)

const (
	MinPerTech     = 3
	MaxPerTech     = 6
	DefaultPerTech = 4
)

var (
	ErrNoTechStack    = errors.New("no tech stack provided, enter tech stack first")
	ErrPerTechOutside = fmt.Errorf("questions per technology must be between %d and %d", MinPerTech, MaxPerTech)
)

// Deps aggregates the collaborators of the assistant.
type Deps struct {
	Logger    *zap.Logger
	Questions *questions.Stack
	Store     *submission.Store
	PerTech   int
}

// Assistant runs the screening flow on a session.State supplied by the host.
// It keeps no per-session data of its own.
type Assistant struct {
	logger    *zap.Logger
	questions *questions.Stack
	store     *submission.Store
	perTech   int
	handlers  []Handler
}

func New(deps Deps) *Assistant {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Questions == nil {
		deps.Questions = questions.NewStack(nil, deps.Logger, questions.StackOptions{})
	}
	if deps.Store == nil {
		deps.Store = submission.NewStore(deps.Logger)
	}
	if deps.PerTech < MinPerTech || deps.PerTech > MaxPerTech {
		deps.PerTech = DefaultPerTech
	}

	return &Assistant{
		logger:    deps.Logger,
		questions: deps.Questions,
		store:     deps.Store,
		perTech:   deps.PerTech,
		handlers:  DefaultHandlers(),
	}
}

// AIAvailable reports whether AI question generation can be offered.
func (a *Assistant) AIAvailable() bool {
	return a.questions.AIAvailable()
}

func (a *Assistant) Store() *submission.Store {
	return a.store
}

// SaveDetails applies a details form to the profile and stores an anonymized
// snapshot. A snapshot that fails contact validation is not committed but the
// profile keeps the submitted values.
func (a *Assistant) SaveDetails(st *session.State, form map[string]any) (bool, error) {
	if err := st.ApplyDetails(form); err != nil {
		return false, err
	}
	st.Say(session.RoleBot, "Details saved.")

	if _, err := a.store.Submit(st.Profile); err != nil {
		a.logger.Warn("details saved in session only", zap.Error(err))
		return false, nil
	}
	return true, nil
}

// SaveTechStack records the technologies declared as free text.
func (a *Assistant) SaveTechStack(st *session.State, text string) []string {
	techs, msg := a.setTechStack(st, text)
	st.Say(session.RoleBot, msg)
	return techs
}

// GenerateQuestions builds a new question set for the declared tech stack,
// replacing any previous set and its answers.
func (a *Assistant) GenerateQuestions(ctx context.Context, st *session.State, perTech int, useAI bool) (*questions.Set, error) {
	set, msg, err := a.generate(ctx, st, perTech, useAI)
	if err != nil {
		return nil, err
	}
	st.Say(session.RoleBot, msg)
	return set, nil
}

func (a *Assistant) setTechStack(st *session.State, text string) ([]string, string) {
	techs := session.ParseTechStack(text)
	st.SetTechStack(techs)
	return techs, "Tech stack recorded: " + strings.Join(techs, ", ")
}

func (a *Assistant) generate(ctx context.Context, st *session.State, perTech int, useAI bool) (*questions.Set, string, error) {
	if len(st.Profile.TechStack) == 0 {
		return nil, "", ErrNoTechStack
	}
	if perTech < MinPerTech || perTech > MaxPerTech {
		return nil, "", fmt.Errorf("%w: got %d", ErrPerTechOutside, perTech)
	}

	set := a.questions.Generate(ctx, st.Profile.TechStack, perTech, st.Profile.YearsExp, useAI)
	st.SetQuestions(set)

	kind := "fast local"
	if useAI && a.AIAvailable() {
		kind = "AI-powered"
	}

	return set, fmt.Sprintf("Generated technical questions using %s generator.", kind), nil
}

// PerTech is the default number of questions per technology.
func (a *Assistant) PerTech() int {
	return a.perTech
}

// Finalize scores the answers, stores the final snapshot and ends the conversation.
func (a *Assistant) Finalize(st *session.State) evaluation.Result {
	result := evaluation.Evaluate(st.Answers, st.Profile.TechStack)
	st.Evaluation = &result

	if _, err := a.store.Submit(st.Profile); err != nil {
		a.logger.Warn("final snapshot not stored", zap.Error(err))
	}

	st.Say(session.RoleBot, "Conversation concluded. Thank you!")
	st.Ended = true

	a.logger.Info("conversation finalized",
		zap.Int("total_score", result.TotalScore),
		zap.Int("max_score", result.MaxScore),
		zap.Int("answered", result.Answered),
		zap.String("rating", string(result.Rating())),
	)

	return result
}

// Reset discards the session and starts over.
func (a *Assistant) Reset(st *session.State) {
	st.Reset()
	a.logger.Info("conversation reset")
}
