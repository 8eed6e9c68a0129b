package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/talent-scout/internal/ai"
	"github.com/spigell/talent-scout/internal/session"
)

func TestHandleMessageRouting(t *testing.T) {
	tests := []struct {
		message string
		handler string
	}{
		{message: "EXIT", handler: "exit"},
		{message: "help", handler: "help"},
		{message: "What do I write in desired positions?", handler: "position_help"},
		{message: "How do I fill the tech stack?", handler: "tech_stack_help"},
		{message: "how many years should I enter", handler: "experience_help"},
		{message: "which phone format?", handler: "contact_help"},
		{message: "what about my name", handler: "name_help"},
		{message: "Go, Kubernetes", handler: "tech_stack"},
		{message: "1, 2, 3", handler: "fallback"},
		{message: "generate please", handler: "fallback"},
		{message: "hello there", handler: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			a := newAssistant(ai.Disabled("test"))
			st := session.New()

			reply, err := a.HandleMessage(context.Background(), st, tt.message)
			require.NoError(t, err)
			assert.Equal(t, tt.handler, reply.Handler)
			require.Len(t, st.Conversation, 2)
			assert.Equal(t, session.RoleUser, st.Conversation[0].Role)
			assert.Equal(t, reply.Text, st.Conversation[1].Text)
		})
	}
}

func TestHandleMessageIgnoresBlank(t *testing.T) {
	a := newAssistant(ai.Disabled("test"))
	st := session.New()

	reply, err := a.HandleMessage(context.Background(), st, "   ")
	require.NoError(t, err)
	assert.Equal(t, Reply{}, reply)
	assert.Empty(t, st.Conversation)
}

func TestHandleMessageExit(t *testing.T) {
	a := newAssistant(ai.Disabled("test"))
	st := session.New()

	reply, err := a.HandleMessage(context.Background(), st, "bye")
	require.NoError(t, err)
	assert.True(t, reply.Ended)
	assert.True(t, st.Ended)
	assert.Equal(t, GoodbyeMessage, reply.Text)
}

func TestHandleMessageTechStackThenGenerate(t *testing.T) {
	adapter := &cannedAdapter{output: "1. A\n2. B\n3. C\n4. D"}
	a := newAssistant(adapter)
	st := session.New()

	reply, err := a.HandleMessage(context.Background(), st, "Python; Django, AWS")
	require.NoError(t, err)
	assert.Equal(t, "Tech stack recorded: Python, Django, AWS", reply.Text)
	assert.Equal(t, []string{"Python", "Django", "AWS"}, st.Profile.TechStack)

	reply, err = a.HandleMessage(context.Background(), st, "generate questions")
	require.NoError(t, err)
	assert.True(t, reply.Generated)
	assert.Equal(t, 0, adapter.calls)
	assert.Equal(t, 3, st.Questions.Len())
	qs, _ := st.Questions.Get("Python")
	assert.Len(t, qs, DefaultPerTech)

	reply, err = a.HandleMessage(context.Background(), st, "generate smart questions")
	require.NoError(t, err)
	assert.Equal(t, "Generated technical questions using AI-powered generator.", reply.Text)
	assert.Equal(t, 3, adapter.calls)
}

type failingHandler struct{}

func (failingHandler) Name() string                       { return "failing" }
func (failingHandler) Match(string, *session.State) bool { return true }
func (failingHandler) Handle(context.Context, *Assistant, *session.State, string) (Reply, error) {
	return Reply{}, errors.New("boom")
}

func TestHandleMessageWrapsHandlerError(t *testing.T) {
	a := newAssistant(ai.Disabled("test"))
	a.handlers = []Handler{failingHandler{}}

	_, err := a.HandleMessage(context.Background(), session.New(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing: boom")
}

func TestHandleMessageWithoutCatchAll(t *testing.T) {
	a := newAssistant(ai.Disabled("test"))
	a.handlers = []Handler{helpHandler{}}

	reply, err := a.HandleMessage(context.Background(), session.New(), "something")
	require.NoError(t, err)
	assert.Equal(t, FallbackMessage, reply.Text)
}

func TestHandlersOrder(t *testing.T) {
	a := newAssistant(ai.Disabled("test"))
	names := a.handlerNames()

	require.NotEmpty(t, names)
	assert.Equal(t, "exit", names[0])
	assert.Equal(t, "fallback", names[len(names)-1])
}
