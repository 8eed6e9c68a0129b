package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/session"
)

// Reply is what the assistant answers to a chat message.
type Reply struct {
	Text    string
	Handler string
	// Generated is set when the message produced a new question set.
	Generated bool
	// Ended is set when the candidate asked to leave.
	Ended bool
}

// Handler is a single step of the chat router. Handlers are tried in order,
// the first one that matches answers the message.
type Handler interface {
	Name() string
	Match(text string, st *session.State) bool
	Handle(ctx context.Context, a *Assistant, st *session.State, text string) (Reply, error)
}

// HandleMessage records a free text message and answers it.
func (a *Assistant) HandleMessage(ctx context.Context, st *session.State, message string) (Reply, error) {
	text := strings.TrimSpace(message)
	if text == "" {
		return Reply{}, nil
	}

	st.Say(session.RoleUser, text)

	for _, h := range a.handlers {
		if !h.Match(text, st) {
			continue
		}

		reply, err := h.Handle(ctx, a, st, text)
		if err != nil {
			return Reply{}, fmt.Errorf("%s: %w", h.Name(), err)
		}

		reply.Handler = h.Name()
		if reply.Text != "" {
			st.Say(session.RoleBot, reply.Text)
		}

		a.logger.Debug("chat step", zap.String("handler", h.Name()))
		return reply, nil
	}

	// DefaultHandlers ends with a catch-all, this is only reached with a custom list
	st.Say(session.RoleBot, FallbackMessage)
	return Reply{Text: FallbackMessage, Handler: "fallback"}, nil
}

// handlerNames returns the names of the configured chat steps.
func (a *Assistant) handlerNames() []string {
	names := make([]string, 0, len(a.handlers))
	for _, h := range a.handlers {
		names = append(names, h.Name())
	}
	return names
}
