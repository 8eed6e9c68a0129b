package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/assistant"
	"github.com/spigell/talent-scout/internal/session"
	"github.com/spigell/talent-scout/internal/submission"
)

const (
	PromptDetails        = "Provide details"
	PromptTechStack      = "Enter tech stack"
	PromptGenerateLocal  = "Generate questions (fast local)"
	PromptGenerateAI     = "Generate questions (AI-powered)"
	PromptAnswer         = "Answer questions"
	PromptFinalize       = "Finalize and evaluate"
	PromptChat           = "Chat with the assistant"
	PromptConversation   = "Show conversation"
	PromptExport         = "Dump submissions to file"
	PromptReset          = "Reset conversation"
	PromptExit           = "Exit"
	greeting             = "Hello! I'm TalentScout, the hiring assistant. I'll collect your details and ask a few technical questions based on your tech stack."
	chatPromptLabel      = "You (empty line to go back)"
	answerPromptTemplate = "%s Q%d"
)

var errExit = errors.New("exit requested")

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run an interactive screening session",
	Run: func(_ *cobra.Command, _ []string) {
		chat()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// chat is the interactive entry point of the cli.
func chat() {
	ctx := context.Background()
	logger, config := setup()

	logger.Info("starting the talent-scout", zap.String("version", version))

	a := newAssistant(ctx, config, logger)
	st := session.New()
	st.Say(session.RoleBot, greeting)
	fmt.Println(greeting)

	for !st.Ended {
		fmt.Println(st.InfoPrompt())

		menu := promptui.Select{
			Label: "What next?",
			Items: menuItems(a),
			Size:  12,
		}

		_, action, err := menu.Run()
		if err != nil {
			if isPromptAbort(err) {
				logger.Info("exiting", zap.String("reason", "prompt closed"))
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, a, st, config, logger); err != nil {
			if errors.Is(err, errExit) || isPromptAbort(err) {
				return
			}
			logger.Error("action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func menuItems(a *assistant.Assistant) []string {
	items := []string{PromptDetails, PromptTechStack, PromptGenerateLocal}
	if a.AIAvailable() {
		items = append(items, PromptGenerateAI)
	}
	return append(items, PromptAnswer, PromptFinalize, PromptChat, PromptConversation, PromptExport, PromptReset, PromptExit)
}

func handleAction(ctx context.Context, action string, a *assistant.Assistant, st *session.State, config *Config, logger *zap.Logger) error {
	switch action {
	case PromptDetails:
		return provideDetails(a, st, logger)
	case PromptTechStack:
		text, err := ask("Tech stack (comma-separated)", strings.Join(st.Profile.TechStack, ", "))
		if err != nil {
			return err
		}
		a.SaveTechStack(st, text)
		printLastBotMessage(st)
		return nil
	case PromptGenerateLocal, PromptGenerateAI:
		set, err := a.GenerateQuestions(ctx, st, a.PerTech(), action == PromptGenerateAI)
		if err != nil {
			return err
		}
		printLastBotMessage(st)
		return writeQuestions(os.Stdout, set, formatText)
	case PromptAnswer:
		return answerQuestions(st)
	case PromptFinalize:
		result := a.Finalize(st)
		printLastBotMessage(st)
		return writeSummary(os.Stdout, result)
	case PromptChat:
		return freeChat(ctx, a, st)
	case PromptConversation:
		for _, msg := range st.Conversation {
			fmt.Printf("%s: %s\n", msg.Role, msg.Text)
		}
		return nil
	case PromptExport:
		filename, err := a.Store().DumpToTmpFile(config.Export.Format)
		if err != nil {
			return fmt.Errorf("dump submissions to file: %w", err)
		}
		logger.Info("dumping submissions to file", zap.String("filename", filename), zap.Int("count", a.Store().Len()))
		return nil
	case PromptReset:
		a.Reset(st)
		st.Say(session.RoleBot, greeting)
		fmt.Println(greeting)
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

type detailField struct {
	key, label, current string
}

func detailFields(p session.Profile) []detailField {
	return []detailField{
		{key: "full_name", label: "Full Name", current: p.FullName},
		{key: "email", label: "Email Address", current: p.Email},
		{key: "phone", label: "Phone Number", current: p.Phone},
		{key: "years_exp", label: "Years of Experience", current: p.YearsExp},
		{key: "desired_positions", label: "Desired Position(s)", current: p.DesiredPositions},
		{key: "location", label: "Current Location", current: p.Location},
		{key: "tech_stack", label: "Tech Stack (comma-separated)", current: strings.Join(p.TechStack, ", ")},
	}
}

func provideDetails(a *assistant.Assistant, st *session.State, logger *zap.Logger) error {
	fields := detailFields(st.Profile)

	form := make(map[string]any, len(fields))
	for _, f := range fields {
		value, err := ask(f.label, f.current)
		if err != nil {
			return err
		}
		form[f.key] = value
	}

	return saveDetails(a, st, form, logger)
}

// saveDetails keeps malformed contacts in the session and only warns that
// they were not stored as a submission.
func saveDetails(a *assistant.Assistant, st *session.State, form map[string]any, logger *zap.Logger) error {
	committed, err := a.SaveDetails(st, form)
	if err != nil {
		return err
	}
	printLastBotMessage(st)

	if !committed {
		logger.Warn("details saved in session only, some fields may be invalid",
			zap.String("hint", "check the email and phone format"),
			zap.Error(submission.Validate(st.Profile.Email, st.Profile.Phone)),
		)
	}
	return nil
}

func answerQuestions(st *session.State) error {
	if st.Questions.Len() == 0 {
		fmt.Println("No questions yet. Generate questions first.")
		return nil
	}

	for _, entry := range st.Questions.Entries() {
		fmt.Printf("\n%s\n", entry.Tech)
		for i, q := range entry.Questions {
			fmt.Printf("  %d. %s\n", i+1, q)
			answer, err := ask(fmt.Sprintf(answerPromptTemplate, entry.Tech, i+1), st.Answer(entry.Tech, i+1))
			if err != nil {
				return err
			}
			st.RecordAnswer(entry.Tech, i+1, answer)
		}
	}
	return nil
}

func freeChat(ctx context.Context, a *assistant.Assistant, st *session.State) error {
	for {
		text, err := ask(chatPromptLabel, "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return nil
		}

		reply, err := a.HandleMessage(ctx, st, text)
		if err != nil {
			return err
		}
		fmt.Printf("Bot: %s\n", reply.Text)

		if reply.Generated {
			if err := writeQuestions(os.Stdout, st.Questions, formatText); err != nil {
				return err
			}
		}
		if reply.Ended {
			return nil
		}
	}
}

func ask(label, current string) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   current,
		AllowEdit: true,
	}
	return p.Run()
}

func printLastBotMessage(st *session.State) {
	if n := len(st.Conversation); n > 0 {
		fmt.Printf("Bot: %s\n", st.Conversation[n-1].Text)
	}
}

func isPromptAbort(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}
