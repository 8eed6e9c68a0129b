package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/talent-scout/internal/ai"
	"github.com/spigell/talent-scout/internal/assistant"
	"github.com/spigell/talent-scout/internal/evaluation"
	"github.com/spigell/talent-scout/internal/questions"
	"github.com/spigell/talent-scout/internal/session"
)

func TestDefaultsUnmarshal(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if cfg.Questions.PerTech != 4 || cfg.Questions.UseAI {
		t.Fatalf("unexpected questions config: %+v", cfg.Questions)
	}
	if !cfg.AI.Enabled || cfg.AI.Provider != "gemini" || cfg.AI.MaxOutputTokens != 300 || cfg.AI.MaxLogLength != 200 {
		t.Fatalf("unexpected ai config: %+v", cfg.AI)
	}
	if cfg.AI.Temperature != 0.2 {
		t.Fatalf("unexpected temperature: %v", cfg.AI.Temperature)
	}
	if cfg.Export.Format != "json" {
		t.Fatalf("unexpected export format: %q", cfg.Export.Format)
	}
}

func TestConfigRedacted(t *testing.T) {
	cfg := Config{AI: AIConfig{Gemini: GeminiConfig{APIKey: "secret"}}}

	redacted := cfg.redacted()
	if redacted.AI.Gemini.APIKey != "***" {
		t.Fatalf("gemini key not redacted: %q", redacted.AI.Gemini.APIKey)
	}
	if redacted.AI.OpenAI.APIKey != "" {
		t.Fatalf("empty openai key must stay empty, got %q", redacted.AI.OpenAI.APIKey)
	}
	if cfg.AI.Gemini.APIKey != "secret" {
		t.Fatal("redacted must return a copy")
	}
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, key := range append(append([]string{}, geminiKeyEnv...), openAIKeyEnv...) {
		t.Setenv(key, "")
	}
}

func TestNewAdapterDisabledByConfig(t *testing.T) {
	adapter, err := newAdapter(context.Background(), &AIConfig{Enabled: false, Provider: "gemini"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adapter.Enabled() {
		t.Fatal("expected disabled adapter")
	}
}

func TestNewAdapterMissingKeyIsDisabled(t *testing.T) {
	clearKeyEnv(t)

	for _, provider := range []string{"", "gemini", "OpenAI"} {
		adapter, err := newAdapter(context.Background(), &AIConfig{Enabled: true, Provider: provider}, zap.NewNop())
		if err != nil {
			t.Fatalf("provider %q: unexpected error: %v", provider, err)
		}
		if adapter.Enabled() {
			t.Fatalf("provider %q: expected disabled adapter", provider)
		}
		if !strings.Contains(ai.DisabledReason(adapter), "api key") {
			t.Fatalf("provider %q: unexpected reason %q", provider, ai.DisabledReason(adapter))
		}
	}
}

func TestNewAdapterUnsupportedProvider(t *testing.T) {
	if _, err := newAdapter(context.Background(), &AIConfig{Enabled: true, Provider: "anthropic"}, zap.NewNop()); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestNewAdapterUnreadableKeyFileIsError(t *testing.T) {
	cfg := &AIConfig{Enabled: true, Gemini: GeminiConfig{APIKeyFile: filepath.Join(t.TempDir(), "absent")}}

	if _, err := newAdapter(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for unreadable key file")
	}
}

func TestNewAdapterOpenAIFromEnv(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	adapter, err := newAdapter(context.Background(), &AIConfig{Enabled: true, Provider: "openai"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !adapter.Enabled() {
		t.Fatal("expected enabled adapter")
	}
}

func testSet() *questions.Set {
	set := questions.NewSet()
	set.Put("Go", []string{"What is a goroutine?", "Explain channels."}, questions.SourceLocal)
	return set
}

func TestWriteQuestionsText(t *testing.T) {
	var buf bytes.Buffer
	if err := writeQuestions(&buf, testSet(), formatText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Go (local)\n  1. What is a goroutine?\n  2. Explain channels.\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestWriteQuestionsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeQuestions(&buf, testSet(), formatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var entries []questions.Entry
	if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(entries) != 1 || entries[0].Tech != "Go" || len(entries[0].Questions) != 2 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestWriteQuestionsYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeQuestions(&buf, testSet(), "yml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "tech: Go") || !strings.Contains(buf.String(), "source: local") {
		t.Fatalf("unexpected yaml:\n%s", buf.String())
	}
}

func TestWriteQuestionsUnknownFormat(t *testing.T) {
	if err := writeQuestions(&bytes.Buffer{}, testSet(), "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWriteSummary(t *testing.T) {
	result := evaluation.Evaluate(map[string]string{
		"Go_1": "I implemented an algorithm with a clean design to improve performance.",
		"Go_2": "",
	}, nil)

	var buf bytes.Buffer
	if err := writeSummary(&buf, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Score: 10/20 (50.0%)", "Average", "Answered: 1", "Go_1: 10/10", "Go_2: 0/10 - No response provided"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary lacks %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Go_1") > strings.Index(out, "Go_2") {
		t.Fatalf("details must be sorted:\n%s", out)
	}
}

func TestWriteSummaryWithoutAnswers(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSummary(&buf, evaluation.Evaluate(nil, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "No answers to evaluate.\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestReadAnswers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	if err := os.WriteFile(path, []byte(`{"Python_1": "uses a list", "Python_2": ""}`), 0o600); err != nil {
		t.Fatalf("write answers: %v", err)
	}

	answers, err := readAnswers(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(answers) != 2 || answers["Python_1"] != "uses a list" {
		t.Fatalf("unexpected answers: %v", answers)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`["not", "an", "object"]`), 0o600); err != nil {
		t.Fatalf("write answers: %v", err)
	}
	if _, err := readAnswers(bad); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSaveDetailsKeepsMalformedContacts(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)
	a := assistant.New(assistant.Deps{Logger: zap.NewNop()})
	st := session.New()

	form := map[string]any{"full_name": "Jane", "email": "not-an-email", "phone": "12"}
	if err := saveDetails(a, st, form, logger); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.Profile.Email != "not-an-email" || st.Profile.Phone != "12" {
		t.Fatalf("malformed contacts must stay in the session: %+v", st.Profile)
	}
	if a.Store().Len() != 0 {
		t.Fatalf("expected no submission, got %d", a.Store().Len())
	}
	if logs.FilterMessageSnippet("details saved in session only").Len() != 1 {
		t.Fatalf("expected a warning, got %v", logs.All())
	}
}

func TestDetailFieldsMatchProfileForm(t *testing.T) {
	st := session.New()
	st.Profile.Email = "ab@example.com"
	st.SetTechStack([]string{"Go", "AWS"})

	fields := detailFields(st.Profile)
	form := make(map[string]any, len(fields))
	for _, f := range fields {
		form[f.key] = f.current
	}

	before := st.Profile
	if err := st.ApplyDetails(form); err != nil {
		t.Fatalf("detail fields must be accepted by the profile form: %v", err)
	}
	if st.Profile.Email != before.Email || strings.Join(st.Profile.TechStack, ",") != "Go,AWS" {
		t.Fatalf("round trip changed the profile: %+v", st.Profile)
	}
}
