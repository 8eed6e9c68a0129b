package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"google.golang.org/genai"

	"github.com/spigell/talent-scout/internal/ai"
)

type fakeModels struct {
	mu    sync.Mutex
	calls []modelCall
	resp  *genai.GenerateContentResponse
	err   error
}

type modelCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, modelCall{model: model, contents: contents, config: config})
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func TestGeneratorGenerateContent(t *testing.T) {
	models := &fakeModels{resp: textResponse("1. What is a goroutine?", "  ", "2. What is a channel?")}
	g := &Generator{models: models, modelName: "gemini-test"}

	out, err := g.GenerateContent(context.Background(), "  prompt  ", ai.Options{MaxOutputTokens: 300, Temperature: 0.2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if out != "1. What is a goroutine?\n2. What is a channel?" {
		t.Fatalf("unexpected output: %q", out)
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected a single call, got %d", len(models.calls))
	}

	call := models.calls[0]
	if call.model != "gemini-test" {
		t.Fatalf("unexpected model: %q", call.model)
	}
	if call.config == nil || call.config.MaxOutputTokens != 300 {
		t.Fatalf("expected max output tokens to be set, got %+v", call.config)
	}
	if call.config.Temperature == nil || *call.config.Temperature != float32(0.2) {
		t.Fatalf("expected temperature to be set")
	}
	if len(call.contents) != 1 || call.contents[0].Parts[0].Text != "prompt" {
		t.Fatalf("unexpected contents: %+v", call.contents)
	}
}

func TestGeneratorDoesNotRetryOnError(t *testing.T) {
	models := &fakeModels{err: genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}}
	g := &Generator{models: models, modelName: "gemini-test"}

	_, err := g.GenerateContent(context.Background(), "prompt", ai.Options{})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected wrapped api error, got %v", err)
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
}

func TestGeneratorRejectsEmptyResponse(t *testing.T) {
	models := &fakeModels{resp: &genai.GenerateContentResponse{}}
	g := &Generator{models: models, modelName: "gemini-test"}

	if _, err := g.GenerateContent(context.Background(), "prompt", ai.Options{}); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestGeneratorRejectsEmptyPrompt(t *testing.T) {
	models := &fakeModels{resp: textResponse("unused")}
	g := &Generator{models: models, modelName: "gemini-test"}

	if _, err := g.GenerateContent(context.Background(), "   ", ai.Options{}); err == nil {
		t.Fatal("expected error for empty prompt")
	}

	if len(models.calls) != 0 {
		t.Fatalf("expected no calls, got %d", len(models.calls))
	}
}

func TestNilGenerator(t *testing.T) {
	var g *Generator
	if _, err := g.GenerateContent(context.Background(), "prompt", ai.Options{}); err == nil {
		t.Fatal("expected error for nil generator")
	}
	if g.Model() != "" {
		t.Fatalf("expected empty model for nil generator")
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", defaultModel},
		{"  ", defaultModel},
		{"models/gemini-1.5-pro", "gemini-1.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), " ", ""); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
