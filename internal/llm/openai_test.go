package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kirthika85/appealgen/internal/model"
	"github.com/sashabaranov/go-openai"
)

func testRequest() GenerateRequest {
	return GenerateRequest{
		ClaimNumber:        "1001",
		ClaimDate:          "2024-01-05",
		ServiceDescription: "Knee Surgery",
		AmountBilled:       "$5,000.00",
		DenialReason:       "Not medically necessary",
		Patient: model.PatientProfile{
			Name:         "Jane Smith",
			PolicyNumber: "POL-44821",
			Address:      "482 Cedar Lane",
		},
		ClinicalExcerpt: "Patient presented with chronic knee pain.",
		ReferenceDate:   "Monday, January 20, 2024",
	}
}

func TestOpenAIProvider_Generate_Success(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		var chatReq openai.ChatCompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&chatReq)
		if len(chatReq.Messages) == 2 {
			gotPrompt = chatReq.Messages[1].Content
		}

		resp := openai.ChatCompletionResponse{
			ID:    "chatcmpl-123",
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Index: 0,
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: "Dear Claims Review Department, I am writing to appeal claim 1001.",
					},
					FinishReason: "stop",
				},
			},
			Usage: openai.Usage{TotalTokens: 150},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	config := Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
		Timeout: 5,
	}
	provider, err := NewOpenAIProvider(config)
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(resp.Letter, "claim 1001") {
		t.Errorf("Unexpected letter: %s", resp.Letter)
	}
	if resp.TokensUsed != 150 {
		t.Errorf("TokensUsed = %d, want 150", resp.TokensUsed)
	}

	// The default prompt carries exactly this claim's fields.
	for _, want := range []string{"1001", "Knee Surgery", "$5,000.00", "Not medically necessary", "Jane Smith"} {
		if !strings.Contains(gotPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestOpenAIProvider_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Generate(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected error on quota failure")
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider(Config{})
	if err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestBuildPrompt_ScopedToOneClaim(t *testing.T) {
	prompt := BuildPrompt(testRequest())

	for _, want := range []string{
		"Service - Knee Surgery",
		"Amount Billed - $5,000.00",
		"Claim Number - 1001",
		"Reason for Denial: Not medically necessary",
		"Patient Name: Jane Smith",
		"Current Date: Monday, January 20, 2024",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
