// Package llm wraps the external narrative generators that produce
// appeal letters. Providers are stateless per call: every request
// carries the full context for exactly one claim, and nothing is
// shared between calls, so one claim's details can never bleed into
// another claim's letter.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirthika85/appealgen/internal/model"
)

// Provider defines the interface for narrative generators
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate produces one appeal letter from a per-claim request
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest is the complete generation context for one claim.
// It is built fresh per claim and never reused.
type GenerateRequest struct {
	ClaimNumber        string
	ClaimDate          string // As it appeared in the source document
	ServiceDescription string
	AmountBilled       string // Formatted dollar amount
	DenialReason       string

	Patient         model.PatientProfile
	ClinicalExcerpt string // Bounded excerpt of the clinical record
	ReferenceDate   string // Human-readable date for the letter

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model overrides the configured model (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// GenerateResponse contains the generated letter
type GenerateResponse struct {
	Letter     string
	Model      string
	TokensUsed int
}

// Config holds narrative generator configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, API-compatible proxies)
	BaseURL string

	// Timeout per generation call, seconds
	Timeout int

	// MaxTokens for letter generation
	MaxTokens int

	// Temperature for generation
	Temperature float32
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "",
		Model:       "",
		Timeout:     60,
		MaxTokens:   1200,
		Temperature: 0.7,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
		MaxTokens:   mc.MaxTokens,
		Temperature: mc.Temperature,
	}
}

// systemPrompt frames every generation call.
const systemPrompt = "You are an experienced medical billing advocate who writes " +
	"professional insurance claim appeal letters. You write in a polite, " +
	"factual tone and never invent clinical details beyond the provided records."

// BuildPrompt constructs the default appeal letter prompt for one
// claim. Only this claim's fields appear; the clinical excerpt is
// pre-bounded by the caller.
func BuildPrompt(req GenerateRequest) string {
	var b strings.Builder

	b.WriteString("Validate the claim based on these inputs:\n")
	fmt.Fprintf(&b, "1. Explanation of Benefits: Service - %s, Amount Billed - %s, Claim Date - %s, Claim Number - %s\n",
		req.ServiceDescription, req.AmountBilled, req.ClaimDate, req.ClaimNumber)
	fmt.Fprintf(&b, "2. Medical Records (excerpt): %s\n", req.ClinicalExcerpt)
	fmt.Fprintf(&b, "3. Reason for Denial: %s\n", req.DenialReason)

	b.WriteString(`
If the claim is valid, generate a professional appeal letter:
- Use a polite and professional tone.
- Clearly state the reason for the appeal.
- Explain the medical necessity of the procedures.
- Suggest why the denial reason should be reconsidered.
- Reference only this claim; do not mention any other claim.

`)
	fmt.Fprintf(&b, "Patient Name: %s\n", req.Patient.Name)
	fmt.Fprintf(&b, "Policy Number: %s\n", req.Patient.PolicyNumber)
	fmt.Fprintf(&b, "Patient Address: %s\n", req.Patient.Address)
	fmt.Fprintf(&b, "Current Date: %s\n", req.ReferenceDate)

	return b.String()
}
