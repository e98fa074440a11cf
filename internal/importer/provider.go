package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash"

// Provider sends one prompt with one credential and returns the raw reply
// text. Credentials are per-call because each user may bring their own key.
type Provider interface {
	Generate(ctx context.Context, credential, prompt string) (string, error)
}

type geminiProvider struct{}

func NewGeminiProvider() Provider {
	return &geminiProvider{}
}

func (p *geminiProvider) Generate(ctx context.Context, credential, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  credential,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", classifyCredentialErr(err)
	}

	result, err := client.Models.GenerateContent(ctx, geminiModel, genai.Text(prompt), nil)
	if err != nil {
		return "", classifyCredentialErr(err)
	}

	raw := result.Text()
	if raw == "" {
		return "", errors.New("empty model reply")
	}
	return raw, nil
}

// classifyCredentialErr folds the provider's many auth failure shapes into
// ErrInvalidCredential so callers can prompt for a new key.
func classifyCredentialErr(err error) error {
	msg := err.Error()
	for _, marker := range []string{
		"API key",
		"API_KEY",
		"401",
		"403",
		"UNAUTHENTICATED",
		"PERMISSION_DENIED",
		"authentication",
	} {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %v", ErrInvalidCredential, err)
		}
	}
	return err
}

// StripFences removes a markdown code fence wrapper from a model reply.
func StripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(strings.Trim(clean, "`"))
}
