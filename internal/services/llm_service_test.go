package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// stubModel captures the prompt it was asked to complete.
type stubModel struct {
	lastPrompt string
	reply      string
	err        error
}

func (m *stubModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if len(messages) > 0 && len(messages[0].Parts) > 0 {
		if text, ok := messages[0].Parts[0].(llms.TextContent); ok {
			m.lastPrompt = text.Text
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := m.GenerateContent(ctx, []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}, options...)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

func TestGenerateColdEmailPromptAndTrim(t *testing.T) {
	stub := &stubModel{reply: "  Dear Hiring Manager, ...  \n"}
	svc := &LLMService{Client: stub}

	body, err := svc.GenerateColdEmail(context.Background(), "Stripe", "Backend Engineer", "build payments", "my resume")
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager, ...", body)

	assert.Contains(t, stub.lastPrompt, "Company: Stripe")
	assert.Contains(t, stub.lastPrompt, "Position: Backend Engineer")
	assert.Contains(t, stub.lastPrompt, "my resume")
	assert.Contains(t, stub.lastPrompt, "without subject line or signature")
}

func TestGenerateFollowupIncludesOriginalBody(t *testing.T) {
	stub := &stubModel{reply: "follow-up body"}
	svc := &LLMService{Client: stub}

	_, err := svc.GenerateFollowup(context.Background(), "Stripe", "Backend Engineer", "the original cold email", "my resume")
	require.NoError(t, err)
	assert.Contains(t, stub.lastPrompt, "the original cold email")
}

func TestGenerateWrapsFailureKind(t *testing.T) {
	stub := &stubModel{err: errors.New("rate limited")}
	svc := &LLMService{Client: stub}

	_, err := svc.GenerateColdEmail(context.Background(), "Stripe", "Backend Engineer", "d", "r")
	assert.ErrorIs(t, err, ErrGenerationFailure)

	_, err = svc.GenerateFollowup(context.Background(), "Stripe", "Backend Engineer", "o", "r")
	assert.ErrorIs(t, err, ErrGenerationFailure)
}
