package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// EmailGenerator produces outreach email bodies. The underlying service is
// stochastic; callers must not expect byte-for-byte reproducibility.
type EmailGenerator interface {
	GenerateColdEmail(ctx context.Context, company, title, description, resumeText string) (string, error)
	GenerateFollowup(ctx context.Context, company, title, originalBody, resumeText string) (string, error)
}

var _ EmailGenerator = (*LLMService)(nil)

type LLMService struct {
	// Hold the client so we don't recreate it on every call.
	Client llms.Model
}

func NewLLMService(apiKey, model string) (*LLMService, error) {
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return &LLMService{Client: llm}, nil
}

const coldEmailPromptTemplate = `Based on the following resume and job details, write a personalized cold email that:
1. Shows genuine interest in the company and role
2. Highlights relevant experience from the resume
3. Maintains a professional yet conversational tone
4. Is concise and impactful
5. Ends with a clear call to action

Resume:
%s

Job Details:
Company: %s
Position: %s
Description: %s

Write the email body only, without subject line or signature.`

const followupPromptTemplate = `Based on the following information, write a professional follow-up email that:
1. References the original email
2. Maintains interest in the position
3. Adds new value or information
4. Is concise and respectful
5. Has a clear call to action

Company: %s
Position: %s
Original Email:
%s

Resume:
%s

Write the email body only, without subject line or signature.`

func (s *LLMService) GenerateColdEmail(ctx context.Context, company, title, description, resumeText string) (string, error) {
	prompt := fmt.Sprintf(coldEmailPromptTemplate, resumeText, company, title, description)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(500),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailure, err)
	}
	return strings.TrimSpace(resp), nil
}

func (s *LLMService) GenerateFollowup(ctx context.Context, company, title, originalBody, resumeText string) (string, error) {
	prompt := fmt.Sprintf(followupPromptTemplate, company, title, originalBody, resumeText)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(300),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailure, err)
	}
	return strings.TrimSpace(resp), nil
}
