package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/lohith8088/UrbanFix-Backend/domain"
)

const classifyPrompt = `Classify this civic issue into one of:
[Pothole, Garbage, Streetlight, Drainage, Other].
Only return the category name.

Description: %q`

const draftPrompt = `Draft a short formal email to the concerned civic authority about this issue report.
Keep it concise and professional, signed off by the "UrbanFix Civic Reporting System".

Title: %s
Description: %s
Address: %s
Category: %s`

// GeminiReportAI classifies reports and drafts authority emails through a
// Gemini model.
type GeminiReportAI struct {
	llm llms.Model
}

func NewGeminiReportAI(ctx context.Context, apiKey, model string) (*GeminiReportAI, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &GeminiReportAI{llm: llm}, nil
}

func (a *GeminiReportAI) ClassifyReport(ctx context.Context, description string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, a.llm, fmt.Sprintf(classifyPrompt, description))
	if err != nil {
		return "", err
	}
	category := strings.TrimSpace(out)
	if category == "" {
		category = "Other"
	}
	return category, nil
}

func (a *GeminiReportAI) DraftAuthorityEmail(ctx context.Context, report *domain.Report) (string, error) {
	prompt := fmt.Sprintf(draftPrompt, report.Title, report.Description, report.Address, report.Category)
	out, err := llms.GenerateFromSinglePrompt(ctx, a.llm, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
