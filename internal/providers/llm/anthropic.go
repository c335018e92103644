package llm

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

const defaultAnthropicModel = "claude-sonnet-4-20250514"

// Anthropic analyzes transcripts with Claude through langchaingo.
type Anthropic struct {
	model llms.Model
}

func NewAnthropic(apiKey, modelName string) (*Anthropic, error) {
	if modelName == "" {
		modelName = defaultAnthropicModel
	}
	m, err := anthropic.New(anthropic.WithToken(apiKey), anthropic.WithModel(modelName))
	if err != nil {
		return nil, err
	}
	return &Anthropic{model: m}, nil
}

func (a *Anthropic) Close() error { return nil }

func (a *Anthropic) AnalyzeInterview(ctx context.Context, transcript, interviewerName, candidateName string) (*Analysis, error) {
	resp, err := llms.GenerateFromSinglePrompt(ctx, a.model,
		BuildPrompt(transcript, interviewerName, candidateName),
		llms.WithMaxTokens(1024),
		llms.WithTemperature(0.2),
	)
	if err != nil {
		return nil, err
	}
	return ParseAnalysis(resp)
}
