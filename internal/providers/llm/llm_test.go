package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

func TestParseAnalysis(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    Analysis
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"interviewer":{"clarityScore":8,"pacingScore":7,"engagementScore":9,"suggestions":"Slow down."},"candidate":{"clarityScore":6,"pacingScore":5,"engagementScore":7,"suggestions":" Use examples. "}}`,
			want: Analysis{
				Interviewer: Scores{Clarity: 8, Pacing: 7, Engagement: 9, Suggestions: "Slow down."},
				Candidate:   Scores{Clarity: 6, Pacing: 5, Engagement: 7, Suggestions: "Use examples."},
			},
		},
		{
			name: "fenced and clamped",
			raw:  "```json\n{\"interviewer\":{\"clarityScore\":12,\"pacingScore\":0,\"engagementScore\":5},\"candidate\":{\"clarityScore\":-3,\"pacingScore\":10,\"engagementScore\":1}}\n```",
			want: Analysis{
				Interviewer: Scores{Clarity: 10, Pacing: 1, Engagement: 5},
				Candidate:   Scores{Clarity: 1, Pacing: 10, Engagement: 1},
			},
		},
		{
			name: "fractional scores rounded",
			raw:  `{"interviewer":{"clarityScore":7.5,"pacingScore":6.4,"engagementScore":10.4},"candidate":{"clarityScore":0.4,"pacingScore":8.49,"engagementScore":9.5}}`,
			want: Analysis{
				Interviewer: Scores{Clarity: 8, Pacing: 6, Engagement: 10},
				Candidate:   Scores{Clarity: 1, Pacing: 8, Engagement: 10},
			},
		},
		{name: "no json", raw: "I cannot help with that.", wantErr: true},
		{name: "broken json", raw: `{"interviewer": {`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAnalysis(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, ErrUnparseable) {
					t.Fatalf("expected ErrUnparseable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAnalysis: %v", err)
			}
			if *got != tc.want {
				t.Fatalf("got %+v, want %+v", *got, tc.want)
			}
		})
	}
}

func TestBuildPromptNamesParticipants(t *testing.T) {
	p := BuildPrompt("Hello there.", "Dana", "Sam")
	for _, want := range []string{"Interviewer (employer): Dana", "Candidate (student): Sam", "Hello there."} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

type stubModel struct {
	reply  string
	prompt string
}

func (s *stubModel) GenerateContent(_ context.Context, msgs []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, m := range msgs {
		for _, p := range m.Parts {
			if tc, ok := p.(llms.TextContent); ok {
				s.prompt += tc.Text
			}
		}
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: s.reply}}}, nil
}

func (s *stubModel) Call(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, s, prompt, opts...)
}

func TestAnthropicAnalyzeInterview(t *testing.T) {
	m := &stubModel{reply: `{"interviewer":{"clarityScore":9,"pacingScore":8,"engagementScore":7,"suggestions":"a"},"candidate":{"clarityScore":5,"pacingScore":6,"engagementScore":7,"suggestions":"b"}}`}
	a := &Anthropic{model: m}

	got, err := a.AnalyzeInterview(context.Background(), "transcript text", "Dana", "Sam")
	if err != nil {
		t.Fatalf("AnalyzeInterview: %v", err)
	}
	if got.Interviewer.Clarity != 9 || got.Candidate.Clarity != 5 {
		t.Fatalf("unexpected analysis %+v", got)
	}
	if !strings.Contains(m.prompt, "transcript text") {
		t.Fatalf("prompt did not carry the transcript")
	}
}
