package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Scores rate one participant's communication on a 1..10 scale.
type Scores struct {
	Clarity     int    `json:"clarityScore"`
	Pacing      int    `json:"pacingScore"`
	Engagement  int    `json:"engagementScore"`
	Suggestions string `json:"suggestions"`
}

type Analysis struct {
	Interviewer Scores `json:"interviewer"`
	Candidate   Scores `json:"candidate"`
}

type Analyzer interface {
	AnalyzeInterview(ctx context.Context, transcript, interviewerName, candidateName string) (*Analysis, error)
	Close() error
}

var ErrUnparseable = errors.New("failed to parse AI feedback")

const promptTemplate = `You are an interview coach analyzing a recorded interview transcript.

Participants:
- Interviewer (employer): %s
- Candidate (student): %s

Transcript:
%s

Analyze the communication quality of BOTH participants. For each person, provide:
1. Clarity score (1-10): How clear and understandable was their communication?
2. Pacing score (1-10): Was their speaking pace appropriate? Not too fast or slow?
3. Engagement score (1-10): Did they seem engaged, attentive, and enthusiastic?
4. 2-3 specific, actionable suggestions for improvement

Be constructive and encouraging. Focus on communication skills, not technical content.

Respond with ONLY valid JSON in this exact format:
{
  "interviewer": {"clarityScore": 8, "pacingScore": 7, "engagementScore": 9, "suggestions": "..."},
  "candidate": {"clarityScore": 7, "pacingScore": 8, "engagementScore": 8, "suggestions": "..."}
}`

func BuildPrompt(transcript, interviewerName, candidateName string) string {
	return fmt.Sprintf(promptTemplate, interviewerName, candidateName, transcript)
}

// replyScores is the model's view of Scores; models sometimes answer with
// fractional scores.
type replyScores struct {
	Clarity     float64 `json:"clarityScore"`
	Pacing      float64 `json:"pacingScore"`
	Engagement  float64 `json:"engagementScore"`
	Suggestions string  `json:"suggestions"`
}

func (r replyScores) scores() Scores {
	return Scores{
		Clarity:     clampScore(r.Clarity),
		Pacing:      clampScore(r.Pacing),
		Engagement:  clampScore(r.Engagement),
		Suggestions: strings.TrimSpace(r.Suggestions),
	}
}

// ParseAnalysis decodes a model reply. Markdown fences and surrounding prose
// are tolerated; scores are rounded and clamped into 1..10.
func ParseAnalysis(raw string) (*Analysis, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, ErrUnparseable
	}

	var reply struct {
		Interviewer replyScores `json:"interviewer"`
		Candidate   replyScores `json:"candidate"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return &Analysis{
		Interviewer: reply.Interviewer.scores(),
		Candidate:   reply.Candidate.scores(),
	}, nil
}

func clampScore(v float64) int {
	switch r := math.Round(v); {
	case math.IsNaN(r) || r < 1:
		return 1
	case r > 10:
		return 10
	default:
		return int(r)
	}
}
