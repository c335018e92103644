package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Ethansurfas/launchpad/internal/metrics"
	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/providers/llm"
	"github.com/Ethansurfas/launchpad/internal/providers/stt"
	"github.com/Ethansurfas/launchpad/internal/providers/video"
	pgrepo "github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/google/uuid"
)

const (
	msgAnalysisFailed  = "Analysis failed"
	msgFeedbackExists  = "Feedback already generated"
	msgFeedbackCreated = "Feedback generated successfully"
	defaultInterviewer = "Interviewer"
	defaultCandidate   = "Candidate"
)

type FeedbackTimeouts struct {
	Video time.Duration
	STT   time.Duration
	LLM   time.Duration
}

type AnalyzeResult struct {
	Message  string                     `json:"message"`
	Feedback []models.InterviewFeedback `json:"feedback,omitempty"`
}

type FeedbackService interface {
	Analyze(ctx context.Context, userID, interviewID string) (*AnalyzeResult, error)
}

type feedbackService struct {
	interviews pgrepo.InterviewRepository
	users      pgrepo.UserRepository
	video      video.Provider
	stt        stt.Provider
	analyzer   llm.Analyzer
	timeouts   FeedbackTimeouts
}

func NewFeedbackService(
	interviews pgrepo.InterviewRepository,
	users pgrepo.UserRepository,
	videoProvider video.Provider,
	sttProvider stt.Provider,
	analyzer llm.Analyzer,
	timeouts FeedbackTimeouts,
) FeedbackService {
	return &feedbackService{
		interviews: interviews,
		users:      users,
		video:      videoProvider,
		stt:        sttProvider,
		analyzer:   analyzer,
		timeouts:   timeouts,
	}
}

// Analyze transcribes the interview recording and stores one feedback row per
// participant. The saved transcript survives a later analysis failure.
func (s *feedbackService) Analyze(ctx context.Context, userID, interviewID string) (*AnalyzeResult, error) {
	const op = "FeedbackService.Analyze"

	iv, _, err := participantInterview(ctx, s.interviews, s.users, op, userID, interviewID)
	if err != nil {
		return nil, err
	}
	if len(iv.Feedback) > 0 {
		return &AnalyzeResult{Message: msgFeedbackExists}, nil
	}
	if iv.RoomName == nil || *iv.RoomName == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "No room found for this interview", nil)
	}

	audioURL, err := s.recordingURL(ctx, *iv.RoomName)
	if err != nil {
		var ae *utils.AppError
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, providerError(op, msgAnalysisFailed, err)
	}

	transcript, err := s.transcribe(ctx, audioURL)
	if err != nil {
		return nil, providerError(op, msgAnalysisFailed, err)
	}
	if err := s.interviews.SetTranscription(ctx, iv.ID, transcript); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save transcription", err)
	}

	candidate := iv.Application.User
	candidateName := defaultCandidate
	if candidate != nil && strings.TrimSpace(candidate.Name) != "" {
		candidateName = candidate.Name
	}

	employee, err := s.users.FirstEmployee(ctx, iv.Application.Job.CompanyID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to load interviewer", err)
	}
	interviewerName := defaultInterviewer
	if employee != nil && strings.TrimSpace(employee.Name) != "" {
		interviewerName = employee.Name
	}

	analysis, err := s.analyze(ctx, transcript, interviewerName, candidateName)
	if err != nil {
		return nil, providerError(op, msgAnalysisFailed, err)
	}

	rows := []models.InterviewFeedback{
		feedbackRow(iv.ID, iv.Application.UserID, models.RoleStudent, analysis.Candidate),
	}
	if employee != nil {
		rows = append(rows, feedbackRow(iv.ID, employee.ID, models.RoleEmployer, analysis.Interviewer))
	}

	if err := s.interviews.CreateFeedback(ctx, iv.ID, rows); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return &AnalyzeResult{Message: msgFeedbackExists}, nil
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to save feedback", err)
	}
	return &AnalyzeResult{Message: msgFeedbackCreated, Feedback: rows}, nil
}

func (s *feedbackService) recordingURL(ctx context.Context, roomName string) (string, error) {
	const op = "FeedbackService.Analyze"

	ctx, cancel := withTimeout(ctx, s.timeouts.Video)
	defer cancel()

	start := time.Now()
	recs, err := s.video.ListRecordings(ctx, roomName)
	metrics.ObserveProvider("video", "list_recordings", start, err)
	if err != nil {
		return "", err
	}
	if len(recs) == 0 {
		return "", utils.E(utils.CodeInvalidArgument, op, "No recording found", nil)
	}

	start = time.Now()
	link, err := s.video.RecordingAccessLink(ctx, recs[0].ID)
	metrics.ObserveProvider("video", "recording_link", start, err)
	return link, err
}

func (s *feedbackService) transcribe(ctx context.Context, audioURL string) (string, error) {
	ctx, cancel := withTimeout(ctx, s.timeouts.STT)
	defer cancel()

	start := time.Now()
	text, err := s.stt.TranscribeURL(ctx, audioURL)
	metrics.ObserveProvider("stt", "transcribe", start, err)
	return text, err
}

func (s *feedbackService) analyze(ctx context.Context, transcript, interviewer, candidate string) (*llm.Analysis, error) {
	ctx, cancel := withTimeout(ctx, s.timeouts.LLM)
	defer cancel()

	start := time.Now()
	a, err := s.analyzer.AnalyzeInterview(ctx, transcript, interviewer, candidate)
	metrics.ObserveProvider("llm", "analyze", start, err)
	return a, err
}

func feedbackRow(interviewID, recipientID string, role models.UserRole, sc llm.Scores) models.InterviewFeedback {
	return models.InterviewFeedback{
		ID:              uuid.NewString(),
		InterviewID:     interviewID,
		RecipientID:     recipientID,
		RecipientRole:   role,
		ClarityScore:    sc.Clarity,
		PacingScore:     sc.Pacing,
		EngagementScore: sc.Engagement,
		Suggestions:     sc.Suggestions,
		CreatedAt:       time.Now().UTC(),
	}
}
