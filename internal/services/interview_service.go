package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Ethansurfas/launchpad/internal/models"
	mongorepo "github.com/Ethansurfas/launchpad/internal/repositories/mongo"
	pgrepo "github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	minTimeSlots        = 2
	msgTimeSelected     = "Time already selected"
	msgInvalidSlot      = "Invalid time slot"
	msgInvalidUpdate    = "Invalid update"
	msgInterviewChanged = "Interview was updated concurrently"
)

type CreateInterviewInput struct {
	ApplicationID string      `json:"application_id"`
	Duration      int         `json:"duration"`
	TimeSlots     []time.Time `json:"time_slots"`
}

type InterviewService interface {
	Create(ctx context.Context, employerID string, in CreateInterviewInput) (*models.Interview, error)
	List(ctx context.Context, userID string) ([]models.Interview, error)
	Get(ctx context.Context, userID, id string) (*models.Interview, error)
	SelectSlot(ctx context.Context, userID, id, slotID string) (*models.Interview, error)
	UpdateStatus(ctx context.Context, userID, id string, status models.InterviewStatus) (*models.Interview, error)
	History(ctx context.Context, userID, id string) ([]models.InterviewTransition, error)
}

type interviewService struct {
	interviews pgrepo.InterviewRepository
	apps       pgrepo.ApplicationRepository
	users      pgrepo.UserRepository
	events     mongorepo.EventRepository
	log        transitionLog
}

func NewInterviewService(
	interviews pgrepo.InterviewRepository,
	apps pgrepo.ApplicationRepository,
	users pgrepo.UserRepository,
	events mongorepo.EventRepository,
	log logrus.FieldLogger,
) InterviewService {
	tl := newTransitionLog(events, log)
	return &interviewService{interviews: interviews, apps: apps, users: users, events: tl.events, log: tl}
}

func (s *interviewService) Create(ctx context.Context, employerID string, in CreateInterviewInput) (*models.Interview, error) {
	const op = "InterviewService.Create"

	if len(in.TimeSlots) < minTimeSlots {
		return nil, utils.E(utils.CodeInvalidArgument, op, "At least 2 time slots required", nil)
	}
	if in.ApplicationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application_id is required", nil)
	}
	if in.Duration <= 0 {
		in.Duration = models.DefaultInterviewDuration
	}

	u, err := loadUser(ctx, s.users, op, employerID)
	if err != nil {
		return nil, err
	}
	app, err := s.apps.Get(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}
	if app.Job == nil || !u.WorksFor(app.Job.CompanyID) {
		return nil, utils.Unauthorized(op)
	}
	if _, err := models.NextApplicationStatus(app.Status, models.ApplicationInterview); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Application can no longer be interviewed", err)
	}

	slots := append([]time.Time(nil), in.TimeSlots...)
	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })

	iv := &models.Interview{
		ID:            uuid.NewString(),
		ApplicationID: app.ID,
		Duration:      in.Duration,
		Status:        models.InterviewPendingResponse,
	}
	for _, t := range slots {
		iv.TimeSlots = append(iv.TimeSlots, models.InterviewTimeSlot{
			ID:          uuid.NewString(),
			InterviewID: iv.ID,
			StartTime:   t.UTC(),
		})
	}

	if err := s.interviews.CreateWithSlots(ctx, iv); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create interview", err)
	}
	return s.reload(ctx, op, iv.ID)
}

func (s *interviewService) List(ctx context.Context, userID string) ([]models.Interview, error) {
	const op = "InterviewService.List"

	u, err := loadUser(ctx, s.users, op, userID)
	if err != nil {
		return nil, err
	}

	var out []models.Interview
	switch u.Role {
	case models.RoleEmployer:
		if u.CompanyID == nil {
			return []models.Interview{}, nil
		}
		out, err = s.interviews.ListForCompany(ctx, *u.CompanyID)
	default:
		out, err = s.interviews.ListForCandidate(ctx, u.ID)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list interviews", err)
	}
	return out, nil
}

// Get returns the interview with only the feedback addressed to the caller.
func (s *interviewService) Get(ctx context.Context, userID, id string) (*models.Interview, error) {
	const op = "InterviewService.Get"

	iv, _, err := participantInterview(ctx, s.interviews, s.users, op, userID, id)
	if err != nil {
		return nil, err
	}
	mine := make([]models.InterviewFeedback, 0, 1)
	for _, fb := range iv.Feedback {
		if fb.RecipientID == userID {
			mine = append(mine, fb)
		}
	}
	iv.Feedback = mine
	return iv, nil
}

func (s *interviewService) SelectSlot(ctx context.Context, userID, id, slotID string) (*models.Interview, error) {
	const op = "InterviewService.SelectSlot"

	iv, u, err := participantInterview(ctx, s.interviews, s.users, op, userID, id)
	if err != nil {
		return nil, err
	}
	if iv.Application.UserID != u.ID {
		return nil, utils.Unauthorized(op)
	}

	next, err := models.NextInterviewStatus(iv.Status, models.EventSelectSlot)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, msgTimeSelected, err)
	}
	slot := iv.Slot(slotID)
	if slot == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, msgInvalidSlot, nil)
	}

	if err := s.interviews.SelectSlot(ctx, id, slotID, slot.StartTime); err != nil {
		switch {
		case errors.Is(err, utils.ErrConflict):
			return nil, utils.E(utils.CodeInvalidArgument, op, msgTimeSelected, err)
		case errors.Is(err, utils.ErrNotFound):
			return nil, utils.E(utils.CodeInvalidArgument, op, msgInvalidSlot, err)
		default:
			return nil, utils.E(utils.CodeInternal, op, "failed to select time slot", err)
		}
	}
	s.log.record(ctx, id, u.ID, models.EventSelectSlot, iv.Status, next)
	return s.reload(ctx, op, id)
}

// UpdateStatus lets a participant complete or cancel the interview.
func (s *interviewService) UpdateStatus(ctx context.Context, userID, id string, status models.InterviewStatus) (*models.Interview, error) {
	const op = "InterviewService.UpdateStatus"

	iv, u, err := participantInterview(ctx, s.interviews, s.users, op, userID, id)
	if err != nil {
		return nil, err
	}
	ev, ok := models.EventForStatus(status)
	if !ok {
		return nil, utils.E(utils.CodeInvalidArgument, op, msgInvalidUpdate, nil)
	}
	next, err := models.NextInterviewStatus(iv.Status, ev)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, msgInvalidUpdate, err)
	}

	if err := s.interviews.Transition(ctx, id, iv.Status, next); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, msgInterviewChanged, err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update interview", err)
	}
	s.log.record(ctx, id, u.ID, ev, iv.Status, next)
	return s.reload(ctx, op, id)
}

func (s *interviewService) History(ctx context.Context, userID, id string) ([]models.InterviewTransition, error) {
	const op = "InterviewService.History"

	if _, _, err := participantInterview(ctx, s.interviews, s.users, op, userID, id); err != nil {
		return nil, err
	}
	out, err := s.events.ListByInterview(ctx, id)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load interview history", err)
	}
	if out == nil {
		out = []models.InterviewTransition{}
	}
	return out, nil
}

func (s *interviewService) reload(ctx context.Context, op, id string) (*models.Interview, error) {
	iv, err := s.interviews.Get(ctx, id)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load interview", err)
	}
	iv.Feedback = nil
	return iv, nil
}
