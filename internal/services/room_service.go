package services

import (
	"context"
	"errors"
	"time"

	"github.com/Ethansurfas/launchpad/internal/metrics"
	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/providers/video"
	mongorepo "github.com/Ethansurfas/launchpad/internal/repositories/mongo"
	pgrepo "github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/sirupsen/logrus"
)

const msgRoomFailed = "Failed to create video room"

type Room struct {
	URL    string                 `json:"url"`
	Name   string                 `json:"name"`
	Status models.InterviewStatus `json:"status"`
}

type RoomService interface {
	Join(ctx context.Context, userID, interviewID string) (*Room, error)
}

type roomService struct {
	interviews pgrepo.InterviewRepository
	users      pgrepo.UserRepository
	video      video.Provider
	timeout    time.Duration
	log        transitionLog
}

func NewRoomService(
	interviews pgrepo.InterviewRepository,
	users pgrepo.UserRepository,
	provider video.Provider,
	timeout time.Duration,
	events mongorepo.EventRepository,
	log logrus.FieldLogger,
) RoomService {
	return &roomService{
		interviews: interviews,
		users:      users,
		video:      provider,
		timeout:    timeout,
		log:        newTransitionLog(events, log),
	}
}

// RoomName is the provider room name for an interview.
func RoomName(interviewID string) string { return "interview-" + interviewID }

// Join returns the interview's call room, creating it at the provider on
// first use. Joining marks the interview IN_PROGRESS; repeated joins return
// the same room.
func (s *roomService) Join(ctx context.Context, userID, interviewID string) (*Room, error) {
	const op = "RoomService.Join"

	iv, u, err := participantInterview(ctx, s.interviews, s.users, op, userID, interviewID)
	if err != nil {
		return nil, err
	}
	next, err := models.NextInterviewStatus(iv.Status, models.EventJoin)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Interview not ready to join", err)
	}

	if iv.RoomURL != nil && *iv.RoomURL != "" {
		if iv.Status != next {
			err := s.interviews.Transition(ctx, iv.ID, iv.Status, next)
			switch {
			case err == nil:
				s.log.record(ctx, iv.ID, u.ID, models.EventJoin, iv.Status, next)
			case !errors.Is(err, utils.ErrConflict):
				return nil, utils.E(utils.CodeInternal, op, "failed to update interview", err)
			}
		}
		return &Room{URL: *iv.RoomURL, Name: deref(iv.RoomName), Status: next}, nil
	}

	room, err := s.getOrCreate(ctx, RoomName(iv.ID))
	if err != nil {
		return nil, providerError(op, msgRoomFailed, err)
	}

	err = s.interviews.SetRoom(ctx, iv.ID, room.Name, room.URL, iv.Status, next)
	switch {
	case errors.Is(err, utils.ErrConflict):
		// another participant stored the room first
		cur, gerr := s.interviews.Get(ctx, iv.ID)
		if gerr != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to load interview", gerr)
		}
		if cur.RoomURL == nil || cur.Status != models.InterviewInProgress {
			return nil, utils.E(utils.CodeConflict, op, msgInterviewChanged, err)
		}
		return &Room{URL: *cur.RoomURL, Name: deref(cur.RoomName), Status: cur.Status}, nil
	case err != nil:
		return nil, utils.E(utils.CodeInternal, op, "failed to save room", err)
	}

	if iv.Status != next {
		s.log.record(ctx, iv.ID, u.ID, models.EventJoin, iv.Status, next)
	}
	return &Room{URL: room.URL, Name: room.Name, Status: next}, nil
}

func (s *roomService) getOrCreate(ctx context.Context, name string) (*video.Room, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	room, err := s.video.GetRoom(ctx, name)
	metrics.ObserveProvider("video", "get_room", start, err)
	if err != nil {
		return nil, err
	}
	if room != nil {
		return room, nil
	}

	start = time.Now()
	room, err = s.video.CreateRoom(ctx, name)
	metrics.ObserveProvider("video", "create_room", start, err)
	return room, err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
