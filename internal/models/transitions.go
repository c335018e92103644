package models

import (
	"errors"
	"fmt"
)

type InterviewEvent string

const (
	EventSelectSlot InterviewEvent = "select_slot"
	EventJoin       InterviewEvent = "join"
	EventComplete   InterviewEvent = "complete"
	EventCancel     InterviewEvent = "cancel"
)

var ErrInvalidTransition = errors.New("invalid status transition")

var interviewTransitions = map[InterviewStatus]map[InterviewEvent]InterviewStatus{
	InterviewPendingResponse: {
		EventSelectSlot: InterviewScheduled,
		EventCancel:     InterviewCancelled,
	},
	InterviewScheduled: {
		EventJoin:     InterviewInProgress,
		EventComplete: InterviewCompleted,
		EventCancel:   InterviewCancelled,
	},
	InterviewInProgress: {
		EventJoin:     InterviewInProgress,
		EventComplete: InterviewCompleted,
		EventCancel:   InterviewCancelled,
	},
}

// NextInterviewStatus applies event to current. COMPLETED and CANCELLED
// accept no events.
func NextInterviewStatus(current InterviewStatus, event InterviewEvent) (InterviewStatus, error) {
	if next, ok := interviewTransitions[current][event]; ok {
		return next, nil
	}
	return current, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, current)
}

func (s InterviewStatus) Terminal() bool {
	return s == InterviewCompleted || s == InterviewCancelled
}

// EventForStatus maps a client-requested interview status onto the event
// that produces it. Only completion and cancellation can be requested directly.
func EventForStatus(s InterviewStatus) (InterviewEvent, bool) {
	switch s {
	case InterviewCompleted:
		return EventComplete, true
	case InterviewCancelled:
		return EventCancel, true
	default:
		return "", false
	}
}

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:   {ApplicationReviewing, ApplicationInterview, ApplicationOffered, ApplicationRejected, ApplicationWithdrawn},
	ApplicationReviewing: {ApplicationInterview, ApplicationOffered, ApplicationRejected, ApplicationWithdrawn},
	ApplicationInterview: {ApplicationReviewing, ApplicationInterview, ApplicationOffered, ApplicationRejected, ApplicationWithdrawn},
	ApplicationOffered:   {ApplicationRejected, ApplicationWithdrawn},
}

func NextApplicationStatus(current, requested ApplicationStatus) (ApplicationStatus, error) {
	for _, s := range applicationTransitions[current] {
		if s == requested {
			return requested, nil
		}
	}
	return current, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current, requested)
}

func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	switch st := ApplicationStatus(s); st {
	case ApplicationPending, ApplicationReviewing, ApplicationInterview,
		ApplicationOffered, ApplicationRejected, ApplicationWithdrawn:
		return st, true
	default:
		return "", false
	}
}

func ParseInterviewStatus(s string) (InterviewStatus, bool) {
	switch st := InterviewStatus(s); st {
	case InterviewPendingResponse, InterviewScheduled, InterviewInProgress,
		InterviewCompleted, InterviewCancelled:
		return st, true
	default:
		return "", false
	}
}
