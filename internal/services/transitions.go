package services

import (
	"context"
	"time"

	"github.com/Ethansurfas/launchpad/internal/models"
	mongorepo "github.com/Ethansurfas/launchpad/internal/repositories/mongo"
	"github.com/sirupsen/logrus"
)

// transitionLog appends applied interview transitions to the event log.
// The log is an audit trail; a failed append never fails the request.
type transitionLog struct {
	events mongorepo.EventRepository
	log    logrus.FieldLogger
}

func newTransitionLog(events mongorepo.EventRepository, log logrus.FieldLogger) transitionLog {
	if events == nil {
		events = mongorepo.NopEventRepo{}
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return transitionLog{events: events, log: log}
}

func (t transitionLog) record(ctx context.Context, interviewID, actorID string, ev models.InterviewEvent, from, to models.InterviewStatus) {
	err := t.events.Append(ctx, &models.InterviewTransition{
		InterviewID: interviewID,
		ActorID:     actorID,
		Event:       ev,
		From:        from,
		To:          to,
		At:          time.Now().UTC(),
	})
	if err != nil {
		t.log.WithFields(logrus.Fields{
			"interview_id": interviewID,
			"event":        ev,
		}).WithError(err).Warn("interview transition not logged")
	}
}
