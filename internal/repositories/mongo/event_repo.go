package mongo

import (
	"context"
	"time"

	"github.com/Ethansurfas/launchpad/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const EventsCollection = "interview_events"

// EventRepository is the append-only log of interview status transitions.
type EventRepository interface {
	Append(ctx context.Context, e *models.InterviewTransition) error
	ListByInterview(ctx context.Context, interviewID string) ([]models.InterviewTransition, error)
}

type eventRepo struct {
	col *mongo.Collection
}

func NewEventRepo(db *mongo.Database) EventRepository {
	return &eventRepo{col: db.Collection(EventsCollection)}
}

func (r *eventRepo) Append(ctx context.Context, e *models.InterviewTransition) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, e)
	return err
}

func (r *eventRepo) ListByInterview(ctx context.Context, interviewID string) ([]models.InterviewTransition, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"interview_id": interviewID},
		options.Find().SetSort(bson.D{{Key: "at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.InterviewTransition
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NopEventRepo is used when no Mongo URI is configured.
type NopEventRepo struct{}

func (NopEventRepo) Append(context.Context, *models.InterviewTransition) error { return nil }

func (NopEventRepo) ListByInterview(context.Context, string) ([]models.InterviewTransition, error) {
	return nil, nil
}
