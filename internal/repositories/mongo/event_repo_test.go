package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/Ethansurfas/launchpad/internal/models"
	mongorepo "github.com/Ethansurfas/launchpad/internal/repositories/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestEventRepoAppend(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("writes snake case document with timestamp", func(mt *mtest.T) {
		repo := mongorepo.NewEventRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		e := &models.InterviewTransition{
			InterviewID: "iv-1",
			ActorID:     "user-1",
			Event:       models.EventJoin,
			From:        models.InterviewScheduled,
			To:          models.InterviewInProgress,
		}
		if err := repo.Append(context.Background(), e); err != nil {
			mt.Fatalf("Append: %v", err)
		}
		if e.At.IsZero() {
			mt.Fatalf("expected At to be stamped")
		}

		cmd := mt.GetStartedEvent().Command
		if got := cmd.Lookup("insert").StringValue(); got != mongorepo.EventsCollection {
			mt.Fatalf("insert into %q, want %q", got, mongorepo.EventsCollection)
		}
		docs, err := cmd.Lookup("documents").Array().Values()
		if err != nil || len(docs) != 1 {
			mt.Fatalf("documents = %v, %v", docs, err)
		}
		doc := docs[0].Document()
		for key, want := range map[string]string{
			"interview_id": "iv-1",
			"actor_id":     "user-1",
			"event":        "join",
			"from":         "SCHEDULED",
			"to":           "IN_PROGRESS",
		} {
			if got := doc.Lookup(key).StringValue(); got != want {
				mt.Fatalf("%s = %q, want %q", key, got, want)
			}
		}
		if at := doc.Lookup("at"); at.Type != bsontype.DateTime {
			mt.Fatalf("at stored as %v, want datetime", at.Type)
		}
	})

	mt.Run("keeps caller timestamp", func(mt *mtest.T) {
		repo := mongorepo.NewEventRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
		if err := repo.Append(context.Background(), &models.InterviewTransition{InterviewID: "iv-1", At: at}); err != nil {
			mt.Fatalf("Append: %v", err)
		}
		docs, _ := mt.GetStartedEvent().Command.Lookup("documents").Array().Values()
		if got := docs[0].Document().Lookup("at").Time(); !got.Equal(at) {
			mt.Fatalf("at = %s, want %s", got, at)
		}
	})

	mt.Run("surfaces server errors", func(mt *mtest.T) {
		repo := mongorepo.NewEventRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad value"}))

		if err := repo.Append(context.Background(), &models.InterviewTransition{InterviewID: "iv-1"}); err == nil {
			mt.Fatalf("expected error")
		}
	})
}

func TestEventRepoListByInterview(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("filters by interview and sorts on at", func(mt *mtest.T) {
		repo := mongorepo.NewEventRepo(mt.DB)
		first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		second := first.Add(45 * time.Minute)
		ns := mt.DB.Name() + "." + mongorepo.EventsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "interview_id", Value: "iv-1"},
				{Key: "actor_id", Value: "user-1"},
				{Key: "event", Value: "join"},
				{Key: "from", Value: "SCHEDULED"},
				{Key: "to", Value: "IN_PROGRESS"},
				{Key: "at", Value: first},
			},
			bson.D{
				{Key: "interview_id", Value: "iv-1"},
				{Key: "actor_id", Value: "user-2"},
				{Key: "event", Value: "complete"},
				{Key: "from", Value: "IN_PROGRESS"},
				{Key: "to", Value: "COMPLETED"},
				{Key: "at", Value: second},
			},
		))

		got, err := repo.ListByInterview(context.Background(), "iv-1")
		if err != nil {
			mt.Fatalf("ListByInterview: %v", err)
		}
		if len(got) != 2 {
			mt.Fatalf("expected 2 events, got %d", len(got))
		}
		if got[0].Event != models.EventJoin || got[0].ActorID != "user-1" || !got[0].At.Equal(first) {
			mt.Fatalf("unexpected first event %+v", got[0])
		}
		if got[1].To != models.InterviewCompleted || got[1].From != models.InterviewInProgress || !got[1].At.Equal(second) {
			mt.Fatalf("unexpected second event %+v", got[1])
		}

		cmd := mt.GetStartedEvent().Command
		if id := cmd.Lookup("filter", "interview_id").StringValue(); id != "iv-1" {
			mt.Fatalf("filter interview_id = %q", id)
		}
		sort, err := cmd.Lookup("sort").Document().Elements()
		if err != nil || len(sort) != 1 || sort[0].Key() != "at" || sort[0].Value().AsInt64() != 1 {
			mt.Fatalf("sort = %v, %v; want {at: 1}", sort, err)
		}
	})

	mt.Run("empty result", func(mt *mtest.T) {
		repo := mongorepo.NewEventRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+mongorepo.EventsCollection, mtest.FirstBatch))

		got, err := repo.ListByInterview(context.Background(), "iv-2")
		if err != nil || len(got) != 0 {
			mt.Fatalf("ListByInterview = %v, %v", got, err)
		}
	})
}
