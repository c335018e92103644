package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/Ethansurfas/launchpad/internal/testutil"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/google/uuid"
)

func seedApplication(t *testing.T, fx *testutil.Fixture) *models.Application {
	t.Helper()
	c := fx.Company("Umbrella")
	j := fx.Job(c.ID, "Chemist", models.JobFullTime)
	return fx.Application(j.ID, fx.Student("dee").ID)
}

func TestCreateWithSlotsSetsApplicationStatus(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := postgres.NewInterviewRepo(db)
	app := seedApplication(t, fx)

	id := uuid.NewString()
	start := time.Now().UTC().Add(48 * time.Hour)
	iv := &models.Interview{
		ID:            id,
		ApplicationID: app.ID,
		Duration:      45,
		Status:        models.InterviewPendingResponse,
		TimeSlots: []models.InterviewTimeSlot{
			{ID: uuid.NewString(), InterviewID: id, StartTime: start.Add(time.Hour)},
			{ID: uuid.NewString(), InterviewID: id, StartTime: start},
		},
	}
	if err := repo.CreateWithSlots(context.Background(), iv); err != nil {
		t.Fatalf("CreateWithSlots: %v", err)
	}

	var got models.Application
	db.Take(&got, "id = ?", app.ID)
	if got.Status != models.ApplicationInterview {
		t.Fatalf("expected application INTERVIEW, got %s", got.Status)
	}

	loaded, err := repo.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(loaded.TimeSlots) != 2 || !loaded.TimeSlots[0].StartTime.Before(loaded.TimeSlots[1].StartTime) {
		t.Fatalf("expected two slots ascending, got %+v", loaded.TimeSlots)
	}
}

func TestSelectSlotAtomic(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := postgres.NewInterviewRepo(db)
	ctx := context.Background()

	iv := fx.Interview(seedApplication(t, fx).ID, models.InterviewPendingResponse)

	t.Run("foreign slot rolls back", func(t *testing.T) {
		err := repo.SelectSlot(ctx, iv.ID, uuid.NewString(), time.Now())
		if !errors.Is(err, utils.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		got, _ := repo.Get(ctx, iv.ID)
		if got.Status != models.InterviewPendingResponse || got.ScheduledAt != nil {
			t.Fatalf("interview changed after rollback: %s %v", got.Status, got.ScheduledAt)
		}
	})

	slot := iv.TimeSlots[1]
	t.Run("selects", func(t *testing.T) {
		if err := repo.SelectSlot(ctx, iv.ID, slot.ID, slot.StartTime); err != nil {
			t.Fatalf("SelectSlot: %v", err)
		}
		got, _ := repo.Get(ctx, iv.ID)
		if got.Status != models.InterviewScheduled || got.ScheduledAt == nil || !got.ScheduledAt.Equal(slot.StartTime) {
			t.Fatalf("unexpected interview state: %s %v", got.Status, got.ScheduledAt)
		}
		selected := 0
		for _, s := range got.TimeSlots {
			if s.Selected {
				selected++
			}
		}
		if selected != 1 || !got.Slot(slot.ID).Selected {
			t.Fatalf("expected exactly the chosen slot selected")
		}
	})

	t.Run("second selection conflicts", func(t *testing.T) {
		err := repo.SelectSlot(ctx, iv.ID, iv.TimeSlots[0].ID, iv.TimeSlots[0].StartTime)
		if !errors.Is(err, utils.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		got, _ := repo.Get(ctx, iv.ID)
		if got.Slot(iv.TimeSlots[0].ID).Selected {
			t.Fatalf("second slot must stay unselected")
		}
	})
}

func TestCreateFeedbackOnce(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := postgres.NewInterviewRepo(db)
	ctx := context.Background()

	app := seedApplication(t, fx)
	iv := fx.Interview(app.ID, models.InterviewCompleted)
	rows := func() []models.InterviewFeedback {
		return []models.InterviewFeedback{{
			ID: uuid.NewString(), InterviewID: iv.ID, RecipientID: app.UserID, RecipientRole: models.RoleStudent,
			ClarityScore: 7, PacingScore: 6, EngagementScore: 8,
		}}
	}

	if err := repo.CreateFeedback(ctx, iv.ID, rows()); err != nil {
		t.Fatalf("CreateFeedback: %v", err)
	}
	if err := repo.CreateFeedback(ctx, iv.ID, rows()); !errors.Is(err, utils.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	has, err := repo.HasFeedback(ctx, iv.ID)
	if err != nil || !has {
		t.Fatalf("HasFeedback = %v, %v", has, err)
	}
}
