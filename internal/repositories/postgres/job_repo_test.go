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
)

func TestJobListActiveFilters(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := postgres.NewJobRepo(db)
	ctx := context.Background()

	acme := fx.Company("Acme Robotics")
	globex := fx.Company("Globex")

	rust := fx.Job(globex.ID, "Rust Engineer", models.JobFullTime)
	intern := fx.Job(globex.ID, "Data Intern", models.JobInternship)
	acmeJob := fx.Job(acme.ID, "Welder", models.JobContract)
	closed := fx.Job(globex.ID, "Closed Intern", models.JobInternship)
	db.Model(&models.Job{}).Where("id = ?", closed.ID).Update("is_active", false)

	base := time.Now().UTC()
	db.Model(&models.Job{}).Where("id = ?", rust.ID).Update("created_at", base.Add(-2*time.Hour))
	db.Model(&models.Job{}).Where("id = ?", intern.ID).Update("created_at", base.Add(-1*time.Hour))
	db.Model(&models.Job{}).Where("id = ?", acmeJob.ID).Update("created_at", base)

	cases := []struct {
		name   string
		filter postgres.JobFilter
		want   []string
	}{
		{"all active newest first", postgres.JobFilter{}, []string{acmeJob.ID, intern.ID, rust.ID}},
		{"type exact", postgres.JobFilter{Type: models.JobInternship}, []string{intern.ID}},
		{"title substring any case", postgres.JobFilter{Search: "rUsT"}, []string{rust.ID}},
		{"description substring", postgres.JobFilter{Search: "intern role"}, []string{intern.ID}},
		{"company name", postgres.JobFilter{Search: "acme"}, []string{acmeJob.ID}},
		{"type and search combine", postgres.JobFilter{Type: models.JobFullTime, Search: "intern"}, nil},
		{"wildcards are literal", postgres.JobFilter{Search: "%"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			jobs, err := repo.ListActive(ctx, tc.filter)
			if err != nil {
				t.Fatalf("ListActive: %v", err)
			}
			if len(jobs) != len(tc.want) {
				t.Fatalf("got %d jobs, want %d", len(jobs), len(tc.want))
			}
			for i, j := range jobs {
				if j.ID != tc.want[i] {
					t.Fatalf("position %d: got %s (%s), want %s", i, j.ID, j.Title, tc.want[i])
				}
				if j.Company == nil {
					t.Fatalf("company not preloaded for %s", j.Title)
				}
			}
		})
	}
}

func TestJobApplicationCount(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := postgres.NewJobRepo(db)

	c := fx.Company("Initech")
	j := fx.Job(c.ID, "Analyst", models.JobPartTime)
	fx.Application(j.ID, fx.Student("ana").ID)
	fx.Application(j.ID, fx.Student("bo").ID)

	got, err := repo.Get(context.Background(), j.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ApplicationCount != 2 {
		t.Fatalf("expected 2 applications, got %d", got.ApplicationCount)
	}
}

func TestJobDeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := postgres.NewJobRepo(db)
	ctx := context.Background()

	c := fx.Company("Hooli")
	j := fx.Job(c.ID, "SRE", models.JobFullTime)
	app := fx.Application(j.ID, fx.Student("cy").ID)
	fx.Interview(app.ID, models.InterviewCompleted)
	fx.Review(app, c.ID, 4, false)

	if err := repo.Delete(ctx, j.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	for _, m := range []any{&models.Application{}, &models.Interview{}, &models.InterviewTimeSlot{}, &models.Review{}} {
		var n int64
		db.Model(m).Count(&n)
		if n != 0 {
			t.Fatalf("%T rows left: %d", m, n)
		}
	}
	if err := repo.Delete(ctx, j.ID); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}
