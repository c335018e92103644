// Package testutil holds fixtures shared by repository, service and handler tests.
package testutil

import (
	"testing"
	"time"

	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens an isolated in-memory sqlite database with the full schema.
// It allows a single connection, so code inside a transaction must only
// use the transaction handle.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := postgres.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type Fixture struct {
	t  *testing.T
	db *gorm.DB
}

func NewFixture(t *testing.T, db *gorm.DB) *Fixture {
	return &Fixture{t: t, db: db}
}

func (f *Fixture) create(v any) {
	f.t.Helper()
	if err := f.db.Create(v).Error; err != nil {
		f.t.Fatalf("seed %T: %v", v, err)
	}
}

func (f *Fixture) Company(name string) *models.Company {
	c := &models.Company{ID: uuid.NewString(), Name: name}
	f.create(c)
	return c
}

func (f *Fixture) Student(name string) *models.User {
	u := &models.User{ID: uuid.NewString(), Email: name + "@school.edu", Name: name, Role: models.RoleStudent}
	f.create(u)
	return u
}

func (f *Fixture) Admin(name string) *models.User {
	u := &models.User{ID: uuid.NewString(), Email: name + "@career.edu", Name: name, Role: models.RoleAdmin}
	f.create(u)
	return u
}

// Employer creates an employer; companyID may be empty for an unlinked one.
func (f *Fixture) Employer(name, companyID string) *models.User {
	u := &models.User{ID: uuid.NewString(), Email: name + "@corp.com", Name: name, Role: models.RoleEmployer}
	if companyID != "" {
		u.CompanyID = &companyID
	}
	f.create(u)
	return u
}

func (f *Fixture) Job(companyID, title string, typ models.JobType) *models.Job {
	j := &models.Job{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		Title:       title,
		Description: title + " role",
		Location:    "Remote",
		Type:        typ,
		IsActive:    true,
	}
	f.create(j)
	return j
}

func (f *Fixture) Application(jobID, userID string) *models.Application {
	a := &models.Application{ID: uuid.NewString(), JobID: jobID, UserID: userID, Status: models.ApplicationPending}
	f.create(a)
	return a
}

// Interview creates an interview in status with two proposed slots one day apart.
func (f *Fixture) Interview(applicationID string, status models.InterviewStatus) *models.Interview {
	id := uuid.NewString()
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Minute)
	iv := &models.Interview{
		ID:            id,
		ApplicationID: applicationID,
		Duration:      models.DefaultInterviewDuration,
		Status:        status,
		TimeSlots: []models.InterviewTimeSlot{
			{ID: uuid.NewString(), InterviewID: id, StartTime: start},
			{ID: uuid.NewString(), InterviewID: id, StartTime: start.Add(24 * time.Hour)},
		},
	}
	f.create(iv)
	return iv
}

func (f *Fixture) Review(app *models.Application, companyID string, rating int, ghosted bool) *models.Review {
	rv := &models.Review{
		ID:                  uuid.NewString(),
		ApplicationID:       app.ID,
		ReviewerID:          app.UserID,
		CompanyID:           companyID,
		Responsiveness:      rating,
		Transparency:        rating,
		Professionalism:     rating,
		InterviewExperience: rating,
		Overall:             rating,
		WasGhosted:          ghosted,
	}
	f.create(rv)
	return rv
}
