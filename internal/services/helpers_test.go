package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/providers/llm"
	"github.com/Ethansurfas/launchpad/internal/providers/video"
	pgrepo "github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/Ethansurfas/launchpad/internal/testutil"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"gorm.io/gorm"
)

type testEnv struct {
	db *gorm.DB
	fx *testutil.Fixture

	users      pgrepo.UserRepository
	companies  pgrepo.CompanyRepository
	profiles   pgrepo.ProfileRepository
	jobs       pgrepo.JobRepository
	apps       pgrepo.ApplicationRepository
	interviews pgrepo.InterviewRepository
	reviews    pgrepo.ReviewRepository
	career     pgrepo.CareerReviewRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	return &testEnv{
		db:         db,
		fx:         testutil.NewFixture(t, db),
		users:      pgrepo.NewUserRepo(db),
		companies:  pgrepo.NewCompanyRepo(db),
		profiles:   pgrepo.NewProfileRepo(db),
		jobs:       pgrepo.NewJobRepo(db),
		apps:       pgrepo.NewApplicationRepo(db),
		interviews: pgrepo.NewInterviewRepo(db),
		reviews:    pgrepo.NewReviewRepo(db),
		career:     pgrepo.NewCareerReviewRepo(db),
	}
}

// hiring seeds a company with one employer, one job and one student applicant.
type hiring struct {
	company  *models.Company
	employer *models.User
	student  *models.User
	job      *models.Job
	app      *models.Application
}

func (e *testEnv) hiring(name string) hiring {
	c := e.fx.Company(name)
	h := hiring{
		company:  c,
		employer: e.fx.Employer(name+"-recruiter", c.ID),
		student:  e.fx.Student(name + "-student"),
		job:      e.fx.Job(c.ID, "Backend Intern", models.JobInternship),
	}
	h.app = e.fx.Application(h.job.ID, h.student.ID)
	return h
}

func (e *testEnv) setRoom(t *testing.T, interviewID, name string) {
	t.Helper()
	url := "https://launchpad.daily.co/" + name
	err := e.db.Model(&models.Interview{}).Where("id = ?", interviewID).
		Updates(map[string]any{"room_name": name, "room_url": url}).Error
	if err != nil {
		t.Fatalf("set room: %v", err)
	}
}

func (e *testEnv) interview(t *testing.T, id string) *models.Interview {
	t.Helper()
	iv, err := e.interviews.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get interview: %v", err)
	}
	return iv
}

func wantCode(t *testing.T, err error, code utils.Code, msg string) {
	t.Helper()
	var ae *utils.AppError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AppError %s, got %v", code, err)
	}
	if ae.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, ae.Code, err)
	}
	if msg != "" && ae.Message != msg {
		t.Fatalf("expected message %q, got %q", msg, ae.Message)
	}
}

func strPtr(s string) *string { return &s }

type fakeVideo struct {
	mu         sync.Mutex
	rooms      map[string]*video.Room
	created    int
	createErr  error
	recordings []video.Recording
	link       string
}

func newFakeVideo() *fakeVideo {
	return &fakeVideo{rooms: map[string]*video.Room{}, link: "https://recordings.example/rec-1.webm"}
}

func (f *fakeVideo) CreateRoom(_ context.Context, name string) (*video.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created++
	r := &video.Room{ID: "room-" + name, Name: name, URL: "https://launchpad.daily.co/" + name}
	f.rooms[name] = r
	return r, nil
}

func (f *fakeVideo) GetRoom(_ context.Context, name string) (*video.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rooms[name], nil
}

func (f *fakeVideo) ListRecordings(context.Context, string) ([]video.Recording, error) {
	return f.recordings, nil
}

func (f *fakeVideo) RecordingAccessLink(context.Context, string) (string, error) {
	return f.link, nil
}

type fakeSTT struct {
	text  string
	err   error
	calls int
}

func (f *fakeSTT) TranscribeURL(context.Context, string) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeSTT) Close() error { return nil }

type fakeAnalyzer struct {
	analysis *llm.Analysis
	err      error
	calls    int
	names    [2]string
}

func (f *fakeAnalyzer) AnalyzeInterview(_ context.Context, _, interviewer, candidate string) (*llm.Analysis, error) {
	f.calls++
	f.names = [2]string{interviewer, candidate}
	return f.analysis, f.err
}

func (f *fakeAnalyzer) Close() error { return nil }

type memEvents struct {
	mu    sync.Mutex
	items []models.InterviewTransition
	err   error
}

func (m *memEvents) Append(_ context.Context, e *models.InterviewTransition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items = append(m.items, *e)
	return nil
}

func (m *memEvents) ListByInterview(_ context.Context, id string) ([]models.InterviewTransition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.InterviewTransition
	for _, e := range m.items {
		if e.InterviewID == id {
			out = append(out, e)
		}
	}
	return out, nil
}
