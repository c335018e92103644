package services

import (
	"context"
	"testing"
	"time"

	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/utils"
)

func TestUpdateProfileMerges(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProfileService(env.profiles, env.users)
	ctx := context.Background()
	s := env.fx.Student("alice")

	u, err := svc.Update(ctx, s.ID, models.RoleStudent, ProfileInput{
		Name:   strPtr("Alice Liddell"),
		Major:  strPtr("Computer Science"),
		Skills: []string{"Go", " ", "SQL"},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if u.Name != "Alice Liddell" || u.StudentProfile == nil {
		t.Fatalf("unexpected user %+v", u)
	}
	if got := []string(u.StudentProfile.Skills); len(got) != 2 || got[1] != "SQL" {
		t.Fatalf("unexpected skills %v", got)
	}

	u, err = svc.Update(ctx, s.ID, models.RoleStudent, ProfileInput{Bio: strPtr("Likes rabbits")})
	if err != nil {
		t.Fatalf("second Update: %v", err)
	}
	p := u.StudentProfile
	if p.Major == nil || *p.Major != "Computer Science" || len(p.Skills) != 2 || p.Bio == nil {
		t.Fatalf("partial update dropped fields: %+v", p)
	}

	var n int64
	env.db.Model(&models.StudentProfile{}).Where("user_id = ?", s.ID).Count(&n)
	if n != 1 {
		t.Fatalf("expected one profile row, got %d", n)
	}
}

func TestUpdateProfileEmployer(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProfileService(env.profiles, env.users)
	emp := env.fx.Employer("boss", "")

	u, err := svc.Update(context.Background(), emp.ID, models.RoleEmployer, ProfileInput{
		Name:  strPtr("The Boss"),
		Major: strPtr("ignored"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if u.Name != "The Boss" || u.StudentProfile != nil {
		t.Fatalf("employer should get a name change only: %+v", u)
	}

	_, err = svc.Update(context.Background(), emp.ID, models.RoleEmployer, ProfileInput{Name: strPtr(" ")})
	wantCode(t, err, utils.CodeInvalidArgument, "")
}

func TestExperienceScopedToOwnProfile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProfileService(env.profiles, env.users)
	ctx := context.Background()

	alice := env.fx.Student("alice")
	bob := env.fx.Student("bob")

	in := ExperienceInput{
		Company:   "Initech",
		Title:     "Intern",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := svc.AddExperience(ctx, alice.ID, models.RoleStudent, in)
	wantCode(t, err, utils.CodeNotFound, "Profile not found")

	for _, id := range []string{alice.ID, bob.ID} {
		if _, err := svc.Update(ctx, id, models.RoleStudent, ProfileInput{}); err != nil {
			t.Fatalf("create profile: %v", err)
		}
	}

	_, err = svc.AddExperience(ctx, alice.ID, models.RoleEmployer, in)
	wantCode(t, err, utils.CodeUnauthorized, "Unauthorized")

	end := in.StartDate.Add(-24 * time.Hour)
	bad := in
	bad.EndDate = &end
	_, err = svc.AddExperience(ctx, alice.ID, models.RoleStudent, bad)
	wantCode(t, err, utils.CodeInvalidArgument, "End date must be after start date")

	exp, err := svc.AddExperience(ctx, alice.ID, models.RoleStudent, in)
	if err != nil {
		t.Fatalf("AddExperience: %v", err)
	}

	steal := in
	steal.ID = exp.ID
	steal.Title = "CEO"
	_, err = svc.UpdateExperience(ctx, bob.ID, models.RoleStudent, steal)
	wantCode(t, err, utils.CodeNotFound, "Experience not found")
	wantCode(t, svc.DeleteExperience(ctx, bob.ID, models.RoleStudent, exp.ID), utils.CodeNotFound, "Experience not found")

	steal.Current = true
	updated, err := svc.UpdateExperience(ctx, alice.ID, models.RoleStudent, steal)
	if err != nil {
		t.Fatalf("UpdateExperience: %v", err)
	}
	if updated.Title != "CEO" || !updated.Current {
		t.Fatalf("unexpected experience %+v", updated)
	}

	if err := svc.DeleteExperience(ctx, alice.ID, models.RoleStudent, exp.ID); err != nil {
		t.Fatalf("DeleteExperience: %v", err)
	}
	u, err := svc.Get(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(u.StudentProfile.Experiences) != 0 {
		t.Fatalf("experience not deleted")
	}
}

func TestProjects(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProfileService(env.profiles, env.users)
	ctx := context.Background()
	s := env.fx.Student("alice")
	if _, err := svc.Update(ctx, s.ID, models.RoleStudent, ProfileInput{}); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	_, err := svc.AddProject(ctx, s.ID, models.RoleStudent, ProjectInput{Name: ""})
	wantCode(t, err, utils.CodeInvalidArgument, "Project name is required")

	p, err := svc.AddProject(ctx, s.ID, models.RoleStudent, ProjectInput{
		Name:         "Job board",
		Technologies: []string{"Go", "Postgres"},
	})
	if err != nil {
		t.Fatalf("AddProject: %v", err)
	}

	u, _ := svc.Get(ctx, s.ID)
	if len(u.StudentProfile.Projects) != 1 || len(u.StudentProfile.Projects[0].Technologies) != 2 {
		t.Fatalf("unexpected projects %+v", u.StudentProfile.Projects)
	}

	wantCode(t, svc.DeleteProject(ctx, s.ID, models.RoleStudent, ""), utils.CodeInvalidArgument, "ID required")
	if err := svc.DeleteProject(ctx, s.ID, models.RoleStudent, p.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	wantCode(t, svc.DeleteProject(ctx, s.ID, models.RoleStudent, p.ID), utils.CodeNotFound, "Project not found")
}

func TestUpdateProfileInvalidGPAWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProfileService(env.profiles, env.users)
	s := env.fx.Student("carol")
	gpa := 5.5

	_, err := svc.Update(context.Background(), s.ID, models.RoleStudent, ProfileInput{
		Name: strPtr("Caroline"),
		GPA:  &gpa,
	})
	wantCode(t, err, utils.CodeInvalidArgument, "Invalid GPA")

	var u models.User
	env.db.Take(&u, "id = ?", s.ID)
	if u.Name != "carol" {
		t.Fatalf("name changed despite rejected update: %q", u.Name)
	}
	var n int64
	env.db.Model(&models.StudentProfile{}).Where("user_id = ?", s.ID).Count(&n)
	if n != 0 {
		t.Fatalf("expected no profile row, got %d", n)
	}
}
