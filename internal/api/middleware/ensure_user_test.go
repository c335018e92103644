package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ethansurfas/launchpad/internal/models"
	pgrepo "github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/Ethansurfas/launchpad/internal/services"
	"github.com/Ethansurfas/launchpad/internal/testutil"
)

func TestEnsureUserProvisionsRow(t *testing.T) {
	db := testutil.NewDB(t)
	users := pgrepo.NewUserRepo(db)
	r := identityRouter(JWTAuth(testAuth), EnsureUser(services.NewUserService(users)))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", sign(t, testAuth.JWTSecret, validClaims()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, w.Code)
		}
	}

	u, err := users.Get(context.Background(), validClaims()["sub"].(string))
	if err != nil {
		t.Fatalf("user not provisioned: %v", err)
	}
	if u.Role != models.RoleEmployer || u.Name != "Ada Lovelace" || u.Email != "ada@corp.com" {
		t.Fatalf("unexpected user %+v", u)
	}
	var n int64
	db.Model(&models.User{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected one user row, got %d", n)
	}
}
