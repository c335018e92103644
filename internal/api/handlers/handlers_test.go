package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ethansurfas/launchpad/internal/api/middleware"
	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/services"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/gin-gonic/gin"
)

func withUser(userID string, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.CtxUserID, userID)
			c.Set(middleware.CtxRole, role)
		}
		c.Next()
	}
}

func newRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(withUser(userID, models.RoleStudent))
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var body APIError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody APIError
	}{
		{"app error", utils.E(utils.CodeNotFound, "op", "Job not found", nil), http.StatusNotFound, APIError{utils.CodeNotFound, "Job not found"}},
		{"upstream", utils.Upstream("op", "Failed to create video room", errors.New("quota")), http.StatusBadGateway, APIError{utils.CodeUnavailable, "Failed to create video room: quota"}},
		{"internal hides message", utils.E(utils.CodeInternal, "op", "failed to list jobs", errors.New("pq: boom")), http.StatusInternalServerError, APIError{utils.CodeInternal, "Internal Server Error"}},
		{"repository sentinel", utils.ErrNotFound, http.StatusNotFound, APIError{utils.CodeNotFound, "Not Found"}},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, APIError{utils.CodeInternal, "Internal Server Error"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter("")
			r.GET("/", func(c *gin.Context) { writeError(c, tc.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			if w.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, w.Code)
			}
			if got := decodeError(t, w); got != tc.wantBody {
				t.Fatalf("expected %+v, got %+v", tc.wantBody, got)
			}
		})
	}
}

func TestRequireUserID(t *testing.T) {
	r := newRouter("")
	h := NewReviewHandler(nil)
	r.GET("/reviews", h.ListMine)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reviews", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Message != "Unauthorized" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

type fakeUploads struct {
	got  services.UploadInput
	data []byte
	err  error
}

func (f *fakeUploads) Upload(_ context.Context, in services.UploadInput) (string, error) {
	f.got = in
	f.data, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return "", f.err
	}
	return "https://files.test/" + in.UserID + "/" + in.Type, nil
}

func multipartBody(t *testing.T, typ string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if typ != "" {
		if err := mw.WriteField("type", typ); err != nil {
			t.Fatalf("field: %v", err)
		}
	}
	if file != nil {
		fw, err := mw.CreateFormFile("file", "resume.pdf")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		if _, err := fw.Write(file); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadHandler(t *testing.T) {
	fake := &fakeUploads{}
	r := newRouter("user-1")
	r.POST("/upload", NewUploadHandler(fake).Upload)

	body, ct := multipartBody(t, "resume", []byte("%PDF-1.4 test"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.URL != "https://files.test/user-1/resume" {
		t.Fatalf("unexpected url %q", out.URL)
	}
	if fake.got.Filename != "resume.pdf" || fake.got.Size != int64(len("%PDF-1.4 test")) {
		t.Fatalf("unexpected input %+v", fake.got)
	}
	if string(fake.data) != "%PDF-1.4 test" {
		t.Fatalf("unexpected body %q", fake.data)
	}
}

func TestUploadHandlerRejects(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		r := newRouter("user-1")
		r.POST("/upload", NewUploadHandler(&fakeUploads{}).Upload)

		body, ct := multipartBody(t, "resume", nil)
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest || decodeError(t, w).Message != "No file provided" {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("service error", func(t *testing.T) {
		fake := &fakeUploads{err: utils.E(utils.CodeInvalidArgument, "op", "Invalid upload type", nil)}
		r := newRouter("user-1")
		r.POST("/upload", NewUploadHandler(fake).Upload)

		body, ct := multipartBody(t, "selfie", []byte("%PDF-1.4"))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest || decodeError(t, w).Message != "Invalid upload type" {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})
}

type fakeAdmin struct {
	services.AdminService
	calls []string
}

func (f *fakeAdmin) CompanyReviews(_ context.Context, _, companyID string) (*services.CompanyReviews, error) {
	f.calls = append(f.calls, "company:"+companyID)
	return &services.CompanyReviews{}, nil
}

func (f *fakeAdmin) MyReviews(context.Context, string) ([]models.CareerCenterReview, error) {
	f.calls = append(f.calls, "mine")
	return nil, nil
}

func TestAdminReviewsDispatch(t *testing.T) {
	fake := &fakeAdmin{}
	r := newRouter("admin-1")
	r.GET("/admin/reviews", NewAdminHandler(fake).Reviews)

	for _, path := range []string{"/admin/reviews", "/admin/reviews?company_id=c-1"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
	}
	if len(fake.calls) != 2 || fake.calls[0] != "mine" || fake.calls[1] != "company:c-1" {
		t.Fatalf("unexpected calls %v", fake.calls)
	}
}

type fakeCompanies struct {
	services.CompanyService
	authenticated []bool
}

func (f *fakeCompanies) Public(_ context.Context, id string, authenticated bool) (*services.PublicCompany, error) {
	f.authenticated = append(f.authenticated, authenticated)
	return &services.PublicCompany{ID: id}, nil
}

func TestCompanyPublicAuthentication(t *testing.T) {
	fake := &fakeCompanies{}
	h := NewCompanyHandler(fake)

	for _, userID := range []string{"", "user-1"} {
		r := newRouter(userID)
		r.GET("/companies/:id", h.Public)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/c-1", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	}
	if len(fake.authenticated) != 2 || fake.authenticated[0] || !fake.authenticated[1] {
		t.Fatalf("unexpected authenticated flags %v", fake.authenticated)
	}
}

func TestBindJSONRejectsMalformedBody(t *testing.T) {
	r := newRouter("user-1")
	r.PUT("/interviews/:id/select-slot", NewInterviewHandler(nil, nil, nil).SelectSlot)

	req := httptest.NewRequest(http.MethodPut, "/interviews/iv-1/select-slot", bytes.NewBufferString(`{"time_slot_id":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest || decodeError(t, w).Code != utils.CodeInvalidArgument {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
}
