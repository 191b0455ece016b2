package candidateapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/seeker/pkg/iam/auth"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/Abraxas-365/seeker/recruitment/candidate/candidatesrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu     sync.Mutex
	byUser map[kernel.UserID]candidate.Candidate
}

func (r *memRepo) Create(_ context.Context, c *candidate.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[c.UserID] = *c
	return nil
}

func (r *memRepo) Update(ctx context.Context, c *candidate.Candidate) error {
	return r.Create(ctx, c)
}

func (r *memRepo) GetByUserID(_ context.Context, userID kernel.UserID) (*candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byUser[userID]
	if !ok {
		return nil, candidate.ErrCandidateNotFound()
	}
	return &c, nil
}

func (r *memRepo) UpdateResumeText(context.Context, kernel.CandidateID, string) error { return nil }

func errorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{"error": e.Message, "code": e.Code})
	}
	if e, ok := errx.As(err); ok {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

type testEnv struct {
	app    *fiber.App
	tokens auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := &memRepo{byUser: map[kernel.UserID]candidate.Candidate{}}
	files := fsxlocal.NewLocalFileSystem(t.TempDir(), "http://files.local")
	svc := candidatesrv.NewCandidateService(repo, files, nil)
	tokens := auth.NewJWTService("test-secret", "seeker", time.Hour)

	app := fiber.New(fiber.Config{ErrorHandler: errorHandler, BodyLimit: 12 * 1024 * 1024})
	NewHandlers(svc).RegisterRoutes(app, auth.Middleware(tokens))
	return &testEnv{app: app, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, req *http.Request, identity kernel.Identity) (*http.Response, map[string]any) {
	t.Helper()
	if identity.IsAuthenticated() {
		token, err := e.tokens.GenerateAccessToken(identity)
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp, body
}

func submitRequest(t *testing.T, userID kernel.UserID, candidateID kernel.CandidateID, resume *candidate.Attachment) *http.Request {
	t.Helper()
	rec := candidate.NewFormRecord()
	_ = rec.Set(candidate.FieldFullName, "Asha Rao")
	_ = rec.Set(candidate.FieldEmail, "asha@example.com")
	_ = rec.Set(candidate.FieldPhone, "9876543210")
	_ = rec.Set(candidate.FieldGraduationDegree, "B.Tech")
	_ = rec.Set(candidate.FieldGraduationState, "Karnataka")
	_ = rec.Set(candidate.FieldGraduationCity, "Bengaluru")
	_ = rec.Set(candidate.FieldGraduationYear, "2020")
	rec.Resume = resume

	body, contentType, err := candidate.NewPayload(rec, userID, candidateID).Encode()
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/candidate", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	return req
}

var seeker = kernel.Identity{UserID: "u1", Role: kernel.RoleJobSeeker}

func TestCandidateRoutes_CreateThenUpdate(t *testing.T) {
	env := newTestEnv(t)
	resume := &candidate.Attachment{FileName: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}

	resp, body := env.do(t, submitRequest(t, "u1", "", resume), seeker)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Asha Rao", body["name"])
	assert.Contains(t, body["resume"], "http://files.local/resumes/u1/")
	assert.NotContains(t, body, "resume_path")

	resp, body = env.do(t, submitRequest(t, "u1", kernel.CandidateID(id), nil), seeker)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, id, body["id"])

	resp, body = env.do(t, httptest.NewRequest(http.MethodGet, "/candidate/u1", nil), seeker)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, body["id"])
}

func TestCandidateRoutes_Errors(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/candidate/u1", nil), kernel.Identity{})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, string(auth.CodeMissingToken), body["code"])

	resp, body = env.do(t, httptest.NewRequest(http.MethodGet, "/candidate/u1", nil), seeker)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, string(candidate.CodeCandidateNotFound), body["code"])

	resp, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/candidate/u2", nil), seeker)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	employer := kernel.Identity{UserID: "e1", Role: kernel.RoleEmployer}
	resp, _ = env.do(t, submitRequest(t, "e1", "", nil), employer)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = env.do(t, submitRequest(t, "u1", "", nil), seeker)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, string(candidate.CodeValidationFailed), body["code"])
	details, _ := body["details"].(map[string]any)
	assert.Equal(t, "Resume is required", details["resume"])

	req := httptest.NewRequest(http.MethodPost, "/candidate", nil)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, body = env.do(t, req, seeker)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, string(candidate.CodeInvalidPayload), body["code"])
}
