package resumeapi

import (
	"context"
	"encoding/json"
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
	"github.com/Abraxas-365/seeker/recruitment/resume"
	"github.com/Abraxas-365/seeker/recruitment/resume/resumesrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingQueue struct {
	mu    sync.Mutex
	ready int64
}

func (q *countingQueue) Enqueue(context.Context, kernel.ResumeJobID, any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ready++
	return nil
}
func (q *countingQueue) Dequeue(context.Context, time.Duration) ([]byte, error) { return nil, nil }
func (q *countingQueue) EnqueueDelayed(context.Context, kernel.ResumeJobID, any, time.Duration) error {
	return nil
}
func (q *countingQueue) MoveDelayedToReady(context.Context) (int, error) { return 0, nil }
func (q *countingQueue) GetQueueSize(context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ready, nil
}
func (q *countingQueue) GetDelayedQueueSize(context.Context) (int64, error) { return 0, nil }
func (q *countingQueue) Clear(context.Context) error                        { return nil }

type noTexts struct{}

func (noTexts) UpdateResumeText(context.Context, kernel.CandidateID, string) error { return nil }

type finder map[kernel.UserID]candidate.Candidate

func (f finder) GetByUserID(_ context.Context, id kernel.UserID) (*candidate.Candidate, error) {
	c, ok := f[id]
	if !ok {
		return nil, candidate.ErrCandidateNotFound()
	}
	return &c, nil
}

func TestResumeRoutes(t *testing.T) {
	tokens := auth.NewJWTService("test-secret", "seeker", time.Hour)
	queue := &countingQueue{}
	svc := resumesrv.NewService(queue, fsxlocal.NewLocalFileSystem(t.TempDir(), ""), noTexts{})
	candidates := finder{
		"u1": {ID: "c1", UserID: "u1", ResumePath: "resumes/u1/cv.pdf", ResumeFileName: "cv.pdf"},
		"u2": {ID: "c2", UserID: "u2"},
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := errx.As(err); ok {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	NewResumeHandlers(svc, candidates).RegisterRoutes(app, auth.Middleware(tokens))

	call := func(method, path string, identity kernel.Identity) (int, map[string]any) {
		token, err := tokens.GenerateAccessToken(identity)
		require.NoError(t, err)
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		body := map[string]any{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return resp.StatusCode, body
	}
	admin := kernel.Identity{UserID: "root", Role: kernel.RoleAdmin}

	status, body := call(http.MethodPost, "/api/resumes/u1/extract", admin)
	require.Equal(t, http.StatusAccepted, status, body)
	assert.Equal(t, "c1", body["candidate_id"])

	status, body = call(http.MethodGet, "/api/resumes/jobs/stats", admin)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["ready_jobs"])
	assert.EqualValues(t, 0, body["delayed_jobs"])

	status, body = call(http.MethodPost, "/api/resumes/u2/extract", admin)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, string(resume.CodeNoResume), body["code"])

	status, _ = call(http.MethodPost, "/api/resumes/u3/extract", admin)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = call(http.MethodGet, "/api/resumes/jobs/stats", kernel.Identity{UserID: "u1", Role: kernel.RoleJobSeeker})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, string(auth.CodeForbiddenRole), body["code"])
}
