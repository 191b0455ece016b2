package resumesrv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/fsx"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/Abraxas-365/seeker/recruitment/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memQueue struct {
	mu      sync.Mutex
	ready   [][]byte
	delayed map[kernel.ResumeJobID]time.Duration
	fail    error
}

func newMemQueue() *memQueue {
	return &memQueue{delayed: map[kernel.ResumeJobID]time.Duration{}}
}

func (q *memQueue) Enqueue(_ context.Context, _ kernel.ResumeJobID, payload any) error {
	if q.fail != nil {
		return q.fail
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ready = append(q.ready, data)
	return nil
}

func (q *memQueue) Dequeue(context.Context, time.Duration) ([]byte, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ready) == 0 {
		return nil, nil
	}
	data := q.ready[0]
	q.ready = q.ready[1:]
	return data, nil
}

func (q *memQueue) EnqueueDelayed(_ context.Context, id kernel.ResumeJobID, _ any, delay time.Duration) error {
	if q.fail != nil {
		return q.fail
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.delayed[id] = delay
	return nil
}

func (q *memQueue) MoveDelayedToReady(context.Context) (int, error) { return 0, nil }
func (q *memQueue) GetQueueSize(context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.ready)), nil
}
func (q *memQueue) GetDelayedQueueSize(context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.delayed)), nil
}
func (q *memQueue) Clear(context.Context) error { return nil }

type memFiles map[string][]byte

func (m memFiles) ReadFile(_ context.Context, p string) ([]byte, error) {
	data, ok := m[p]
	if !ok {
		return nil, fsx.ErrNotFound(p)
	}
	return data, nil
}

func (m memFiles) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	data, err := m.ReadFile(ctx, p)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type memTexts struct {
	texts map[kernel.CandidateID]string
	fail  error
}

func (m *memTexts) UpdateResumeText(_ context.Context, id kernel.CandidateID, text string) error {
	if m.fail != nil {
		return m.fail
	}
	m.texts[id] = text
	return nil
}

func newService(files memFiles) (*Service, *memQueue, *memTexts) {
	q := newMemQueue()
	texts := &memTexts{texts: map[kernel.CandidateID]string{}}
	svc := NewService(q, files, texts)
	return svc, q, texts
}

func TestScheduleExtraction(t *testing.T) {
	ctx := context.Background()
	svc, q, _ := newService(memFiles{})

	require.NoError(t, svc.ScheduleExtraction(ctx, &candidate.Candidate{ID: "c-1"}), "no resume, nothing to do")
	assert.Empty(t, q.ready)

	c := &candidate.Candidate{ID: "c-1", ResumePath: "resumes/u-1/cv.txt", ResumeFileName: "cv.txt", ResumeContentType: "text/plain"}
	require.NoError(t, svc.ScheduleExtraction(ctx, c))
	require.Len(t, q.ready, 1)

	var job resume.ExtractionJob
	require.NoError(t, json.Unmarshal(q.ready[0], &job))
	assert.Equal(t, kernel.CandidateID("c-1"), job.CandidateID)
	assert.Equal(t, resume.DefaultMaxAttempts, job.MaxAttempts)

	q.fail = errors.New("redis down")
	err := svc.ScheduleExtraction(ctx, c)
	assert.True(t, errx.IsCode(err, resume.CodeQueueEnqueueFailed))
}

func TestProcessJob_Success(t *testing.T) {
	svc, _, texts := newService(memFiles{"r/cv.txt": []byte("  Asha\n\n\n  Go   developer ")})
	job := &resume.ExtractionJob{ID: "j", CandidateID: "c-1", FilePath: "r/cv.txt", FileName: "cv.txt", ContentType: "text/plain", MaxAttempts: 3}

	require.NoError(t, svc.ProcessJob(context.Background(), job))
	assert.Equal(t, "Asha\nGo developer", texts.texts["c-1"])
	assert.Equal(t, resume.JobStatusCompleted, job.Status)
}

func TestProcessJob_RetriesWithBackoff(t *testing.T) {
	svc, q, _ := newService(memFiles{})
	job := &resume.ExtractionJob{ID: "j", CandidateID: "c-1", FilePath: "missing.txt", ContentType: "text/plain", MaxAttempts: 3}

	err := svc.ProcessJob(context.Background(), job)
	assert.True(t, errx.IsCode(err, fsx.CodeNotFound))
	assert.Equal(t, 1, job.AttemptCount)
	assert.Equal(t, 2*time.Minute, q.delayed["j"])
	assert.Equal(t, resume.JobStatusPending, job.Status)

	job.AttemptCount = 2
	err = svc.ProcessJob(context.Background(), job)
	assert.True(t, errx.IsCode(err, resume.CodeJobFailed))
	assert.Equal(t, resume.JobStatusFailed, job.Status)
}

func TestProcessJob_UnparseableIsPermanent(t *testing.T) {
	svc, q, _ := newService(memFiles{"r/cv.pdf": []byte("not a pdf")})
	job := &resume.ExtractionJob{ID: "j", FilePath: "r/cv.pdf", FileName: "cv.pdf", ContentType: "application/pdf", MaxAttempts: 3}

	err := svc.ProcessJob(context.Background(), job)
	assert.True(t, errx.IsCode(err, resume.CodeExtractionFailed))
	assert.Empty(t, q.delayed)
	assert.Equal(t, resume.JobStatusFailed, job.Status)
}

func TestQueueStats(t *testing.T) {
	ctx := context.Background()
	svc, q, _ := newService(memFiles{})
	require.NoError(t, q.Enqueue(ctx, "a", resume.ExtractionJob{ID: "a"}))
	require.NoError(t, q.EnqueueDelayed(ctx, "b", resume.ExtractionJob{ID: "b"}, time.Minute))

	stats, err := svc.QueueStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &resume.QueueStats{Ready: 1, Delayed: 1}, stats)
}
