package resumeinfra

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Abraxas-365/seeker/recruitment/resume"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only against a real server: SEEKER_TEST_REDIS_ADDR=localhost:6379
func newTestQueue(t *testing.T) *RedisQueue {
	t.Helper()
	addr := os.Getenv("SEEKER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SEEKER_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	q := NewRedisQueue(client, "test:resume:"+uuid.NewString())
	t.Cleanup(func() { _ = q.Clear(context.Background()) })
	return q
}

func TestRedisQueue_EnqueueDequeue(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t)

	job := resume.ExtractionJob{ID: "j-1", CandidateID: "c-1"}
	require.NoError(t, q.Enqueue(ctx, job.ID, job))

	size, err := q.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, size)

	data, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"candidate_id":"c-1"`)

	data, err = q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Nil(t, data, "timeout is not an error")
}

func TestRedisQueue_Delayed(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t)

	require.NoError(t, q.EnqueueDelayed(ctx, "j-due", resume.ExtractionJob{ID: "j-due"}, -time.Second))
	require.NoError(t, q.EnqueueDelayed(ctx, "j-later", resume.ExtractionJob{ID: "j-later"}, time.Hour))

	moved, err := q.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	ready, err := q.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, ready)
	delayed, err := q.GetDelayedQueueSize(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, delayed)
}
