package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// QueueEmail holds pending email jobs (password recovery, low-stock alerts).
const QueueEmail = "jobs:email"

const brpopTimeout = 5 * time.Second

// Job is the envelope every queued task travels in.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher is the producer side of the queue. Handlers and services hold
// one and push; the pool on the other end pops.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueEmail queues one email for asynchronous delivery.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, p EmailJobPayload) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: "email", Payload: raw})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueEmail, encoded).Err()
}

// WorkerHandlers groups the per-job-type processors, injected at the
// composition root.
type WorkerHandlers struct {
	Email *EmailWorker
}

// StartWorkerPool launches n consumer goroutines. Each blocks on BRPOP, so
// an idle pool costs nothing; cancel the context to drain them.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, n int) {
	for i := 0; i < n; i++ {
		go consumeLoop(ctx, rdb, handlers, i)
	}
	log.Info().Int("workers", n).Msg("worker pool started")
}

func consumeLoop(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	for ctx.Err() == nil {
		// BRPOP returns [queue, value]; a timeout just loops us back to
		// re-check the context.
		res, err := rdb.BRPop(ctx, brpopTimeout, QueueEmail).Result()
		if err != nil || len(res) != 2 {
			continue
		}
		dispatch(ctx, rdb, handlers, res[0], res[1])
	}
	log.Info().Int("worker", id).Msg("worker stopped")
}

func dispatch(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("discarding malformed job")
		return
	}
	switch job.Type {
	case "email":
		if handlers.Email != nil {
			handlers.Email.Process(ctx, rdb, job.Payload)
		}
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("job type has no handler")
	}
}
