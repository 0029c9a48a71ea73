package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Jobs that fail processing are parked on a per-queue dead letter list
// ("dlq:" + source queue) instead of being retried blindly; an operator
// inspects and requeues them by hand.
const DLQPrefix = "dlq:"

// DLQEntry carries the failed payload plus enough context to diagnose it.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      time.Time       `json:"failed_at"`
	Attempts      int             `json:"attempts"`
}

// SendToDLQ parks a failed job. Errors here are only logged: losing the
// DLQ write must not take the worker down.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC(),
		Attempts:      attempts,
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq entry not serializable")
		return
	}
	key := DLQPrefix + queue
	if err := rdb.LPush(ctx, key, raw).Err(); err != nil {
		log.Error().Err(err).Str("dlq", key).Msg("dlq write failed")
		return
	}
	log.Warn().Str("dlq", key).Str("reason", reason).Msg("job parked in dlq")
}
