package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

// DeadLetter wraps an exhausted job with the reason it was parked.
type DeadLetter struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	FailedAt time.Time       `json:"failed_at"`
}

// SendToDLQ parks a job that exhausted its retries for operator inspection.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue, jobType string, payload json.RawMessage, reason string) {
	dl := DeadLetter{
		Queue:    queue,
		Type:     jobType,
		Payload:  payload,
		Reason:   reason,
		FailedAt: time.Now().UTC(),
	}
	encoded, err := json.Marshal(dl)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal dead letter")
		return
	}
	if err := rdb.LPush(ctx, dlqPrefix+queue, encoded).Err(); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to push to DLQ")
		return
	}
	log.Warn().Str("queue", queue).Str("type", jobType).Str("reason", reason).Msg("job sent to DLQ")
}

// DLQLength reports the number of parked jobs for a queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, dlqPrefix+queue).Result()
}
