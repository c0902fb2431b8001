package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueDayReport = "jobs:day_report"
	QueuePixPoll   = "jobs:pix_poll"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// DayReportJobPayload triggers generation and mailing of the day-close report.
type DayReportJobPayload struct {
	BusinessDayID string `json:"business_day_id"`
}

// PixPollJobPayload checks a pix charge status and re-enqueues while pending.
type PixPollJobPayload struct {
	OrderID  string `json:"order_id"`
	ChargeID string `json:"charge_id"`
	Attempts int    `json:"attempts"`
}

// EnqueueDayReport pushes a day-close report job to Redis.
func (d *Dispatcher) EnqueueDayReport(ctx context.Context, payload DayReportJobPayload) error {
	return d.enqueue(ctx, QueueDayReport, "day_report", payload)
}

// EnqueuePixPoll pushes a pix status poll job to Redis.
func (d *Dispatcher) EnqueuePixPoll(ctx context.Context, payload PixPollJobPayload) error {
	return d.enqueue(ctx, QueuePixPoll, "pix_poll", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// WorkerHandlers wires the concrete processors consumed by the pool.
type WorkerHandlers struct {
	Report *ReportWorker
	Pix    *PixWorker
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	queues := []string{QueueDayReport, QueuePixPoll}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	switch job.Type {
	case "day_report":
		handlers.Report.Process(ctx, job.Payload)
	case "pix_poll":
		handlers.Pix.Process(ctx, job.Payload)
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
	}
}
