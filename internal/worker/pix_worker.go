package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/infra"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/repository"
)

const (
	pixPollMaxAttempts = 30
	pixPollInterval    = 10 * time.Second
)

// PixWorker polls the gateway for pending pix charges. A charge stays in the
// queue until it settles, expires, or the attempt budget runs out (then DLQ).
// Settlement is informational: the sale was already recorded at the till.
type PixWorker struct {
	pix        *infra.PixClient
	breaker    *infra.CircuitBreaker
	orders     repository.OrderRepository
	dispatcher *Dispatcher
	rdb        *redis.Client
}

func NewPixWorker(
	pix *infra.PixClient,
	breaker *infra.CircuitBreaker,
	orders repository.OrderRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
) *PixWorker {
	return &PixWorker{pix: pix, breaker: breaker, orders: orders, dispatcher: dispatcher, rdb: rdb}
}

func (w *PixWorker) Process(ctx context.Context, payload json.RawMessage) {
	var p PixPollJobPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Error().Err(err).Msg("pix worker: bad payload")
		return
	}

	var charge *infra.PixCharge
	err := w.breaker.Execute(func() error {
		var inner error
		charge, inner = w.pix.GetCharge(ctx, p.ChargeID)
		return inner
	})
	if err != nil {
		log.Warn().Str("charge_id", p.ChargeID).Int("attempts", p.Attempts).Err(err).
			Msg("pix worker: poll failed")
		w.retryOrPark(ctx, p, payload, err.Error())
		return
	}

	switch charge.Status {
	case "paid", "expired":
		if err := w.orders.SetPixStatusByCharge(ctx, p.ChargeID, charge.Status); err != nil {
			log.Error().Str("charge_id", p.ChargeID).Err(err).
				Msg("pix worker: failed to persist charge status")
			w.retryOrPark(ctx, p, payload, err.Error())
			return
		}
		log.Info().Str("charge_id", p.ChargeID).Str("order_id", p.OrderID).
			Str("status", charge.Status).Msg("pix charge settled")
	default:
		w.retryOrPark(ctx, p, payload, "charge still pending")
	}
}

// retryOrPark re-enqueues after the poll interval, or parks in the DLQ once
// the attempt budget is exhausted.
func (w *PixWorker) retryOrPark(ctx context.Context, p PixPollJobPayload, raw json.RawMessage, reason string) {
	if p.Attempts+1 >= pixPollMaxAttempts {
		SendToDLQ(ctx, w.rdb, QueuePixPoll, "pix_poll", raw, reason)
		return
	}
	next := p
	next.Attempts++
	// Deferred re-enqueue keeps the worker free instead of sleeping in place.
	time.AfterFunc(pixPollInterval, func() {
		if err := w.dispatcher.EnqueuePixPoll(context.Background(), next); err != nil {
			log.Error().Str("charge_id", next.ChargeID).Err(err).
				Msg("pix worker: failed to re-enqueue poll")
		}
	})
}
