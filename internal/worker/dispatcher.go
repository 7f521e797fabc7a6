package worker

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// orderQueueKey is the Redis list the notification workers consume.
const orderQueueKey = "notifications:orders"

// OrderNotification is the queued payload for a customer notification.
type OrderNotification struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// Dispatcher enqueues notifications into Redis. Enqueue failures are logged
// and swallowed: a dropped email must never fail the status change that
// triggered it.
type Dispatcher struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewDispatcher(rdb *redis.Client, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{rdb: rdb, log: log}
}

func (d *Dispatcher) OrderStatusChanged(ctx context.Context, orderID uuid.UUID, status string) {
	if d.rdb == nil {
		return
	}
	payload, err := json.Marshal(OrderNotification{OrderID: orderID.String(), Status: status})
	if err != nil {
		return
	}
	if err := d.rdb.LPush(ctx, orderQueueKey, payload).Err(); err != nil {
		d.log.Warn().Err(err).Str("order_id", orderID.String()).Msg("notification enqueue failed")
	}
}
