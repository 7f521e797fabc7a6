package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/NicolasGomez268/PuntoTecno/internal/config"
	"github.com/NicolasGomez268/PuntoTecno/internal/infra"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
	"github.com/NicolasGomez268/PuntoTecno/internal/repository"
)

// Pool runs N workers that block on the Redis notification queue and email
// customers when their repair order becomes ready or delivered.
type Pool struct {
	rdb    *redis.Client
	orders repository.OrderRepository
	mailer *infra.Mailer
	cfg    *config.Config
	log    zerolog.Logger
	wg     sync.WaitGroup
}

func NewPool(rdb *redis.Client, orders repository.OrderRepository, mailer *infra.Mailer, cfg *config.Config, log zerolog.Logger) *Pool {
	return &Pool{rdb: rdb, orders: orders, mailer: mailer, cfg: cfg, log: log}
}

// Start launches the workers. They stop when ctx is cancelled; Wait blocks
// until all of them have drained.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.cfg.WorkerPoolSize; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
}

func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	log := p.log.With().Int("worker", id).Logger()
	log.Info().Msg("notification worker started")

	for {
		res, err := p.rdb.BRPop(ctx, 5*time.Second, orderQueueKey).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				log.Info().Msg("notification worker stopped")
				return
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			log.Error().Err(err).Msg("queue read failed")
			time.Sleep(time.Second)
			continue
		}

		// BRPOP returns [key, value]
		if len(res) != 2 {
			continue
		}
		var n OrderNotification
		if err := json.Unmarshal([]byte(res[1]), &n); err != nil {
			log.Error().Err(err).Msg("malformed notification payload")
			continue
		}
		if err := p.process(ctx, n); err != nil {
			log.Error().Err(err).Str("order_id", n.OrderID).Msg("notification failed")
		}
	}
}

func (p *Pool) process(ctx context.Context, n OrderNotification) error {
	orderID, err := uuid.Parse(n.OrderID)
	if err != nil {
		return err
	}
	order, err := p.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Customer == nil || order.Customer.Email == nil || *order.Customer.Email == "" {
		// Nothing to send — customers without email get called by phone.
		return nil
	}

	var subject, body string
	switch n.Status {
	case model.StatusReady:
		subject = fmt.Sprintf("%s - Su equipo esta listo (%s)", p.cfg.BusinessName, order.OrderNumber)
		body = fmt.Sprintf(
			"Hola %s,\n\nSu equipo %s %s ya esta listo para retirar.\nOrden: %s\n\nLo esperamos,\n%s",
			order.Customer.FirstName, order.DeviceBrand, order.DeviceModel, order.OrderNumber, p.cfg.BusinessName,
		)
	case model.StatusDelivered:
		subject = fmt.Sprintf("%s - Equipo entregado (%s)", p.cfg.BusinessName, order.OrderNumber)
		body = fmt.Sprintf(
			"Hola %s,\n\nRegistramos la entrega de su equipo %s %s.\nOrden: %s\n\nGracias por confiar en nosotros,\n%s",
			order.Customer.FirstName, order.DeviceBrand, order.DeviceModel, order.OrderNumber, p.cfg.BusinessName,
		)
	default:
		return nil
	}

	if err := p.mailer.Send(*order.Customer.Email, subject, body, ""); err != nil {
		return err
	}
	p.log.Info().Str("order_number", order.OrderNumber).Str("status", n.Status).Msg("notification sent")
	return nil
}
