package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ignatzorin/campus-market-backend/internal/domain/event"
	"github.com/ignatzorin/campus-market-backend/internal/goroutine"
	"github.com/ignatzorin/campus-market-backend/internal/logger"
)

// ReservationEventsQueue — durable очередь для внешних потребителей событий брони.
const ReservationEventsQueue = "reservation.events"

const publishTimeout = 5 * time.Second

var _ event.Publisher = (*RabbitMQPublisher)(nil)

// RabbitMQPublisher отправляет события брони в RabbitMQ.
// Отправка идёт в фоне, ошибки брокера только логируются.
type RabbitMQPublisher struct {
	conn *amqp.Connection

	mu sync.Mutex
	ch *amqp.Channel
}

// reservationMessage — тело сообщения в очереди.
type reservationMessage struct {
	Type          string `json:"type"`
	OccurredAt    string `json:"occurred_at"`
	ReservationID string `json:"reservation_id"`
	ListingID     string `json:"listing_id"`
	BuyerID       string `json:"buyer_id"`
	SellerID      string `json:"seller_id"`
	Status        string `json:"status"`
	AmountCents   int64  `json:"amount_cents"`
	FeeCents      int64  `json:"platform_fee_cents"`
	TotalCents    int64  `json:"total_cents"`
}

// NewRabbitMQPublisher подключается к брокеру и объявляет очередь.
func NewRabbitMQPublisher(url string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: не удалось подключиться: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: не удалось открыть канал: %w", err)
	}

	if _, err := ch.QueueDeclare(
		ReservationEventsQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: не удалось объявить очередь: %w", err)
	}

	return &RabbitMQPublisher{conn: conn, ch: ch}, nil
}

// Publish ставит событие в очередь отправки и сразу возвращает управление.
func (p *RabbitMQPublisher) Publish(ctx context.Context, e event.ReservationEvent) error {
	msg, err := newPublishing(e)
	if err != nil {
		return err
	}

	// Контекст запроса завершится раньше, чем брокер подтвердит отправку.
	goroutine.SafeGoWithContext(context.WithoutCancel(ctx), func(ctx context.Context) {
		pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()

		if err := p.send(pubCtx, msg); err != nil {
			logger.Reservation(e.Reservation.ID.String(), string(e.Reservation.Status)).
				WithError(err).
				WithField("event", string(e.Type)).
				Warn("rabbitmq: событие не отправлено")
		}
	})
	return nil
}

func (p *RabbitMQPublisher) send(ctx context.Context, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		ch, err := p.conn.Channel()
		if err != nil {
			return fmt.Errorf("rabbitmq: не удалось открыть канал: %w", err)
		}
		p.ch = ch
	}

	if err := p.ch.PublishWithContext(ctx,
		"",                     // default exchange
		ReservationEventsQueue, // routing key = queue name
		false,                  // mandatory
		false,                  // immediate
		msg,
	); err != nil {
		return fmt.Errorf("rabbitmq: ошибка публикации: %w", err)
	}
	return nil
}

// Close закрывает канал и соединение с брокером.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
	}
	return p.conn.Close()
}

func newPublishing(e event.ReservationEvent) (amqp.Publishing, error) {
	r := e.Reservation
	body, err := json.Marshal(reservationMessage{
		Type:          string(e.Type),
		OccurredAt:    e.OccurredAt.UTC().Format(time.RFC3339Nano),
		ReservationID: r.ID.String(),
		ListingID:     r.ListingID,
		BuyerID:       r.BuyerID,
		SellerID:      r.SellerID,
		Status:        string(r.Status),
		AmountCents:   r.Amount.Int64(),
		FeeCents:      r.PlatformFee.Int64(),
		TotalCents:    r.Total.Int64(),
	})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("rabbitmq: не удалось сериализовать событие: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    r.ID.String() + ":" + string(r.Status),
		Type:         string(e.Type),
		Timestamp:    e.OccurredAt.UTC(),
		Body:         body,
	}, nil
}
