package event

import (
	"context"
	"errors"
	"time"

	"github.com/ignatzorin/campus-market-backend/internal/domain/entity"
)

type Type string

const (
	TypeReservationCreated       Type = "reservation.created"
	TypeReservationStatusChanged Type = "reservation.status_changed"
)

type ReservationEvent struct {
	Type        Type
	Reservation entity.Reservation
	OccurredAt  time.Time
}

func NewReservationEvent(t Type, r *entity.Reservation) ReservationEvent {
	return ReservationEvent{
		Type:        t,
		Reservation: *r,
		OccurredAt:  time.Now().UTC(),
	}
}

// Recipients — пользователи, которым интересно событие: покупатель и продавец.
func (e ReservationEvent) Recipients() []string {
	var ids []string
	if e.Reservation.BuyerID != "" {
		ids = append(ids, e.Reservation.BuyerID)
	}
	if e.Reservation.SellerID != "" && e.Reservation.SellerID != e.Reservation.BuyerID {
		ids = append(ids, e.Reservation.SellerID)
	}
	return ids
}

// Publisher доставляет события подписчикам после успешного изменения брони.
type Publisher interface {
	Publish(ctx context.Context, e ReservationEvent) error
}

// MultiPublisher рассылает событие во все издатели и собирает ошибки.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, e ReservationEvent) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NopPublisher ничего не публикует.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ReservationEvent) error { return nil }
