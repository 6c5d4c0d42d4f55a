package reservation

import (
	"context"

	"github.com/ignatzorin/campus-market-backend/internal/domain/entity"
	"github.com/ignatzorin/campus-market-backend/internal/domain/event"
	"github.com/ignatzorin/campus-market-backend/internal/logger"
)

func orNop(p event.Publisher) event.Publisher {
	if p == nil {
		return event.NopPublisher{}
	}
	return p
}

// publish уведомляет подписчиков. Ошибка доставки только логируется:
// изменение брони уже сохранено.
func publish(ctx context.Context, publisher event.Publisher, t event.Type, r *entity.Reservation) {
	if err := publisher.Publish(ctx, event.NewReservationEvent(t, r)); err != nil {
		logger.Reservation(r.ID.String(), string(r.Status)).
			WithError(err).
			WithField("event", string(t)).
			Warn("не удалось опубликовать событие брони")
	}
}
