package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/campus-market-backend/internal/domain/entity"
)

// ReservationMutation изменяет копию брони. Ошибка отменяет изменение целиком.
type ReservationMutation func(r *entity.Reservation) error

// ReservationCommitHook получает сохранённую копию брони, пока запись ещё
// заблокирована, поэтому хуки одной брони идут в порядке изменений.
// Хук не должен обращаться к хранилищу.
type ReservationCommitHook func(r *entity.Reservation)

// ReservationRepository — каноническое хранилище броней.
// Все методы отдают копии, изменить бронь можно только через Update.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation, onCommit ...ReservationCommitHook) error
	Update(ctx context.Context, id uuid.UUID, mutate ReservationMutation, onCommit ...ReservationCommitHook) (*entity.Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, bool)
	ListByParticipant(ctx context.Context, userID string) ([]*entity.Reservation, error)
	Count(ctx context.Context) int
}
