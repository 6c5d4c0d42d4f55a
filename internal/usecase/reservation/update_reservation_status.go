package reservation

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/campus-market-backend/internal/domain/entity"
	"github.com/ignatzorin/campus-market-backend/internal/domain/event"
	"github.com/ignatzorin/campus-market-backend/internal/domain/repository"
	"github.com/ignatzorin/campus-market-backend/internal/domain/valueobject"
	"github.com/ignatzorin/campus-market-backend/internal/pkg/apperror"
)

// UpdateReservationStatusUseCase переводит бронь в следующий статус без проверки роли.
type UpdateReservationStatusUseCase struct {
	reservationRepo repository.ReservationRepository
	publisher       event.Publisher
}

func NewUpdateReservationStatusUseCase(reservationRepo repository.ReservationRepository, publisher event.Publisher) *UpdateReservationStatusUseCase {
	return &UpdateReservationStatusUseCase{reservationRepo: reservationRepo, publisher: orNop(publisher)}
}

func (uc *UpdateReservationStatusUseCase) Execute(ctx context.Context, id uuid.UUID, status string) (*entity.Reservation, error) {
	newStatus, err := valueobject.NewReservationStatus(status)
	if err != nil {
		return nil, err
	}

	return transition(ctx, uc.reservationRepo, uc.publisher, id, func(r *entity.Reservation) error {
		return r.TransitionTo(newStatus)
	})
}

// ConfirmHandoffUseCase — продавец начинает встречу: pending -> handoff.
type ConfirmHandoffUseCase struct {
	reservationRepo repository.ReservationRepository
	publisher       event.Publisher
}

func NewConfirmHandoffUseCase(reservationRepo repository.ReservationRepository, publisher event.Publisher) *ConfirmHandoffUseCase {
	return &ConfirmHandoffUseCase{reservationRepo: reservationRepo, publisher: orNop(publisher)}
}

func (uc *ConfirmHandoffUseCase) Execute(ctx context.Context, id uuid.UUID, sellerID string) (*entity.Reservation, error) {
	return transition(ctx, uc.reservationRepo, uc.publisher, id, func(r *entity.Reservation) error {
		if !r.IsSeller(sellerID) {
			return apperror.New(apperror.ErrCodeForbidden, "подтвердить встречу может только продавец")
		}
		return r.StartHandoff()
	})
}

// ConfirmReleaseUseCase — покупатель сканирует код продавца: handoff -> released.
type ConfirmReleaseUseCase struct {
	reservationRepo repository.ReservationRepository
	publisher       event.Publisher
}

func NewConfirmReleaseUseCase(reservationRepo repository.ReservationRepository, publisher event.Publisher) *ConfirmReleaseUseCase {
	return &ConfirmReleaseUseCase{reservationRepo: reservationRepo, publisher: orNop(publisher)}
}

func (uc *ConfirmReleaseUseCase) Execute(ctx context.Context, code string, buyerID string) (*entity.Reservation, error) {
	id, err := uuid.Parse(code)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, "некорректный код передачи")
	}

	return transition(ctx, uc.reservationRepo, uc.publisher, id, func(r *entity.Reservation) error {
		if !r.IsBuyer(buyerID) {
			return apperror.New(apperror.ErrCodeForbidden, "подтвердить получение может только покупатель")
		}
		return r.Release()
	})
}

func transition(
	ctx context.Context,
	repo repository.ReservationRepository,
	publisher event.Publisher,
	id uuid.UUID,
	mutate repository.ReservationMutation,
) (*entity.Reservation, error) {
	// Публикуем под блокировкой записи: подписчики видят смены статуса
	// одной брони в том же порядке, в каком они сохранены.
	return repo.Update(ctx, id, mutate, func(r *entity.Reservation) {
		publish(ctx, publisher, event.TypeReservationStatusChanged, r)
	})
}
