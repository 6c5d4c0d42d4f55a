package reservation

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/campus-market-backend/internal/domain/entity"
	"github.com/ignatzorin/campus-market-backend/internal/domain/fee"
	"github.com/ignatzorin/campus-market-backend/internal/domain/repository"
	"github.com/ignatzorin/campus-market-backend/internal/domain/valueobject"
	"github.com/ignatzorin/campus-market-backend/internal/pkg/apperror"
)

type GetReservationUseCase struct {
	reservationRepo repository.ReservationRepository
}

func NewGetReservationUseCase(reservationRepo repository.ReservationRepository) *GetReservationUseCase {
	return &GetReservationUseCase{reservationRepo: reservationRepo}
}

// Execute возвращает бронь и false, если её нет. Отсутствие — не ошибка.
func (uc *GetReservationUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Reservation, bool) {
	return uc.reservationRepo.FindByID(ctx, id)
}

type ListMyReservationsUseCase struct {
	reservationRepo repository.ReservationRepository
}

func NewListMyReservationsUseCase(reservationRepo repository.ReservationRepository) *ListMyReservationsUseCase {
	return &ListMyReservationsUseCase{reservationRepo: reservationRepo}
}

func (uc *ListMyReservationsUseCase) Execute(ctx context.Context, userID string) ([]*entity.Reservation, error) {
	if userID == "" {
		return nil, apperror.ErrUnauthorized
	}
	return uc.reservationRepo.ListByParticipant(ctx, userID)
}

type QuoteFeeUseCase struct{}

func NewQuoteFeeUseCase() *QuoteFeeUseCase {
	return &QuoteFeeUseCase{}
}

func (uc *QuoteFeeUseCase) Execute(amount int64) (fee.Breakdown, error) {
	cents, err := valueobject.NewCents(amount)
	if err != nil {
		return fee.Breakdown{}, err
	}
	return fee.Quote(cents)
}
