package reservation

import (
	"context"

	"github.com/ignatzorin/campus-market-backend/internal/domain/entity"
	"github.com/ignatzorin/campus-market-backend/internal/domain/event"
	"github.com/ignatzorin/campus-market-backend/internal/domain/repository"
	"github.com/ignatzorin/campus-market-backend/internal/domain/valueobject"
	"github.com/ignatzorin/campus-market-backend/internal/logger"
)

type CreateReservationInput struct {
	ListingID   string
	BuyerID     string
	SellerID    string
	Amount      int64
	MeetupTime  string
	MeetupPlace string
	Notes       string
}

type CreateReservationUseCase struct {
	reservationRepo repository.ReservationRepository
	publisher       event.Publisher
}

func NewCreateReservationUseCase(reservationRepo repository.ReservationRepository, publisher event.Publisher) *CreateReservationUseCase {
	return &CreateReservationUseCase{reservationRepo: reservationRepo, publisher: orNop(publisher)}
}

func (uc *CreateReservationUseCase) Execute(ctx context.Context, input CreateReservationInput) (*entity.Reservation, error) {
	amount, err := valueobject.NewCents(input.Amount)
	if err != nil {
		return nil, err
	}

	reservation, err := entity.NewReservation(entity.NewReservationParams{
		ListingID:   input.ListingID,
		BuyerID:     input.BuyerID,
		SellerID:    input.SellerID,
		Amount:      amount,
		MeetupTime:  input.MeetupTime,
		MeetupPlace: input.MeetupPlace,
		Notes:       input.Notes,
	})
	if err != nil {
		return nil, err
	}

	err = uc.reservationRepo.Create(ctx, reservation, func(r *entity.Reservation) {
		publish(ctx, uc.publisher, event.TypeReservationCreated, r)
	})
	if err != nil {
		return nil, err
	}

	logger.Reservation(reservation.ID.String(), string(reservation.Status)).
		WithField("total", reservation.Total.Int64()).
		Info("бронь создана")

	return reservation, nil
}
