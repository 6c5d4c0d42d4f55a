package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/campus-market-backend/internal/domain/fee"
	"github.com/ignatzorin/campus-market-backend/internal/domain/valueobject"
	"github.com/ignatzorin/campus-market-backend/internal/pkg/apperror"
	"github.com/ignatzorin/campus-market-backend/internal/validation"
)

// Reservation — сделка между покупателем и продавцом по одному объявлению.
// Amount, PlatformFee и Total задаются только в NewReservation.
type Reservation struct {
	ID          uuid.UUID
	ListingID   string
	BuyerID     string
	SellerID    string
	Status      valueobject.ReservationStatus
	Amount      valueobject.Cents
	PlatformFee valueobject.Cents
	Total       valueobject.Cents
	MeetupTime  string
	MeetupPlace string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type NewReservationParams struct {
	ListingID   string
	BuyerID     string
	SellerID    string
	Amount      valueobject.Cents
	MeetupTime  string
	MeetupPlace string
	Notes       string
}

func NewReservation(p NewReservationParams) (*Reservation, error) {
	if p.Amount < 0 {
		return nil, apperror.ErrNegativeAmount
	}
	if err := validation.ValidateMeetupTime(p.MeetupTime); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateMeetupPlace(p.MeetupPlace); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateNotes(p.Notes); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	quote, err := fee.Quote(p.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Reservation{
		ID:          uuid.New(),
		ListingID:   p.ListingID,
		BuyerID:     p.BuyerID,
		SellerID:    p.SellerID,
		Status:      valueobject.ReservationStatusPending,
		Amount:      quote.Amount,
		PlatformFee: quote.PlatformFee,
		Total:       quote.Total,
		MeetupTime:  strings.TrimSpace(p.MeetupTime),
		MeetupPlace: strings.TrimSpace(p.MeetupPlace),
		Notes:       strings.TrimSpace(p.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// TransitionTo переводит бронь в следующий статус.
// При недопустимом переходе бронь не меняется.
func (r *Reservation) TransitionTo(status valueobject.ReservationStatus) error {
	if !status.IsValid() {
		return apperror.New(apperror.ErrCodeValidation, "некорректный статус брони")
	}
	if !r.Status.CanTransitionTo(status) {
		return apperror.Wrap(
			&valueobject.TransitionError{From: r.Status, To: status},
			apperror.ErrCodeInvalidTransition,
			"невозможно изменить статус брони",
		)
	}
	r.Status = status
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// StartHandoff — продавец подтверждает начало встречи.
func (r *Reservation) StartHandoff() error {
	return r.TransitionTo(valueobject.ReservationStatusHandoff)
}

// Release — покупатель подтверждает получение товара.
func (r *Reservation) Release() error {
	return r.TransitionTo(valueobject.ReservationStatusReleased)
}

func (r *Reservation) IsBuyer(userID string) bool {
	return userID != "" && r.BuyerID == userID
}

func (r *Reservation) IsSeller(userID string) bool {
	return userID != "" && r.SellerID == userID
}

func (r *Reservation) IsParticipant(userID string) bool {
	return r.IsBuyer(userID) || r.IsSeller(userID)
}

// HandoffCode — полезная нагрузка кода, который продавец показывает покупателю.
func (r *Reservation) HandoffCode() string {
	return r.ID.String()
}

// Clone возвращает независимую копию брони.
func (r *Reservation) Clone() *Reservation {
	c := *r
	return &c
}
