package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/campus-market-backend/internal/domain/entity"
	"github.com/ignatzorin/campus-market-backend/internal/domain/fee"
)

// CreateReservationRequest — тело POST /api/reservations. Поля встречи
// проверяет сущность, чтобы пустые значения давали VALIDATION_ERROR.
type CreateReservationRequest struct {
	ListingID   string `json:"listing_id" binding:"required"`
	SellerID    string `json:"seller_id" binding:"required"`
	Amount      *int64 `json:"amount" binding:"required"`
	MeetupTime  string `json:"meetup_time"`
	MeetupPlace string `json:"meetup_place"`
	Notes       string `json:"notes"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ReleaseReservationRequest struct {
	Code string `json:"code" binding:"required"`
}

type ReservationResponse struct {
	ID                   uuid.UUID `json:"id"`
	ListingID            string    `json:"listing_id"`
	BuyerID              string    `json:"buyer_id"`
	SellerID             string    `json:"seller_id"`
	Status               string    `json:"status"`
	Amount               int64     `json:"amount"`
	PlatformFee          int64     `json:"platform_fee"`
	Total                int64     `json:"total"`
	AmountFormatted      string    `json:"amount_formatted"`
	PlatformFeeFormatted string    `json:"platform_fee_formatted"`
	TotalFormatted       string    `json:"total_formatted"`
	MeetupTime           string    `json:"meetup_time"`
	MeetupPlace          string    `json:"meetup_place"`
	Notes                string    `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type FeeQuoteResponse struct {
	Amount               int64  `json:"amount"`
	PlatformFee          int64  `json:"platform_fee"`
	Total                int64  `json:"total"`
	AmountFormatted      string `json:"amount_formatted"`
	PlatformFeeFormatted string `json:"platform_fee_formatted"`
	TotalFormatted       string `json:"total_formatted"`
}

type HandoffCodeResponse struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Code          string    `json:"code"`
}

func ToReservationResponse(r *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                   r.ID,
		ListingID:            r.ListingID,
		BuyerID:              r.BuyerID,
		SellerID:             r.SellerID,
		Status:               string(r.Status),
		Amount:               r.Amount.Int64(),
		PlatformFee:          r.PlatformFee.Int64(),
		Total:                r.Total.Int64(),
		AmountFormatted:      r.Amount.String(),
		PlatformFeeFormatted: r.PlatformFee.String(),
		TotalFormatted:       r.Total.String(),
		MeetupTime:           r.MeetupTime,
		MeetupPlace:          r.MeetupPlace,
		Notes:                r.Notes,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func ToReservationListResponse(reservations []*entity.Reservation) []ReservationResponse {
	result := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, ToReservationResponse(r))
	}
	return result
}

func ToFeeQuoteResponse(b fee.Breakdown) FeeQuoteResponse {
	return FeeQuoteResponse{
		Amount:               b.Amount.Int64(),
		PlatformFee:          b.PlatformFee.Int64(),
		Total:                b.Total.Int64(),
		AmountFormatted:      b.Amount.String(),
		PlatformFeeFormatted: b.PlatformFee.String(),
		TotalFormatted:       b.Total.String(),
	}
}
