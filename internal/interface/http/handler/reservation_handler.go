package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/ignatzorin/campus-market-backend/internal/domain/entity"
	"github.com/ignatzorin/campus-market-backend/internal/interface/http/dto"
	"github.com/ignatzorin/campus-market-backend/internal/interface/http/response"
	"github.com/ignatzorin/campus-market-backend/internal/pkg/apperror"
	"github.com/ignatzorin/campus-market-backend/internal/usecase/reservation"
)

const handoffQRSize = 256

type ReservationHandler struct {
	createUC   *reservation.CreateReservationUseCase
	getUC      *reservation.GetReservationUseCase
	updateUC   *reservation.UpdateReservationStatusUseCase
	handoffUC  *reservation.ConfirmHandoffUseCase
	releaseUC  *reservation.ConfirmReleaseUseCase
	listMineUC *reservation.ListMyReservationsUseCase
}

func NewReservationHandler(
	createUC *reservation.CreateReservationUseCase,
	getUC *reservation.GetReservationUseCase,
	updateUC *reservation.UpdateReservationStatusUseCase,
	handoffUC *reservation.ConfirmHandoffUseCase,
	releaseUC *reservation.ConfirmReleaseUseCase,
	listMineUC *reservation.ListMyReservationsUseCase,
) *ReservationHandler {
	return &ReservationHandler{
		createUC:   createUC,
		getUC:      getUC,
		updateUC:   updateUC,
		handoffUC:  handoffUC,
		releaseUC:  releaseUC,
		listMineUC: listMineUC,
	}
}

// CreateReservation обрабатывает POST /api/reservations. Покупатель — текущий пользователь.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	buyerID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "не указан пользователь")
		return
	}

	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), reservation.CreateReservationInput{
		ListingID:   req.ListingID,
		BuyerID:     buyerID,
		SellerID:    req.SellerID,
		Amount:      *req.Amount,
		MeetupTime:  req.MeetupTime,
		MeetupPlace: req.MeetupPlace,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToReservationResponse(created))
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID брони")
		return
	}

	r, found := h.getUC.Execute(c.Request.Context(), id)
	if !found {
		response.NotFound(c, apperror.ErrReservationNotFound.Message)
		return
	}

	response.Success(c, dto.ToReservationResponse(r))
}

// UpdateStatus обрабатывает PATCH /api/reservations/:id/status.
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID брони")
		return
	}

	var req dto.UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	updated, err := h.updateUC.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToReservationResponse(updated))
}

// ConfirmHandoff обрабатывает POST /api/reservations/:id/handoff (продавец).
func (h *ReservationHandler) ConfirmHandoff(c *gin.Context) {
	sellerID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "не указан пользователь")
		return
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID брони")
		return
	}

	updated, err := h.handoffUC.Execute(c.Request.Context(), id, sellerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToReservationResponse(updated))
}

// ConfirmRelease обрабатывает POST /api/reservations/release (покупатель сканирует код).
func (h *ReservationHandler) ConfirmRelease(c *gin.Context) {
	buyerID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "не указан пользователь")
		return
	}

	var req dto.ReleaseReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	updated, err := h.releaseUC.Execute(c.Request.Context(), req.Code, buyerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToReservationResponse(updated))
}

// HandoffCode обрабатывает GET /api/reservations/:id/handoff-code.
// Код показывает только продавец.
func (h *ReservationHandler) HandoffCode(c *gin.Context) {
	r, ok := h.sellerReservation(c)
	if !ok {
		return
	}

	response.Success(c, dto.HandoffCodeResponse{ReservationID: r.ID, Code: r.HandoffCode()})
}

// HandoffQRCode обрабатывает GET /api/reservations/:id/handoff-qr и отдаёт код PNG картинкой.
func (h *ReservationHandler) HandoffQRCode(c *gin.Context) {
	r, ok := h.sellerReservation(c)
	if !ok {
		return
	}

	png, err := qrcode.Encode(r.HandoffCode(), qrcode.Medium, handoffQRSize)
	if err != nil {
		response.Error(c, fmt.Errorf("handoff qr: %w", err))
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *ReservationHandler) sellerReservation(c *gin.Context) (*entity.Reservation, bool) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "не указан пользователь")
		return nil, false
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID брони")
		return nil, false
	}

	r, found := h.getUC.Execute(c.Request.Context(), id)
	if !found {
		response.NotFound(c, apperror.ErrReservationNotFound.Message)
		return nil, false
	}
	if !r.IsSeller(userID) {
		response.Forbidden(c, "код передачи доступен только продавцу")
		return nil, false
	}

	return r, true
}

func (h *ReservationHandler) ListMyReservations(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "не указан пользователь")
		return
	}

	list, err := h.listMineUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, dto.ToReservationListResponse(list), len(list))
}
