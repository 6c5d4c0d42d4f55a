package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/campus-market-backend/internal/interface/http/dto"
	"github.com/ignatzorin/campus-market-backend/internal/interface/http/response"
	"github.com/ignatzorin/campus-market-backend/internal/usecase/reservation"
)

type FeeHandler struct {
	quoteUC *reservation.QuoteFeeUseCase
}

func NewFeeHandler(quoteUC *reservation.QuoteFeeUseCase) *FeeHandler {
	return &FeeHandler{quoteUC: quoteUC}
}

// Quote обрабатывает GET /api/fees/quote?amount=4500.
func (h *FeeHandler) Quote(c *gin.Context) {
	amount, ok := parseInt64Query(c, "amount")
	if !ok {
		response.BadRequest(c, "параметр amount должен быть целым числом центов")
		return
	}

	breakdown, err := h.quoteUC.Execute(amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToFeeQuoteResponse(breakdown))
}
