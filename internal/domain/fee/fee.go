// Package fee считает комиссию площадки за сделку.
//
// Комиссия = round(amount * 4.9%) + 30 центов, затем ограничивается диапазоном
// [49, 999] центов. Процентная часть округляется half-up в целых числах,
// без плавающей точки.
package fee

import (
	"math"

	"github.com/ignatzorin/campus-market-backend/internal/domain/valueobject"
	"github.com/ignatzorin/campus-market-backend/internal/pkg/apperror"
)

const (
	// RatePerMille — процентная ставка в промилле (4.9%).
	RatePerMille = 49
	// FlatSurcharge — фиксированная надбавка в центах.
	FlatSurcharge valueobject.Cents = 30
	// MinFee и MaxFee — границы комиссии в центах.
	MinFee valueobject.Cents = 49
	MaxFee valueobject.Cents = 999

	// MaxAmount — наибольшая сумма, для которой итог amount+fee помещается в int64.
	MaxAmount valueobject.Cents = math.MaxInt64 - MaxFee
)

// saturationAmount — сумма, начиная с которой комиссия всегда равна MaxFee.
// Выше неё не умножаем, чтобы не переполнить int64.
const saturationAmount = 1 << 32

// Breakdown — разбивка цены для экрана оформления брони.
type Breakdown struct {
	Amount      valueobject.Cents
	PlatformFee valueobject.Cents
	Total       valueobject.Cents
}

// Compute возвращает комиссию площадки для суммы amount.
func Compute(amount valueobject.Cents) (valueobject.Cents, error) {
	if amount < 0 {
		return 0, apperror.ErrNegativeAmount
	}
	if amount > MaxAmount {
		return 0, apperror.ErrAmountTooLarge
	}
	if amount >= saturationAmount {
		return MaxFee, nil
	}

	pct := (amount*RatePerMille + 500) / 1000
	return clamp(pct + FlatSurcharge), nil
}

// Quote считает комиссию и итог к оплате.
func Quote(amount valueobject.Cents) (Breakdown, error) {
	platformFee, err := Compute(amount)
	if err != nil {
		return Breakdown{}, err
	}
	return Breakdown{
		Amount:      amount,
		PlatformFee: platformFee,
		Total:       amount + platformFee,
	}, nil
}

func clamp(v valueobject.Cents) valueobject.Cents {
	if v < MinFee {
		return MinFee
	}
	if v > MaxFee {
		return MaxFee
	}
	return v
}
