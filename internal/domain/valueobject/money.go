package valueobject

import (
	"fmt"

	"github.com/ignatzorin/campus-market-backend/internal/pkg/apperror"
)

// Cents — сумма в минимальных единицах валюты (центах).
type Cents int64

func NewCents(amount int64) (Cents, error) {
	if amount < 0 {
		return 0, apperror.ErrNegativeAmount
	}
	return Cents(amount), nil
}

func (c Cents) Int64() int64 {
	return int64(c)
}

// String форматирует сумму для отображения: 4500 -> "$45.00".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}
