package valueobject

import (
	"fmt"

	"github.com/ignatzorin/campus-market-backend/internal/pkg/apperror"
)

type ReservationStatus string

const (
	ReservationStatusPending  ReservationStatus = "pending"
	ReservationStatusHandoff  ReservationStatus = "handoff"
	ReservationStatusReleased ReservationStatus = "released"
)

func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusHandoff, ReservationStatusReleased:
		return true
	}
	return false
}

// Next возвращает единственный допустимый следующий статус.
// Для released следующего статуса нет.
func (s ReservationStatus) Next() (ReservationStatus, bool) {
	switch s {
	case ReservationStatusPending:
		return ReservationStatusHandoff, true
	case ReservationStatusHandoff:
		return ReservationStatusReleased, true
	case ReservationStatusReleased:
		return "", false
	}
	return "", false
}

func (s ReservationStatus) IsTerminal() bool {
	_, ok := s.Next()
	return s.IsValid() && !ok
}

func (s ReservationStatus) CanTransitionTo(newStatus ReservationStatus) bool {
	next, ok := s.Next()
	return ok && next == newStatus
}

func NewReservationStatus(status string) (ReservationStatus, error) {
	s := ReservationStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус брони")
	}
	return s, nil
}

// TransitionError описывает отклонённый переход между статусами.
type TransitionError struct {
	From ReservationStatus
	To   ReservationStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("переход %s -> %s недопустим", e.From, e.To)
}
