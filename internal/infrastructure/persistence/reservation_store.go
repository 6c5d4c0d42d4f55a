package persistence

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/ignatzorin/campus-market-backend/internal/domain/entity"
	"github.com/ignatzorin/campus-market-backend/internal/domain/repository"
	"github.com/ignatzorin/campus-market-backend/internal/pkg/apperror"
)

var _ repository.ReservationRepository = (*ReservationStore)(nil)

// ReservationStore хранит брони в памяти процесса.
// Карта защищена mu, каждая запись — своим мьютексом, поэтому изменения
// одной брони выполняются строго по очереди, а разные брони не мешают друг другу.
type ReservationStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*reservationRecord
	order   []uuid.UUID
}

type reservationRecord struct {
	mu          sync.Mutex
	reservation *entity.Reservation
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		records: make(map[uuid.UUID]*reservationRecord),
	}
}

// Create сохраняет копию новой брони. onCommit вызывается до того, как
// бронь станет доступна для Update.
func (s *ReservationStore) Create(
	ctx context.Context,
	reservation *entity.Reservation,
	onCommit ...repository.ReservationCommitHook,
) error {
	if reservation == nil {
		return apperror.New(apperror.ErrCodeBadRequest, "пустая бронь")
	}
	if reservation.ID == uuid.Nil {
		return apperror.New(apperror.ErrCodeBadRequest, "у брони нет идентификатора")
	}

	rec := &reservationRecord{reservation: reservation.Clone()}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	s.mu.Lock()
	if _, exists := s.records[reservation.ID]; exists {
		s.mu.Unlock()
		return apperror.Wrap(
			fmt.Errorf("reservation store: duplicate id %s", reservation.ID),
			apperror.ErrCodeConflict,
			"бронь с таким идентификатором уже существует",
		)
	}
	s.records[reservation.ID] = rec
	s.order = append(s.order, reservation.ID)
	s.mu.Unlock()

	for _, hook := range onCommit {
		if hook != nil {
			hook(rec.reservation.Clone())
		}
	}
	return nil
}

// Update применяет mutate к копии брони и сохраняет копию, если mutate
// не вернул ошибку. Проверка, запись и onCommit идут под мьютексом записи.
func (s *ReservationStore) Update(
	ctx context.Context,
	id uuid.UUID,
	mutate repository.ReservationMutation,
	onCommit ...repository.ReservationCommitHook,
) (*entity.Reservation, error) {
	rec, ok := s.record(id)
	if !ok {
		return nil, apperror.ErrReservationNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	next := rec.reservation.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	if next.ID != rec.reservation.ID ||
		next.Amount != rec.reservation.Amount ||
		next.PlatformFee != rec.reservation.PlatformFee ||
		next.Total != rec.reservation.Total ||
		!next.CreatedAt.Equal(rec.reservation.CreatedAt) ||
		next.ListingID != rec.reservation.ListingID ||
		next.BuyerID != rec.reservation.BuyerID ||
		next.SellerID != rec.reservation.SellerID ||
		next.MeetupTime != rec.reservation.MeetupTime ||
		next.MeetupPlace != rec.reservation.MeetupPlace ||
		next.Notes != rec.reservation.Notes {
		return nil, apperror.New(apperror.ErrCodeConflict, "неизменяемые поля брони не могут быть изменены")
	}

	rec.reservation = next
	for _, hook := range onCommit {
		if hook != nil {
			hook(next.Clone())
		}
	}
	return next.Clone(), nil
}

func (s *ReservationStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, bool) {
	rec, ok := s.record(id)
	if !ok {
		return nil, false
	}
	return rec.snapshot(), true
}

// ListByParticipant возвращает брони пользователя в порядке создания.
func (s *ReservationStore) ListByParticipant(ctx context.Context, userID string) ([]*entity.Reservation, error) {
	s.mu.RLock()
	recs := make([]*reservationRecord, 0, len(s.order))
	for _, id := range s.order {
		recs = append(recs, s.records[id])
	}
	s.mu.RUnlock()

	result := make([]*entity.Reservation, 0)
	for _, rec := range recs {
		r := rec.snapshot()
		if r.IsParticipant(userID) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (s *ReservationStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *ReservationStore) record(id uuid.UUID) (*reservationRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

func (r *reservationRecord) snapshot() *entity.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reservation.Clone()
}
