package persistence_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/campus-market-backend/internal/domain/entity"
	"github.com/ignatzorin/campus-market-backend/internal/domain/valueobject"
	"github.com/ignatzorin/campus-market-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/campus-market-backend/internal/pkg/apperror"
)

func newReservation(t *testing.T, buyer, seller string) *entity.Reservation {
	t.Helper()
	r, err := entity.NewReservation(entity.NewReservationParams{
		ListingID:   "L1",
		BuyerID:     buyer,
		SellerID:    seller,
		Amount:      4500,
		MeetupTime:  "Today 2:00 PM",
		MeetupPlace: "Library Entrance",
	})
	require.NoError(t, err)
	return r
}

func TestReservationStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewReservationStore()
	r := newReservation(t, "B1", "S1")

	require.NoError(t, store.Create(ctx, r))
	assert.Equal(t, 1, store.Count(ctx))

	got, ok := store.FindByID(ctx, r.ID)
	require.True(t, ok)
	assert.Equal(t, r, got)

	got.Status = valueobject.ReservationStatusReleased
	again, _ := store.FindByID(ctx, r.ID)
	assert.Equal(t, valueobject.ReservationStatusPending, again.Status)

	r.MeetupPlace = "elsewhere"
	again, _ = store.FindByID(ctx, r.ID)
	assert.Equal(t, "Library Entrance", again.MeetupPlace)
}

func TestReservationStore_FindUnknown(t *testing.T) {
	store := persistence.NewReservationStore()
	got, ok := store.FindByID(context.Background(), uuid.New())
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestReservationStore_CreateRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewReservationStore()
	r := newReservation(t, "B1", "S1")

	require.NoError(t, store.Create(ctx, r))
	err := store.Create(ctx, r)
	assert.Equal(t, apperror.ErrCodeConflict, apperror.CodeOf(err))
	assert.Error(t, store.Create(ctx, nil))
	assert.Error(t, store.Create(ctx, &entity.Reservation{}))
}

func TestReservationStore_UpdateAppliesMutation(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewReservationStore()
	r := newReservation(t, "B1", "S1")
	require.NoError(t, store.Create(ctx, r))

	updated, err := store.Update(ctx, r.ID, func(res *entity.Reservation) error {
		return res.StartHandoff()
	})
	require.NoError(t, err)
	assert.Equal(t, valueobject.ReservationStatusHandoff, updated.Status)
	assert.Equal(t, updated.Amount+updated.PlatformFee, updated.Total)

	stored, _ := store.FindByID(ctx, r.ID)
	assert.Equal(t, valueobject.ReservationStatusHandoff, stored.Status)
}

func TestReservationStore_UpdateFailureLeavesRecord(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewReservationStore()
	r := newReservation(t, "B1", "S1")
	require.NoError(t, store.Create(ctx, r))

	_, err := store.Update(ctx, r.ID, func(res *entity.Reservation) error {
		res.MeetupPlace = "changed"
		return res.Release()
	})
	assert.True(t, apperror.IsInvalidTransition(err))

	stored, _ := store.FindByID(ctx, r.ID)
	assert.Equal(t, r, stored)
}

func TestReservationStore_UpdateGuardsMoneyFields(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewReservationStore()
	r := newReservation(t, "B1", "S1")
	require.NoError(t, store.Create(ctx, r))

	_, err := store.Update(ctx, r.ID, func(res *entity.Reservation) error {
		res.Amount = 1
		return nil
	})
	assert.Equal(t, apperror.ErrCodeConflict, apperror.CodeOf(err))

	stored, _ := store.FindByID(ctx, r.ID)
	assert.Equal(t, valueobject.Cents(4500), stored.Amount)
}

func TestReservationStore_UpdateGuardsDealFields(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewReservationStore()
	r := newReservation(t, "B1", "S1")
	require.NoError(t, store.Create(ctx, r))

	mutations := map[string]func(res *entity.Reservation){
		"listing":      func(res *entity.Reservation) { res.ListingID = "L2" },
		"buyer":        func(res *entity.Reservation) { res.BuyerID = "B2" },
		"seller":       func(res *entity.Reservation) { res.SellerID = "S2" },
		"meetup time":  func(res *entity.Reservation) { res.MeetupTime = "Tomorrow" },
		"meetup place": func(res *entity.Reservation) { res.MeetupPlace = "Gym" },
		"notes":        func(res *entity.Reservation) { res.Notes = "changed" },
	}

	for name, change := range mutations {
		t.Run(name, func(t *testing.T) {
			_, err := store.Update(ctx, r.ID, func(res *entity.Reservation) error {
				change(res)
				return res.StartHandoff()
			})
			assert.Equal(t, apperror.ErrCodeConflict, apperror.CodeOf(err))

			stored, _ := store.FindByID(ctx, r.ID)
			assert.Equal(t, r, stored)
		})
	}
}

func TestReservationStore_UpdateUnknown(t *testing.T) {
	store := persistence.NewReservationStore()
	_, err := store.Update(context.Background(), uuid.New(), func(*entity.Reservation) error { return nil })
	assert.True(t, apperror.IsNotFound(err))
}

func TestReservationStore_ConcurrentHandoffHasSingleWinner(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewReservationStore()
	r := newReservation(t, "B1", "S1")
	require.NoError(t, store.Create(ctx, r))

	var wins, conflicts int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, r.ID, func(res *entity.Reservation) error {
				return res.StartHandoff()
			})
			if err == nil {
				atomic.AddInt32(&wins, 1)
			} else if apperror.IsInvalidTransition(err) {
				atomic.AddInt32(&conflicts, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
	assert.Equal(t, int32(63), conflicts)
}

func TestReservationStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewReservationStore()

	batch := make([]*entity.Reservation, 50)
	for i := range batch {
		batch[i] = newReservation(t, fmt.Sprintf("B%d", i), "S1")
	}

	var wg sync.WaitGroup
	for _, r := range batch {
		wg.Add(1)
		go func(r *entity.Reservation) {
			defer wg.Done()
			assert.NoError(t, store.Create(ctx, r))
		}(r)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Count(ctx))
	sellerList, err := store.ListByParticipant(ctx, "S1")
	require.NoError(t, err)
	assert.Len(t, sellerList, 50)
}

func TestReservationStore_ListByParticipant(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewReservationStore()
	first := newReservation(t, "B1", "S1")
	second := newReservation(t, "B2", "B1")
	other := newReservation(t, "B3", "S3")
	for _, r := range []*entity.Reservation{first, second, other} {
		require.NoError(t, store.Create(ctx, r))
	}

	list, err := store.ListByParticipant(ctx, "B1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	empty, err := store.ListByParticipant(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReservationStore_CommitHooks(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewReservationStore()
	r := newReservation(t, "B1", "S1")

	var seen []valueobject.ReservationStatus
	record := func(res *entity.Reservation) { seen = append(seen, res.Status) }

	require.NoError(t, store.Create(ctx, r, record))

	_, err := store.Update(ctx, r.ID, func(res *entity.Reservation) error { return res.Release() }, record)
	require.Error(t, err)

	_, err = store.Update(ctx, r.ID, func(res *entity.Reservation) error { return res.StartHandoff() }, record)
	require.NoError(t, err)

	assert.Equal(t, []valueobject.ReservationStatus{
		valueobject.ReservationStatusPending,
		valueobject.ReservationStatusHandoff,
	}, seen)
}

func TestReservationStore_CommitHookHoldsRecord(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewReservationStore()
	r := newReservation(t, "B1", "S1")
	require.NoError(t, store.Create(ctx, r))

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = store.Update(ctx, r.ID, func(res *entity.Reservation) error { return res.StartHandoff() },
			func(*entity.Reservation) {
				close(entered)
				<-release
			})
	}()

	<-entered
	secondDone := make(chan error, 1)
	go func() {
		_, err := store.Update(ctx, r.ID, func(res *entity.Reservation) error { return res.Release() })
		secondDone <- err
	}()

	select {
	case <-secondDone:
		t.Fatal("second update finished while the first commit hook was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-done
	assert.NoError(t, <-secondDone)
}
