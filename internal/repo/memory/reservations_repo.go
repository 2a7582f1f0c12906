package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gildedfork/tablebook/internal/domain/reservation"
)

// ReservationsRepo is the in-memory twin of the postgres repo, used by
// tests and local development. Same contract: cancel flips status, nothing
// is deleted, update/cancel are owner-scoped.
type ReservationsRepo struct {
	mu    sync.RWMutex
	items map[string]reservation.Reservation
	seq   map[string]int // insertion order, tie-break for equal dates
	next  int
}

func NewReservationsRepo() *ReservationsRepo {
	return &ReservationsRepo{
		items: make(map[string]reservation.Reservation),
		seq:   make(map[string]int),
	}
}

func (r *ReservationsRepo) Create(_ context.Context, userID string, req reservation.CreateReservationRequest) (reservation.Reservation, error) {
	if !reservation.PartySizeInRange(req.PartySize) {
		return reservation.Reservation{}, reservation.ErrPartySizeRange
	}

	res := reservation.NewFromCreateRequest(userID, req)

	r.mu.Lock()
	r.items[res.ID] = res
	r.seq[res.ID] = r.next
	r.next++
	r.mu.Unlock()

	return res, nil
}

func (r *ReservationsRepo) ListByUser(_ context.Context, userID string) ([]reservation.Reservation, error) {
	r.mu.RLock()
	out := make([]reservation.Reservation, 0)
	for _, res := range r.items {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	r.mu.RUnlock()

	r.sortNewestFirst(out)
	return out, nil
}

func (r *ReservationsRepo) ListAll(_ context.Context) ([]reservation.Reservation, error) {
	r.mu.RLock()
	out := make([]reservation.Reservation, 0, len(r.items))
	for _, res := range r.items {
		out = append(out, res)
	}
	r.mu.RUnlock()

	r.sortNewestFirst(out)
	return out, nil
}

func (r *ReservationsRepo) Update(_ context.Context, id, userID string, req reservation.UpdateReservationRequest) (reservation.Reservation, error) {
	if req.PartySize != nil && !reservation.PartySizeInRange(*req.PartySize) {
		return reservation.Reservation{}, reservation.ErrPartySizeRange
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.items[id]
	if !ok || res.UserID != userID {
		return reservation.Reservation{}, reservation.ErrNotFound
	}

	if req.Date != nil {
		res.Date = *req.Date
	}
	if req.Time != nil {
		res.Time = *req.Time
	}
	if req.PartySize != nil {
		res.PartySize = *req.PartySize
	}
	if req.SpecialRequests != nil {
		res.SpecialRequests = *req.SpecialRequests
	}
	if req.Status != nil {
		res.Status = *req.Status
	}
	res.UpdatedAt = time.Now().UTC()

	r.items[id] = res
	return res, nil
}

func (r *ReservationsRepo) Cancel(_ context.Context, id, userID string) (reservation.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.items[id]
	if !ok || res.UserID != userID {
		return reservation.Reservation{}, reservation.ErrNotFound
	}

	res.Status = reservation.StatusCancelled
	res.UpdatedAt = time.Now().UTC()
	r.items[id] = res
	return res, nil
}

// date DESC, then insertion order ASC
func (r *ReservationsRepo) sortNewestFirst(out []reservation.Reservation) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return r.seq[out[i].ID] < r.seq[out[j].ID]
	})
}
