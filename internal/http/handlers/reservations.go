package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gildedfork/tablebook/internal/cache"
	"github.com/gildedfork/tablebook/internal/config"
	"github.com/gildedfork/tablebook/internal/domain/reservation"
	"github.com/gildedfork/tablebook/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type ReservationStore interface {
	Create(ctx context.Context, userID string, req reservation.CreateReservationRequest) (reservation.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]reservation.Reservation, error)
	ListAll(ctx context.Context) ([]reservation.Reservation, error)
	Update(ctx context.Context, id, userID string, req reservation.UpdateReservationRequest) (reservation.Reservation, error)
	Cancel(ctx context.Context, id, userID string) (reservation.Reservation, error)
}

type ReservationsHandler struct {
	store ReservationStore
	lists *cache.Cache
}

func NewReservationsHandler(store ReservationStore, lists *cache.Cache) *ReservationsHandler {
	return &ReservationsHandler{store: store, lists: lists}
}

func (h *ReservationsHandler) Create(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "Missing identity")
		return
	}

	var req reservation.CreateReservationRequest
	if !BindJSON(ctx, &req) {
		return
	}

	// presence only; party-size bounds are the store's invariant
	if req.Date == "" || req.Time == "" || req.PartySize == 0 {
		RespondBadRequest(ctx, "Date, time, and party size are required", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	res, err := h.store.Create(cctx, userID, req)
	if err != nil {
		RespondInternal(ctx, err.Error())
		return
	}

	h.invalidate(userID)

	ctx.JSON(http.StatusCreated, gin.H{
		"message":     "Reservation created successfully",
		"reservation": res,
	})
}

func (h *ReservationsHandler) ListMine(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "Missing identity")
		return
	}

	if h.lists != nil {
		if v, ok := h.lists.Get(listKey(userID)); ok {
			if cached, ok := v.([]reservation.Reservation); ok {
				ctx.JSON(http.StatusOK, gin.H{"reservations": cached})
				return
			}
		}
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	out, err := h.store.ListByUser(cctx, userID)
	if err != nil {
		RespondInternal(ctx, err.Error())
		return
	}

	if h.lists != nil {
		h.lists.Set(listKey(userID), out)
	}

	ctx.JSON(http.StatusOK, gin.H{"reservations": out})
}

func (h *ReservationsHandler) Update(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "Missing identity")
		return
	}

	id := ctx.Param("id")

	var req reservation.UpdateReservationRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	res, err := h.store.Update(cctx, id, userID, req)
	if err != nil {
		if errors.Is(err, reservation.ErrNotFound) {
			RespondNotFound(ctx, "Reservation not found")
			return
		}
		RespondInternal(ctx, err.Error())
		return
	}

	h.invalidate(userID)

	ctx.JSON(http.StatusOK, gin.H{
		"message":     "Reservation updated successfully",
		"reservation": res,
	})
}

// Cancel never deletes: it forces status=cancelled and is idempotent.
func (h *ReservationsHandler) Cancel(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "Missing identity")
		return
	}

	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	res, err := h.store.Cancel(cctx, id, userID)
	if err != nil {
		if errors.Is(err, reservation.ErrNotFound) {
			RespondNotFound(ctx, "Reservation not found")
			return
		}
		RespondInternal(ctx, err.Error())
		return
	}

	h.invalidate(userID)

	ctx.JSON(http.StatusOK, gin.H{
		"message":     "Reservation cancelled successfully",
		"reservation": res,
	})
}

// ListAll is the admin view; the role guard sits in the router.
func (h *ReservationsHandler) ListAll(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	out, err := h.store.ListAll(cctx)
	if err != nil {
		RespondInternal(ctx, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"reservations": out,
		"count":        len(out),
	})
}

func (h *ReservationsHandler) invalidate(userID string) {
	if h.lists == nil {
		return
	}
	h.lists.Delete(listKey(userID))
	slog.Debug("reservation list cache invalidated", "user_id", userID)
}

func listKey(userID string) string {
	return "reservations:user:" + userID
}
