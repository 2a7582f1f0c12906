package reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Party size bounds enforced by the record store, not the API layer.
const (
	MinPartySize = 1
	MaxPartySize = 20
)

type Reservation struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	PartySize       int       `json:"partySize"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("reservation not found")

// party size outside [MinPartySize, MaxPartySize]
var ErrPartySizeRange = errors.New("party size out of range")

// Required-field presence is checked by the handler so the API can return
// the exact "Date, time, and party size are required" message; the tags
// here only constrain shape when values are present.
type CreateReservationRequest struct {
	Date            string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time            string `json:"time"`
	PartySize       int    `json:"partySize"`
	SpecialRequests string `json:"specialRequests"`
}

// Partial update payload. Nil means "leave unchanged".
type UpdateReservationRequest struct {
	Date            *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time            *string `json:"time"`
	PartySize       *int    `json:"partySize"`
	SpecialRequests *string `json:"specialRequests"`
	Status          *string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

func PartySizeInRange(n int) bool {
	return n >= MinPartySize && n <= MaxPartySize
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// A factory to build a Reservation from the incoming DTO. New records
// always start out pending; the owner comes from the caller identity,
// never from client input.
func NewFromCreateRequest(userID string, req CreateReservationRequest) Reservation {
	now := time.Now().UTC()
	return Reservation{
		ID:              uuid.NewString(),
		UserID:          userID,
		Date:            req.Date,
		Time:            req.Time,
		PartySize:       req.PartySize,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
