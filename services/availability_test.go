package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentaj/constants"
	"rentaj/models"
)

func day(s string) time.Time {
	t, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIntervalConflicts(t *testing.T) {
	tests := []struct {
		name     string
		pickup   string
		ret      string
		from     string
		to       string
		conflict bool
	}{
		{
			name:   "identical ranges",
			pickup: "2026-09-10", ret: "2026-09-15",
			from: "2026-09-10", to: "2026-09-15",
			conflict: true,
		},
		{
			name:   "pickup inside existing booking",
			pickup: "2026-09-12", ret: "2026-09-20",
			from: "2026-09-10", to: "2026-09-15",
			conflict: true,
		},
		{
			name:   "return inside existing booking",
			pickup: "2026-09-05", ret: "2026-09-12",
			from: "2026-09-10", to: "2026-09-15",
			conflict: true,
		},
		{
			name:   "candidate contains existing booking",
			pickup: "2026-09-05", ret: "2026-09-20",
			from: "2026-09-10", to: "2026-09-15",
			conflict: true,
		},
		{
			name:   "candidate inside existing booking",
			pickup: "2026-09-11", ret: "2026-09-14",
			from: "2026-09-10", to: "2026-09-15",
			conflict: true,
		},
		{
			name:   "pickup on existing return day",
			pickup: "2026-09-15", ret: "2026-09-20",
			from: "2026-09-10", to: "2026-09-15",
			conflict: true,
		},
		{
			name:   "return on existing pickup day",
			pickup: "2026-09-05", ret: "2026-09-10",
			from: "2026-09-10", to: "2026-09-15",
			conflict: true,
		},
		{
			name:   "entirely before existing booking",
			pickup: "2026-09-01", ret: "2026-09-05",
			from: "2026-09-10", to: "2026-09-15",
			conflict: false,
		},
		{
			name:   "entirely after existing booking",
			pickup: "2026-09-16", ret: "2026-09-20",
			from: "2026-09-10", to: "2026-09-15",
			conflict: false,
		},
		{
			name:   "single day gap after existing booking",
			pickup: "2026-09-16", ret: "2026-09-16",
			from: "2026-09-10", to: "2026-09-15",
			conflict: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := intervalConflicts(day(tt.pickup), day(tt.ret), day(tt.from), day(tt.to))
			assert.Equal(t, tt.conflict, got)
		})
	}
}

func TestConflictsWithAnyIgnoresCancelled(t *testing.T) {
	bookings := []models.Booking{
		{
			ID:         1,
			Status:     constants.BookingStatusCancelled,
			PickUpDate: day("2026-09-10"),
			ReturnDate: day("2026-09-15"),
		},
	}

	assert.False(t, ConflictsWithAny(day("2026-09-12"), day("2026-09-14"), bookings, 0))
}

func TestConflictsWithAnyBlocksConfirmed(t *testing.T) {
	bookings := []models.Booking{
		{
			ID:         1,
			Status:     constants.BookingStatusConfirmed,
			PickUpDate: day("2026-09-10"),
			ReturnDate: day("2026-09-15"),
		},
	}

	assert.True(t, ConflictsWithAny(day("2026-09-12"), day("2026-09-14"), bookings, 0))
	assert.False(t, ConflictsWithAny(day("2026-09-16"), day("2026-09-20"), bookings, 0))
}

func TestConflictsWithAnySkipsExcludedBooking(t *testing.T) {
	bookings := []models.Booking{
		{
			ID:         7,
			Status:     constants.BookingStatusConfirmed,
			PickUpDate: day("2026-09-10"),
			ReturnDate: day("2026-09-15"),
		},
	}

	// A booking never conflicts with itself when its own dates are edited.
	assert.False(t, ConflictsWithAny(day("2026-09-11"), day("2026-09-16"), bookings, 7))
	assert.True(t, ConflictsWithAny(day("2026-09-11"), day("2026-09-16"), bookings, 0))
}

func TestConflictsWithAnyMultipleBookings(t *testing.T) {
	bookings := []models.Booking{
		{
			ID:         1,
			Status:     constants.BookingStatusConfirmed,
			PickUpDate: day("2026-09-01"),
			ReturnDate: day("2026-09-05"),
		},
		{
			ID:         2,
			Status:     constants.BookingStatusConfirmed,
			PickUpDate: day("2026-09-10"),
			ReturnDate: day("2026-09-15"),
		},
	}

	// The gap between the two bookings is free.
	assert.False(t, ConflictsWithAny(day("2026-09-06"), day("2026-09-09"), bookings, 0))
	assert.True(t, ConflictsWithAny(day("2026-09-04"), day("2026-09-07"), bookings, 0))
	assert.True(t, ConflictsWithAny(day("2026-09-09"), day("2026-09-10"), bookings, 0))
}
