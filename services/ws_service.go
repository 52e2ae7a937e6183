package services

import (
	"fmt"
	"log"

	json "github.com/goccy/go-json"
	"github.com/olahol/melody"

	"rentaj/constants"
	"rentaj/models"
)

// BookingEvent is the payload broadcast to websocket clients when a booking changes.
type BookingEvent struct {
	Event      string  `json:"event"`
	BookingID  uint    `json:"bookingId"`
	CarID      uint    `json:"carId"`
	DealerID   uint    `json:"dealerId"`
	PickUpDate string  `json:"pickUpDate"`
	ReturnDate string  `json:"returnDate"`
	TotalPrice float64 `json:"totalPrice"`
	Message    string  `json:"message"`
}

func broadcastEvent(m *melody.Melody, event BookingEvent) {
	if m == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to encode booking event %s for booking %d: %v", event.Event, event.BookingID, err)
		return
	}

	if err := m.Broadcast(payload); err != nil {
		log.Printf("failed to broadcast booking event %s: %v", event.Event, err)
	}
}

// NotifyBookingCreated announces a fresh booking to connected clients.
func NotifyBookingCreated(m *melody.Melody, booking models.Booking) {
	broadcastEvent(m, BookingEvent{
		Event:      "booking.created",
		BookingID:  booking.ID,
		CarID:      booking.CarID,
		DealerID:   booking.DealerID,
		PickUpDate: booking.PickUpDate.Format(constants.DateLayout),
		ReturnDate: booking.ReturnDate.Format(constants.DateLayout),
		TotalPrice: booking.TotalPrice,
		Message:    fmt.Sprintf("Car %d booked from %s to %s", booking.CarID, booking.PickUpDate.Format(constants.DateLayout), booking.ReturnDate.Format(constants.DateLayout)),
	})
}

// NotifyBookingUpdated announces changed booking details.
func NotifyBookingUpdated(m *melody.Melody, booking models.Booking) {
	broadcastEvent(m, BookingEvent{
		Event:      "booking.updated",
		BookingID:  booking.ID,
		CarID:      booking.CarID,
		DealerID:   booking.DealerID,
		PickUpDate: booking.PickUpDate.Format(constants.DateLayout),
		ReturnDate: booking.ReturnDate.Format(constants.DateLayout),
		TotalPrice: booking.TotalPrice,
		Message:    fmt.Sprintf("Booking %d was updated", booking.ID),
	})
}

// NotifyBookingCancelled announces a cancellation so dealers can re-list the car.
func NotifyBookingCancelled(m *melody.Melody, booking models.Booking) {
	broadcastEvent(m, BookingEvent{
		Event:     "booking.cancelled",
		BookingID: booking.ID,
		CarID:     booking.CarID,
		DealerID:  booking.DealerID,
		Message:   fmt.Sprintf("Booking %d for car %d was cancelled", booking.ID, booking.CarID),
	})
}

// NotifyStatusReconciled reports how many cars the nightly job released.
func NotifyStatusReconciled(m *melody.Melody, released int) {
	if released == 0 {
		return
	}
	broadcastEvent(m, BookingEvent{
		Event:   "cars.reconciled",
		Message: fmt.Sprintf("%d cars returned to the available pool", released),
	})
}
