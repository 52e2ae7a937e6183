package dto

import "time"

// CreateBookingRequest is the payload a renter sends to book a car.
type CreateBookingRequest struct {
	CarID          uint    `json:"carId" binding:"required"`
	PickUpDate     string  `json:"pickUpDate" binding:"required"`
	ReturnDate     string  `json:"returnDate" binding:"required"`
	PickupLocation string  `json:"pickupLocation"`
	ReturnLocation string  `json:"returnLocation"`
	TotalPrice     float64 `json:"totalPrice" binding:"required"`
}

// UpdateBookingRequest carries optional changes to an existing booking.
type UpdateBookingRequest struct {
	PickUpDate     *string  `json:"pickUpDate"`
	ReturnDate     *string  `json:"returnDate"`
	PickupLocation *string  `json:"pickupLocation"`
	ReturnLocation *string  `json:"returnLocation"`
	TotalPrice     *float64 `json:"totalPrice"`
}

// BookingCarResponse is the car summary embedded in a booking.
type BookingCarResponse struct {
	ID             uint    `json:"id"`
	Title          string  `json:"title"`
	Make           string  `json:"make"`
	Model          string  `json:"model"`
	Year           int     `json:"year"`
	PricePerDay    float64 `json:"pricePerDay"`
	Status         string  `json:"status"`
	PickupLocation string  `json:"pickupLocation"`
	Image          string  `json:"image"`
}

// BookingResponse is the full booking view returned to either party.
type BookingResponse struct {
	ID               uint               `json:"id"`
	Car              BookingCarResponse `json:"car"`
	Renter           ActorResponse      `json:"renter"`
	Dealer           ActorResponse      `json:"dealer"`
	PickUpDate       string             `json:"pickUpDate"`
	ReturnDate       string             `json:"returnDate"`
	PickupLocation   string             `json:"pickupLocation"`
	ReturnLocation   string             `json:"returnLocation"`
	TotalPrice       float64            `json:"totalPrice"`
	Status           string             `json:"status"`
	CancellationDate *time.Time         `json:"cancellationDate,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// BookedInterval is one confirmed date range of a car.
type BookedInterval struct {
	PickUpDate string `json:"pickUpDate"`
	ReturnDate string `json:"returnDate"`
}
