package controllers

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"rentaj/config"
	"rentaj/constants"
	"rentaj/dto"
	"rentaj/errors"
	"rentaj/models"
	"rentaj/response"
	"rentaj/services"
	"rentaj/validator"
)

var ws *melody.Melody

// SetBroadcaster wires the websocket hub used for booking notifications.
func SetBroadcaster(m *melody.Melody) {
	ws = m
}

func convertToActorResponse(user models.User) dto.ActorResponse {
	return dto.ActorResponse{
		ID:          user.ID,
		Name:        user.FullName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Location:    user.Location,
		Avatar:      user.Avatar,
	}
}

func convertToBookingCarResponse(car models.Car) dto.BookingCarResponse {
	image := ""
	for _, img := range car.Images {
		if img.IsPrimary {
			image = img.URL
			break
		}
	}
	if image == "" && len(car.Images) > 0 {
		image = car.Images[0].URL
	}

	return dto.BookingCarResponse{
		ID:             car.ID,
		Title:          car.Title,
		Make:           car.Make,
		Model:          car.Model,
		Year:           car.Year,
		PricePerDay:    car.PricePerDay,
		Status:         car.Status,
		PickupLocation: car.PickupLocation,
		Image:          image,
	}
}

func convertToBookingResponse(booking models.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:               booking.ID,
		Car:              convertToBookingCarResponse(booking.Car),
		Renter:           convertToActorResponse(booking.Renter),
		Dealer:           convertToActorResponse(booking.Dealer),
		PickUpDate:       booking.PickUpDate.Format(constants.DateLayout),
		ReturnDate:       booking.ReturnDate.Format(constants.DateLayout),
		PickupLocation:   booking.PickupLocation,
		ReturnLocation:   booking.ReturnLocation,
		TotalPrice:       booking.TotalPrice,
		Status:           booking.Status,
		CancellationDate: booking.CancellationDate,
		CreatedAt:        booking.CreatedAt,
		UpdatedAt:        booking.UpdatedAt,
	}
}

// respondWithAppError maps service error codes onto HTTP responses.
func respondWithAppError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		response.ServerError(c)
		return
	}

	switch appErr.Code {
	case errors.ErrCodeNotFound, errors.ErrCodeDBNotFound:
		response.NotFound(c)
	case errors.ErrCodeForbidden:
		response.Forbidden(c)
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeMissingToken:
		response.Unauthorized(c)
	case errors.ErrCodeConflict:
		response.Conflict(c, appErr.Message)
	case errors.ErrCodeValidation, errors.ErrCodeRequiredField, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidEmail, errors.ErrCodeInvalidPhone, errors.ErrCodeInvalidRole:
		response.BadRequest(c, appErr.Message)
	default:
		response.ServerError(c)
	}
}

func invalidateBookingCache(renterID, dealerID uint) {
	rdb, err := config.ConnectRedis()
	if err != nil {
		return
	}

	keys := []string{
		fmt.Sprintf("bookings:all:user:%d", renterID),
		fmt.Sprintf("bookings:all:user:%d", dealerID),
	}
	for _, key := range keys {
		if err := services.DeleteFromRedis(config.Ctx, rdb, key); err != nil {
			log.Printf("failed to drop booking cache %s: %v", key, err)
		}
	}

	if err := services.DeleteKeysByPattern(config.Ctx, rdb, "cars:all*"); err != nil {
		log.Printf("failed to drop car list cache: %v", err)
	}
}

// GetBookings lists the caller's bookings, as renter or as dealer.
func GetBookings(c *gin.Context) {
	currentUserID := c.GetUint("userID")
	currentUserRole := c.GetInt("userRole")

	cacheKey := fmt.Sprintf("bookings:all:user:%d", currentUserID)
	rdb, err := config.ConnectRedis()
	if err != nil {
		response.ServerError(c)
		return
	}

	var allBookings []models.Booking

	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &allBookings); err != nil || len(allBookings) == 0 {
		baseTx := config.DB.Model(&models.Booking{}).
			Preload("Car").
			Preload("Car.Images").
			Preload("Renter").
			Preload("Dealer")

		if currentUserRole == constants.RoleDealer {
			baseTx = baseTx.Where("dealer_id = ?", currentUserID)
		} else {
			baseTx = baseTx.Where("renter_id = ?", currentUserID)
		}

		if err := baseTx.Find(&allBookings).Error; err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, allBookings, 10*time.Minute); err != nil {
			log.Printf("failed to cache bookings for user %d: %v", currentUserID, err)
		}
	}

	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	statusFilter := c.Query("status")
	carIDStr := c.Query("carId")

	page := 0
	limit := 10
	if pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	filteredBookings := make([]models.Booking, 0)
	for _, booking := range allBookings {
		if statusFilter != "" && booking.Status != statusFilter {
			continue
		}
		if carIDStr != "" {
			carID, err := strconv.Atoi(carIDStr)
			if err == nil && booking.CarID != uint(carID) {
				continue
			}
		}
		filteredBookings = append(filteredBookings, booking)
	}

	totalFiltered := len(filteredBookings)

	sort.Slice(filteredBookings, func(i, j int) bool {
		return filteredBookings[i].UpdatedAt.After(filteredBookings[j].UpdatedAt)
	})

	start := page * limit
	end := start + limit
	if start >= totalFiltered {
		filteredBookings = []models.Booking{}
	} else if end > totalFiltered {
		filteredBookings = filteredBookings[start:]
	} else {
		filteredBookings = filteredBookings[start:end]
	}

	bookingResponses := make([]dto.BookingResponse, 0, len(filteredBookings))
	for _, booking := range filteredBookings {
		bookingResponses = append(bookingResponses, convertToBookingResponse(booking))
	}

	response.SuccessWithPagination(c, bookingResponses, page, limit, totalFiltered)
}

// GetBookingDetail returns one booking to its renter or dealer.
func GetBookingDetail(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking id")
		return
	}

	var booking models.Booking
	if err := config.DB.
		Preload("Car").
		Preload("Car.Images").
		Preload("Renter").
		Preload("Dealer").
		First(&booking, bookingID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if booking.RenterID != currentUserID && booking.DealerID != currentUserID {
		response.Forbidden(c)
		return
	}

	response.Success(c, convertToBookingResponse(booking))
}

// CreateBooking books a car for a date range on behalf of the renter.
func CreateBooking(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	var request dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := validator.ValidateBookingDates(request.PickUpDate, request.ReturnDate); err != nil {
		respondWithAppError(c, err)
		return
	}

	pickUpDate, err := time.Parse(constants.DateLayout, request.PickUpDate)
	if err != nil {
		response.BadRequest(c, "Pickup date is not a valid date")
		return
	}

	returnDate, err := time.Parse(constants.DateLayout, request.ReturnDate)
	if err != nil {
		response.BadRequest(c, "Return date is not a valid date")
		return
	}

	booking, err := services.CreateBooking(services.CreateBookingInput{
		RenterID:       currentUserID,
		CarID:          request.CarID,
		PickUpDate:     pickUpDate,
		ReturnDate:     returnDate,
		PickupLocation: request.PickupLocation,
		ReturnLocation: request.ReturnLocation,
		TotalPrice:     request.TotalPrice,
	})
	if err != nil {
		respondWithAppError(c, err)
		return
	}

	if booking.Renter.Email != "" {
		if err := services.SendBookingEmail(booking.Renter.Email, booking.ID, booking.TotalPrice, booking.PickUpDate, booking.ReturnDate); err != nil {
			log.Printf("failed to send booking email for booking %d: %v", booking.ID, err)
		}
	}

	services.NotifyBookingCreated(ws, *booking)
	invalidateBookingCache(booking.RenterID, booking.DealerID)

	response.Created(c, convertToBookingResponse(*booking))
}

// UpdateBooking changes dates or locations of an existing booking.
func UpdateBooking(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking id")
		return
	}

	var request dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if request.PickUpDate != nil && request.ReturnDate != nil {
		if err := validator.ValidateBookingDates(*request.PickUpDate, *request.ReturnDate); err != nil {
			respondWithAppError(c, err)
			return
		}
	}

	input := services.UpdateBookingInput{
		PickupLocation: request.PickupLocation,
		ReturnLocation: request.ReturnLocation,
		TotalPrice:     request.TotalPrice,
	}

	if request.PickUpDate != nil {
		pickUpDate, err := time.Parse(constants.DateLayout, *request.PickUpDate)
		if err != nil {
			response.BadRequest(c, "Pickup date is not a valid date")
			return
		}
		input.PickUpDate = &pickUpDate
	}

	if request.ReturnDate != nil {
		returnDate, err := time.Parse(constants.DateLayout, *request.ReturnDate)
		if err != nil {
			response.BadRequest(c, "Return date is not a valid date")
			return
		}
		input.ReturnDate = &returnDate
	}

	booking, err := services.UpdateBooking(currentUserID, uint(bookingID), input)
	if err != nil {
		respondWithAppError(c, err)
		return
	}

	services.NotifyBookingUpdated(ws, *booking)
	invalidateBookingCache(booking.RenterID, booking.DealerID)

	response.Success(c, convertToBookingResponse(*booking))
}

// CancelBooking cancels a booking for either party and frees the car when
// no other confirmed booking holds it.
func CancelBooking(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking id")
		return
	}

	booking, err := services.CancelBooking(currentUserID, uint(bookingID))
	if err != nil {
		respondWithAppError(c, err)
		return
	}

	if booking.Renter.Email != "" {
		if err := services.SendCancellationEmail(booking.Renter.Email, booking.ID); err != nil {
			log.Printf("failed to send cancellation email for booking %d: %v", booking.ID, err)
		}
	}

	services.NotifyBookingCancelled(ws, *booking)
	invalidateBookingCache(booking.RenterID, booking.DealerID)

	response.Success(c, convertToBookingResponse(*booking))
}
