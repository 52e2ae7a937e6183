package services

import (
	goerrors "errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentaj/config"
	"rentaj/constants"
	"rentaj/errors"
	"rentaj/models"
)

// CreateBookingInput carries the validated fields of a booking request.
type CreateBookingInput struct {
	RenterID       uint
	CarID          uint
	PickUpDate     time.Time
	ReturnDate     time.Time
	PickupLocation string
	ReturnLocation string
	TotalPrice     float64
}

// UpdateBookingInput carries a partial booking update. Nil fields are left
// untouched. Date changes re-run the same validation as creation.
type UpdateBookingInput struct {
	PickUpDate     *time.Time
	ReturnDate     *time.Time
	PickupLocation *string
	ReturnLocation *string
	TotalPrice     *float64
}

// validateBookingDates enforces the ordering and past-date rules shared by
// creation and date-changing updates.
func validateBookingDates(pickup, ret, now time.Time) *errors.AppError {
	if !pickup.Before(ret) {
		return errors.NewAppError(errors.ErrCodeValidation, "Return date must be after pickup date", nil)
	}
	if pickup.Before(now) {
		return errors.NewAppError(errors.ErrCodeValidation, "Pickup date cannot be in the past", nil)
	}
	return nil
}

// lockCarForUpdate loads the car row under a FOR UPDATE lock. SQLite has no
// row locks and rejects the clause; its single-writer model serializes the
// transaction instead.
func lockCarForUpdate(tx *gorm.DB, carID uint, car *models.Car) error {
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx.First(car, carID).Error
}

// markRented flips the car status flag. Called only from booking creation,
// inside the transaction that created the booking.
func markRented(tx *gorm.DB, carID uint) error {
	return tx.Model(&models.Car{}).Where("id = ?", carID).
		Update("status", constants.CarStatusRented).Error
}

// markAvailable releases the car status flag. Called only from booking
// cancellation, inside the cancelling transaction.
func markAvailable(tx *gorm.DB, carID uint) error {
	return tx.Model(&models.Car{}).Where("id = ?", carID).
		Update("status", constants.CarStatusAvailable).Error
}

// CreateBooking inserts a CONFIRMED booking and flips the car to RENTED as one
// atomic unit. The car row is locked FOR UPDATE for the duration of the
// overlap check and both writes, so two concurrent requests for the same car
// serialize and the loser sees the winner's booking.
func CreateBooking(in CreateBookingInput) (*models.Booking, error) {
	if appErr := validateBookingDates(in.PickUpDate, in.ReturnDate, time.Now()); appErr != nil {
		return nil, appErr
	}

	var booking models.Booking
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var car models.Car
		if err := lockCarForUpdate(tx, in.CarID, &car); err != nil {
			if goerrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NewAppError(errors.ErrCodeNotFound, "Car not found", err)
			}
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to load car", err)
		}

		// The overlap check is the authoritative availability guard. The
		// RENTED flag alone cannot reject: adjacent future bookings on a
		// currently rented car are legal.
		conflict, err := HasConfirmedOverlap(tx, car.ID, in.PickUpDate, in.ReturnDate, 0)
		if err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to check availability", err)
		}
		if conflict {
			return errors.NewAppError(errors.ErrCodeConflict, "Car already booked for these dates", nil)
		}

		pickupLocation := in.PickupLocation
		if pickupLocation == "" {
			pickupLocation = car.PickupLocation
		}

		booking = models.Booking{
			RenterID:       in.RenterID,
			DealerID:       car.DealerID,
			CarID:          car.ID,
			PickUpDate:     in.PickUpDate,
			ReturnDate:     in.ReturnDate,
			PickupLocation: pickupLocation,
			ReturnLocation: in.ReturnLocation,
			TotalPrice:     in.TotalPrice,
			Status:         constants.BookingStatusConfirmed,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to create booking", err)
		}

		if err := markRented(tx, car.ID); err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to update car status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := preloadBooking(&booking); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load booking", err)
	}
	return &booking, nil
}

// CancelBooking moves a booking to CANCELLED and releases the car when no
// other confirmed booking still claims it. CANCELLED is terminal.
func CancelBooking(callerID, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := config.DB.First(&booking, bookingID).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Booking not found", err)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load booking", err)
	}
	if booking.RenterID != callerID && booking.DealerID != callerID {
		return nil, errors.NewAppError(errors.ErrCodeForbidden, "Caller is not a party to this booking", nil)
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var car models.Car
		if err := lockCarForUpdate(tx, booking.CarID, &car); err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to load car", err)
		}

		// Re-read under the car lock so concurrent cancels serialize.
		if err := tx.First(&booking, bookingID).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to load booking", err)
		}
		if booking.Status == constants.BookingStatusCancelled {
			return errors.NewAppError(errors.ErrCodeConflict, "Booking already cancelled", nil)
		}

		now := time.Now()
		booking.Status = constants.BookingStatusCancelled
		booking.CancellationDate = &now
		if err := tx.Save(&booking).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to cancel booking", err)
		}

		var remaining int64
		if err := tx.Model(&models.Booking{}).
			Where("car_id = ? AND status = ? AND id <> ?", booking.CarID, constants.BookingStatusConfirmed, booking.ID).
			Count(&remaining).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to count remaining bookings", err)
		}
		if remaining == 0 {
			if err := markAvailable(tx, booking.CarID); err != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Failed to update car status", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := preloadBooking(&booking); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load booking", err)
	}
	return &booking, nil
}

// UpdateBooking applies a partial update on behalf of either party. When a
// date changes, the full creation-time validation pipeline runs again with the
// booking itself excluded from the overlap check.
func UpdateBooking(callerID, bookingID uint, in UpdateBookingInput) (*models.Booking, error) {
	var booking models.Booking
	if err := config.DB.First(&booking, bookingID).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Booking not found", err)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load booking", err)
	}
	if booking.RenterID != callerID && booking.DealerID != callerID {
		return nil, errors.NewAppError(errors.ErrCodeForbidden, "Caller is not a party to this booking", nil)
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var car models.Car
		if err := lockCarForUpdate(tx, booking.CarID, &car); err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to load car", err)
		}
		if err := tx.First(&booking, bookingID).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to load booking", err)
		}
		if booking.Status == constants.BookingStatusCancelled {
			return errors.NewAppError(errors.ErrCodeConflict, "Booking already cancelled", nil)
		}

		pickup := booking.PickUpDate
		ret := booking.ReturnDate
		dateChanged := false
		if in.PickUpDate != nil {
			pickup = *in.PickUpDate
			dateChanged = true
		}
		if in.ReturnDate != nil {
			ret = *in.ReturnDate
			dateChanged = true
		}

		if dateChanged {
			if appErr := validateBookingDates(pickup, ret, time.Now()); appErr != nil {
				return appErr
			}
			conflict, err := HasConfirmedOverlap(tx, booking.CarID, pickup, ret, booking.ID)
			if err != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Failed to check availability", err)
			}
			if conflict {
				return errors.NewAppError(errors.ErrCodeConflict, "Car already booked for these dates", nil)
			}
			booking.PickUpDate = pickup
			booking.ReturnDate = ret
		}

		if in.PickupLocation != nil {
			booking.PickupLocation = *in.PickupLocation
		}
		if in.ReturnLocation != nil {
			booking.ReturnLocation = *in.ReturnLocation
		}
		if in.TotalPrice != nil {
			booking.TotalPrice = *in.TotalPrice
		}

		if err := tx.Save(&booking).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := preloadBooking(&booking); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load booking", err)
	}
	return &booking, nil
}

// ReconcileCarStatuses releases cars still flagged RENTED although no
// confirmed booking reaches into the future. Run daily from the cron job.
func ReconcileCarStatuses() (int, error) {
	var carIDs []uint
	err := config.DB.Model(&models.Car{}).
		Where("status = ?", constants.CarStatusRented).
		Where("id NOT IN (?)", config.DB.Model(&models.Booking{}).
			Select("car_id").
			Where("status = ? AND return_date >= ?", constants.BookingStatusConfirmed, time.Now())).
		Pluck("id", &carIDs).Error
	if err != nil {
		return 0, err
	}
	if len(carIDs) == 0 {
		return 0, nil
	}

	err = config.DB.Model(&models.Car{}).Where("id IN ?", carIDs).
		Update("status", constants.CarStatusAvailable).Error
	if err != nil {
		return 0, err
	}
	return len(carIDs), nil
}

func preloadBooking(booking *models.Booking) error {
	return config.DB.
		Preload("Car").
		Preload("Car.Images").
		Preload("Renter").
		Preload("Dealer").
		First(booking, booking.ID).Error
}
