package services

import (
	"time"

	"gorm.io/gorm"

	"rentaj/constants"
	"rentaj/models"
)

// intervalConflicts reports whether the candidate [pickup, ret] range conflicts
// with an existing booking range [from, to]. Ranges are closed on both ends:
// bookings that share a boundary day conflict.
func intervalConflicts(pickup, ret, from, to time.Time) bool {
	// candidate pickup falls inside the existing booking
	if !pickup.Before(from) && !pickup.After(to) {
		return true
	}
	// candidate return falls inside the existing booking
	if !ret.Before(from) && !ret.After(to) {
		return true
	}
	// candidate fully contains the existing booking
	if !from.Before(pickup) && !to.After(ret) {
		return true
	}
	return false
}

// ConflictsWithAny applies the closed-interval rule across a set of bookings.
// Only CONFIRMED bookings block; excludeID lets date updates skip the booking
// being edited.
func ConflictsWithAny(pickup, ret time.Time, bookings []models.Booking, excludeID uint) bool {
	for _, booking := range bookings {
		if booking.Status != constants.BookingStatusConfirmed {
			continue
		}
		if excludeID != 0 && booking.ID == excludeID {
			continue
		}
		if intervalConflicts(pickup, ret, booking.PickUpDate, booking.ReturnDate) {
			return true
		}
	}
	return false
}

// HasConfirmedOverlap queries the confirmed bookings of a car and reports
// whether the candidate range conflicts with any of them. Read-only; run it
// inside the transaction that holds the car row lock so the answer stays valid
// until commit.
func HasConfirmedOverlap(tx *gorm.DB, carID uint, pickup, ret time.Time, excludeID uint) (bool, error) {
	query := tx.Model(&models.Booking{}).
		Where("car_id = ? AND status = ?", carID, constants.BookingStatusConfirmed).
		Where("(pick_up_date <= ? AND return_date >= ?) OR (pick_up_date <= ? AND return_date >= ?) OR (pick_up_date >= ? AND return_date <= ?)",
			pickup, pickup, ret, ret, pickup, ret)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetBookedIntervals returns the confirmed booking ranges of a car, earliest
// pickup first. Used by the car detail and calendar endpoints.
func GetBookedIntervals(db *gorm.DB, carID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.Select("id", "status", "pick_up_date", "return_date").
		Where("car_id = ? AND status = ?", carID, constants.BookingStatusConfirmed).
		Order("pick_up_date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
