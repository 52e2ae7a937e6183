package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentaj/config"
	"rentaj/constants"
	"rentaj/errors"
	"rentaj/models"
)

// newTestDB opens a named in-memory database and points config.DB at it.
// A single connection keeps the shared-cache memory database alive for the
// whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Car{}, &models.CarImage{}, &models.Booking{}))

	config.DB = db
	return db
}

func seedParties(t *testing.T, db *gorm.DB) (models.User, models.User) {
	t.Helper()

	dealer := models.User{FullName: "Dealer", Email: "dealer@example.com", Role: constants.RoleDealer, IsVerified: true}
	require.NoError(t, db.Create(&dealer).Error)

	renter := models.User{FullName: "Renter", Email: "renter@example.com", Role: constants.RoleRenter, IsVerified: true}
	require.NoError(t, db.Create(&renter).Error)

	return dealer, renter
}

func seedCar(t *testing.T, db *gorm.DB, dealerID uint) models.Car {
	t.Helper()

	car := models.Car{
		DealerID:       dealerID,
		Title:          "VW Golf 8",
		Make:           "Volkswagen",
		Model:          "Golf",
		Year:           2021,
		CarType:        "Hatchback",
		Transmission:   "Manual",
		FuelType:       "Petrol",
		PricePerDay:    45,
		Status:         constants.CarStatusAvailable,
		AvailableFrom:  time.Now().UTC(),
		PickupLocation: "Berlin",
	}
	require.NoError(t, db.Create(&car).Error)
	return car
}

// futureDay returns midnight UTC offset days from now, so date validation
// never trips over the wall clock.
func futureDay(offset int) time.Time {
	return time.Now().UTC().AddDate(0, 0, offset).Truncate(24 * time.Hour)
}

func loadCar(t *testing.T, db *gorm.DB, id uint) models.Car {
	t.Helper()
	var car models.Car
	require.NoError(t, db.First(&car, id).Error)
	return car
}

func loadBooking(t *testing.T, db *gorm.DB, id uint) models.Booking {
	t.Helper()
	var booking models.Booking
	require.NoError(t, db.First(&booking, id).Error)
	return booking
}

func appErrCode(t *testing.T, err error) errors.ErrorCode {
	t.Helper()
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	return appErr.Code
}

func TestCreateBookingRentsCar(t *testing.T) {
	db := newTestDB(t)
	dealer, renter := seedParties(t, db)
	car := seedCar(t, db, dealer.ID)

	booking, err := CreateBooking(CreateBookingInput{
		RenterID:   renter.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(3),
		ReturnDate: futureDay(6),
		TotalPrice: 135,
	})
	require.NoError(t, err)

	assert.Equal(t, constants.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, dealer.ID, booking.DealerID)
	assert.Equal(t, "Berlin", booking.PickupLocation, "empty pickup location falls back to the car's")
	assert.Equal(t, constants.CarStatusRented, loadCar(t, db, car.ID).Status)
}

func TestCreateBookingUnknownCar(t *testing.T) {
	db := newTestDB(t)
	_, renter := seedParties(t, db)

	_, err := CreateBooking(CreateBookingInput{
		RenterID:   renter.ID,
		CarID:      9999,
		PickUpDate: futureDay(3),
		ReturnDate: futureDay(6),
		TotalPrice: 135,
	})
	assert.Equal(t, errors.ErrCodeNotFound, appErrCode(t, err))
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	db := newTestDB(t)
	dealer, renter := seedParties(t, db)
	car := seedCar(t, db, dealer.ID)

	first, err := CreateBooking(CreateBookingInput{
		RenterID:   renter.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(5),
		ReturnDate: futureDay(10),
		TotalPrice: 225,
	})
	require.NoError(t, err)

	// Straddling the existing range.
	_, err = CreateBooking(CreateBookingInput{
		RenterID:   renter.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(7),
		ReturnDate: futureDay(12),
		TotalPrice: 225,
	})
	assert.Equal(t, errors.ErrCodeConflict, appErrCode(t, err))

	// Intervals are closed, so a touching boundary day conflicts too.
	_, err = CreateBooking(CreateBookingInput{
		RenterID:   renter.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(10),
		ReturnDate: futureDay(13),
		TotalPrice: 135,
	})
	assert.Equal(t, errors.ErrCodeConflict, appErrCode(t, err))

	// A disjoint later range is legal even while the car shows RENTED.
	second, err := CreateBooking(CreateBookingInput{
		RenterID:   renter.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(11),
		ReturnDate: futureDay(13),
		TotalPrice: 90,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	var confirmed int64
	require.NoError(t, db.Model(&models.Booking{}).
		Where("car_id = ? AND status = ?", car.ID, constants.BookingStatusConfirmed).
		Count(&confirmed).Error)
	assert.EqualValues(t, 2, confirmed)
}

func TestCancelBookingReleasesCar(t *testing.T) {
	db := newTestDB(t)
	dealer, renter := seedParties(t, db)
	car := seedCar(t, db, dealer.ID)

	booking, err := CreateBooking(CreateBookingInput{
		RenterID:   renter.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(3),
		ReturnDate: futureDay(6),
		TotalPrice: 135,
	})
	require.NoError(t, err)

	cancelled, err := CancelBooking(renter.ID, booking.ID)
	require.NoError(t, err)

	assert.Equal(t, constants.BookingStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancellationDate)
	assert.Equal(t, constants.CarStatusAvailable, loadCar(t, db, car.ID).Status)
}

func TestCancelBookingIsTerminal(t *testing.T) {
	db := newTestDB(t)
	dealer, renter := seedParties(t, db)
	car := seedCar(t, db, dealer.ID)

	booking, err := CreateBooking(CreateBookingInput{
		RenterID:   renter.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(3),
		ReturnDate: futureDay(6),
		TotalPrice: 135,
	})
	require.NoError(t, err)

	_, err = CancelBooking(renter.ID, booking.ID)
	require.NoError(t, err)

	_, err = CancelBooking(renter.ID, booking.ID)
	assert.Equal(t, errors.ErrCodeConflict, appErrCode(t, err))

	stored := loadBooking(t, db, booking.ID)
	assert.Equal(t, constants.BookingStatusCancelled, stored.Status)
	assert.NotNil(t, stored.CancellationDate)
	assert.Equal(t, constants.CarStatusAvailable, loadCar(t, db, car.ID).Status)
}

func TestCancelBookingRequiresParty(t *testing.T) {
	db := newTestDB(t)
	dealer, renter := seedParties(t, db)
	car := seedCar(t, db, dealer.ID)

	stranger := models.User{FullName: "Stranger", Email: "stranger@example.com", Role: constants.RoleRenter}
	require.NoError(t, db.Create(&stranger).Error)

	booking, err := CreateBooking(CreateBookingInput{
		RenterID:   renter.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(3),
		ReturnDate: futureDay(6),
		TotalPrice: 135,
	})
	require.NoError(t, err)

	_, err = CancelBooking(stranger.ID, booking.ID)
	assert.Equal(t, errors.ErrCodeForbidden, appErrCode(t, err))
	assert.Equal(t, constants.BookingStatusConfirmed, loadBooking(t, db, booking.ID).Status)

	// Either party may cancel; the dealer counts.
	_, err = CancelBooking(dealer.ID, booking.ID)
	require.NoError(t, err)
}

func TestCancelBookingKeepsCarRentedWhileOthersRemain(t *testing.T) {
	db := newTestDB(t)
	dealer, renter := seedParties(t, db)
	car := seedCar(t, db, dealer.ID)

	first, err := CreateBooking(CreateBookingInput{
		RenterID:   renter.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(3),
		ReturnDate: futureDay(6),
		TotalPrice: 135,
	})
	require.NoError(t, err)

	second, err := CreateBooking(CreateBookingInput{
		RenterID:   renter.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(10),
		ReturnDate: futureDay(12),
		TotalPrice: 90,
	})
	require.NoError(t, err)

	_, err = CancelBooking(renter.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.CarStatusRented, loadCar(t, db, car.ID).Status,
		"car stays rented while another confirmed booking holds it")

	_, err = CancelBooking(renter.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.CarStatusAvailable, loadCar(t, db, car.ID).Status)
}

func TestUpdateBookingDates(t *testing.T) {
	db := newTestDB(t)
	dealer, renter := seedParties(t, db)
	car := seedCar(t, db, dealer.ID)

	booking, err := CreateBooking(CreateBookingInput{
		RenterID:   renter.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(3),
		ReturnDate: futureDay(6),
		TotalPrice: 135,
	})
	require.NoError(t, err)

	_, err = CreateBooking(CreateBookingInput{
		RenterID:   renter.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(10),
		ReturnDate: futureDay(12),
		TotalPrice: 90,
	})
	require.NoError(t, err)

	// Moving onto the other booking is rejected.
	pickup := futureDay(9)
	ret := futureDay(11)
	_, err = UpdateBooking(renter.ID, booking.ID, UpdateBookingInput{PickUpDate: &pickup, ReturnDate: &ret})
	assert.Equal(t, errors.ErrCodeConflict, appErrCode(t, err))

	// Sliding within free days succeeds; the booking does not conflict
	// with itself.
	pickup = futureDay(4)
	ret = futureDay(7)
	updated, err := UpdateBooking(renter.ID, booking.ID, UpdateBookingInput{PickUpDate: &pickup, ReturnDate: &ret})
	require.NoError(t, err)
	assert.True(t, updated.PickUpDate.Equal(pickup))
	assert.True(t, updated.ReturnDate.Equal(ret))
}

func TestUpdateCancelledBookingRejected(t *testing.T) {
	db := newTestDB(t)
	dealer, renter := seedParties(t, db)
	car := seedCar(t, db, dealer.ID)

	booking, err := CreateBooking(CreateBookingInput{
		RenterID:   renter.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(3),
		ReturnDate: futureDay(6),
		TotalPrice: 135,
	})
	require.NoError(t, err)

	_, err = CancelBooking(renter.ID, booking.ID)
	require.NoError(t, err)

	price := 99.0
	_, err = UpdateBooking(renter.ID, booking.ID, UpdateBookingInput{TotalPrice: &price})
	assert.Equal(t, errors.ErrCodeConflict, appErrCode(t, err))
}

func TestHasConfirmedOverlapQuery(t *testing.T) {
	db := newTestDB(t)
	dealer, renter := seedParties(t, db)
	car := seedCar(t, db, dealer.ID)

	confirmed := models.Booking{
		RenterID:   renter.ID,
		DealerID:   dealer.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(5),
		ReturnDate: futureDay(10),
		Status:     constants.BookingStatusConfirmed,
	}
	require.NoError(t, db.Create(&confirmed).Error)

	cancelledBooking := models.Booking{
		RenterID:   renter.ID,
		DealerID:   dealer.ID,
		CarID:      car.ID,
		PickUpDate: futureDay(12),
		ReturnDate: futureDay(15),
		Status:     constants.BookingStatusCancelled,
	}
	require.NoError(t, db.Create(&cancelledBooking).Error)

	cases := []struct {
		name      string
		pickup    time.Time
		ret       time.Time
		excludeID uint
		want      bool
	}{
		{"request straddles start", futureDay(3), futureDay(6), 0, true},
		{"request straddles end", futureDay(9), futureDay(12), 0, true},
		{"request inside booking", futureDay(6), futureDay(8), 0, true},
		{"booking inside request", futureDay(4), futureDay(11), 0, true},
		{"touching return boundary", futureDay(10), futureDay(12), 0, true},
		{"touching pickup boundary", futureDay(3), futureDay(5), 0, true},
		{"before booking", futureDay(2), futureDay(4), 0, false},
		{"after booking", futureDay(11), futureDay(14), 0, false},
		{"cancelled rows never block", futureDay(13), futureDay(14), 0, false},
		{"excluded booking ignored", futureDay(6), futureDay(8), confirmed.ID, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := HasConfirmedOverlap(db, car.ID, tc.pickup, tc.ret, tc.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReconcileCarStatuses(t *testing.T) {
	db := newTestDB(t)
	dealer, renter := seedParties(t, db)

	stale := seedCar(t, db, dealer.ID)
	held := seedCar(t, db, dealer.ID)
	require.NoError(t, db.Model(&models.Car{}).
		Where("id IN ?", []uint{stale.ID, held.ID}).
		Update("status", constants.CarStatusRented).Error)

	past := models.Booking{
		RenterID:   renter.ID,
		DealerID:   dealer.ID,
		CarID:      stale.ID,
		PickUpDate: futureDay(-10),
		ReturnDate: futureDay(-5),
		Status:     constants.BookingStatusConfirmed,
	}
	require.NoError(t, db.Create(&past).Error)

	upcoming := models.Booking{
		RenterID:   renter.ID,
		DealerID:   dealer.ID,
		CarID:      held.ID,
		PickUpDate: futureDay(3),
		ReturnDate: futureDay(6),
		Status:     constants.BookingStatusConfirmed,
	}
	require.NoError(t, db.Create(&upcoming).Error)

	released, err := ReconcileCarStatuses()
	require.NoError(t, err)
	assert.Equal(t, 1, released)

	assert.Equal(t, constants.CarStatusAvailable, loadCar(t, db, stale.ID).Status)
	assert.Equal(t, constants.CarStatusRented, loadCar(t, db, held.ID).Status)
}
