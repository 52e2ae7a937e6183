package controllers

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentaj/config"
	"rentaj/constants"
	"rentaj/models"
	"rentaj/response"
)

func newControllerTestDB(t *testing.T) *gorm.DB {
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

func TestGetCarBookingDates(t *testing.T) {
	db := newControllerTestDB(t)

	dealer := models.User{FullName: "Dealer", Email: "dealer@example.com", Role: constants.RoleDealer}
	require.NoError(t, db.Create(&dealer).Error)
	renter := models.User{FullName: "Renter", Email: "renter@example.com", Role: constants.RoleRenter}
	require.NoError(t, db.Create(&renter).Error)

	car := models.Car{DealerID: dealer.ID, Title: "VW Golf 8", Make: "Volkswagen", Model: "Golf", PricePerDay: 45}
	require.NoError(t, db.Create(&car).Error)

	day := func(s string) time.Time {
		parsed, err := time.Parse(constants.DateLayout, s)
		require.NoError(t, err)
		return parsed
	}

	confirmed := models.Booking{
		RenterID: renter.ID, DealerID: dealer.ID, CarID: car.ID,
		PickUpDate: day("2030-09-10"), ReturnDate: day("2030-09-12"),
		Status: constants.BookingStatusConfirmed,
	}
	require.NoError(t, db.Create(&confirmed).Error)

	cancelled := models.Booking{
		RenterID: renter.ID, DealerID: dealer.ID, CarID: car.ID,
		PickUpDate: day("2030-09-20"), ReturnDate: day("2030-09-22"),
		Status: constants.BookingStatusCancelled,
	}
	require.NoError(t, db.Create(&cancelled).Error)

	target := fmt.Sprintf("/api/v1/cars/checkCar?id=%d&date=09/2030", car.ID)
	c, recorder := newRequestContext(t, "GET", target, nil)

	GetCarBookingDates(c)

	require.Equal(t, 200, recorder.Code)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	days, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, days, 30)

	bookedByDate := make(map[string]bool, len(days))
	for _, entry := range days {
		m, ok := entry.(map[string]interface{})
		require.True(t, ok)
		bookedByDate[m["date"].(string)] = m["booked"].(bool)
	}

	assert.False(t, bookedByDate["2030-09-09"])
	assert.True(t, bookedByDate["2030-09-10"])
	assert.True(t, bookedByDate["2030-09-11"])
	assert.True(t, bookedByDate["2030-09-12"])
	assert.False(t, bookedByDate["2030-09-13"])

	// Cancelled bookings never block the calendar.
	assert.False(t, bookedByDate["2030-09-21"])
}
