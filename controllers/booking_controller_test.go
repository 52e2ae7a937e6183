package controllers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, recorder
}

func TestCreateBookingRejectsBadDates(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"return before pickup", `{"carId":1,"pickUpDate":"2026-09-15","returnDate":"2026-09-10","totalPrice":100}`},
		{"return equal to pickup", `{"carId":1,"pickUpDate":"2026-09-15","returnDate":"2026-09-15","totalPrice":100}`},
		{"malformed pickup date", `{"carId":1,"pickUpDate":"15.09.2026","returnDate":"2026-09-20","totalPrice":100}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, recorder := newRequestContext(t, "POST", "/api/v1/bookings", []byte(tc.body))
			c.Set("userID", uint(1))

			CreateBooking(c)

			assert.Equal(t, 400, recorder.Code)
		})
	}
}

func TestUpdateBookingRejectsReversedDates(t *testing.T) {
	body := []byte(`{"pickUpDate":"2026-09-15","returnDate":"2026-09-10"}`)
	c, recorder := newRequestContext(t, "PUT", "/api/v1/bookings/1", body)
	c.Set("userID", uint(1))
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	UpdateBooking(c)

	require.Equal(t, 400, recorder.Code)
}
