package controllers

import (
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"rentaj/config"
	"rentaj/constants"
	"rentaj/dto"
	"rentaj/models"
	"rentaj/response"
	"rentaj/services"
	"rentaj/validator"
)

func convertToCarSummaryResponse(car models.Car) dto.CarSummaryResponse {
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

	return dto.CarSummaryResponse{
		ID:             car.ID,
		DealerID:       car.DealerID,
		DealerName:     car.DealerName,
		Title:          car.Title,
		Make:           car.Make,
		Model:          car.Model,
		Year:           car.Year,
		CarType:        car.CarType,
		Transmission:   car.Transmission,
		FuelType:       car.FuelType,
		PricePerDay:    car.PricePerDay,
		Status:         car.Status,
		PickupLocation: car.PickupLocation,
		Image:          image,
	}
}

func convertToCarImageResponses(images []models.CarImage) []dto.CarImageResponse {
	imageResponses := make([]dto.CarImageResponse, 0, len(images))
	for _, img := range images {
		imageResponses = append(imageResponses, dto.CarImageResponse{
			ID:        img.ID,
			URL:       img.URL,
			PublicID:  img.PublicID,
			Order:     img.Order,
			IsPrimary: img.IsPrimary,
			AltText:   img.AltText,
		})
	}
	return imageResponses
}

// GetAllCars lists the inventory with optional filters, backed by a redis cache.
func GetAllCars(c *gin.Context) {
	cacheKey := "cars:all"
	rdb, err := config.ConnectRedis()
	if err != nil {
		response.ServerError(c)
		return
	}

	var allCars []models.Car

	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &allCars); err != nil || len(allCars) == 0 {
		if err := config.DB.Model(&models.Car{}).
			Preload("Images").
			Preload("Dealer").
			Find(&allCars).Error; err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, allCars, 10*time.Minute); err != nil {
			log.Printf("failed to cache car list: %v", err)
		}
	}

	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	dealerIDStr := c.Query("dealerId")
	carTypeFilter := c.Query("carType")
	transmissionFilter := c.Query("transmission")
	fuelTypeFilter := c.Query("fuelType")
	makeFilter := c.Query("make")
	modelFilter := c.Query("model")
	statusFilter := c.Query("status")
	locationFilter := c.Query("location")
	minPriceStr := c.Query("minPrice")
	maxPriceStr := c.Query("maxPrice")
	availableFromStr := c.Query("availableFrom")
	availableToStr := c.Query("availableTo")

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

	filteredCars := make([]models.Car, 0)
	for _, car := range allCars {
		if dealerIDStr != "" {
			dealerID, err := strconv.Atoi(dealerIDStr)
			if err == nil && car.DealerID != uint(dealerID) {
				continue
			}
		}
		if carTypeFilter != "" && !strings.EqualFold(car.CarType, carTypeFilter) {
			continue
		}
		if transmissionFilter != "" && !strings.EqualFold(car.Transmission, transmissionFilter) {
			continue
		}
		if fuelTypeFilter != "" && !strings.EqualFold(car.FuelType, fuelTypeFilter) {
			continue
		}
		if makeFilter != "" && !strings.EqualFold(car.Make, makeFilter) {
			continue
		}
		if modelFilter != "" && !strings.Contains(strings.ToLower(car.Model), strings.ToLower(modelFilter)) {
			continue
		}
		if statusFilter != "" && car.Status != statusFilter {
			continue
		}
		if minPriceStr != "" {
			minPrice, err := strconv.ParseFloat(minPriceStr, 64)
			if err == nil && car.PricePerDay < minPrice {
				continue
			}
		}
		if maxPriceStr != "" {
			maxPrice, err := strconv.ParseFloat(maxPriceStr, 64)
			if err == nil && car.PricePerDay > maxPrice {
				continue
			}
		}
		if locationFilter != "" && !strings.Contains(strings.ToLower(car.PickupLocation), strings.ToLower(locationFilter)) {
			continue
		}
		if availableFromStr != "" {
			availableFrom, err := time.Parse(constants.DateLayout, availableFromStr)
			if err != nil {
				response.BadRequest(c, "availableFrom is not a valid date")
				return
			}
			if car.AvailableFrom.After(availableFrom) {
				continue
			}
		}
		if availableToStr != "" {
			availableTo, err := time.Parse(constants.DateLayout, availableToStr)
			if err != nil {
				response.BadRequest(c, "availableTo is not a valid date")
				return
			}
			if car.AvailableTo != nil && car.AvailableTo.Before(availableTo) {
				continue
			}
		}
		filteredCars = append(filteredCars, car)
	}

	totalFiltered := len(filteredCars)

	sort.Slice(filteredCars, func(i, j int) bool {
		return filteredCars[i].UpdatedAt.After(filteredCars[j].UpdatedAt)
	})

	start := page * limit
	end := start + limit
	if start >= totalFiltered {
		filteredCars = []models.Car{}
	} else if end > totalFiltered {
		filteredCars = filteredCars[start:]
	} else {
		filteredCars = filteredCars[start:end]
	}

	carResponses := make([]dto.CarSummaryResponse, 0, len(filteredCars))
	for _, car := range filteredCars {
		carResponses = append(carResponses, convertToCarSummaryResponse(car))
	}

	response.SuccessWithPagination(c, carResponses, page, limit, totalFiltered)
}

// GetCarDetail returns a listing with its images and confirmed booking ranges.
func GetCarDetail(c *gin.Context) {
	carID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid car id")
		return
	}

	var car models.Car
	if err := config.DB.
		Preload("Images").
		Preload("Dealer").
		First(&car, carID).Error; err != nil {
		response.NotFound(c)
		return
	}

	bookings, err := services.GetBookedIntervals(config.DB, car.ID)
	if err != nil {
		response.ServerError(c)
		return
	}

	bookedDates := make([]dto.BookedInterval, 0, len(bookings))
	for _, booking := range bookings {
		bookedDates = append(bookedDates, dto.BookedInterval{
			PickUpDate: booking.PickUpDate.Format(constants.DateLayout),
			ReturnDate: booking.ReturnDate.Format(constants.DateLayout),
		})
	}

	response.Success(c, dto.CarDetailResponse{
		Car:         car,
		Images:      convertToCarImageResponses(car.Images),
		BookedDates: bookedDates,
	})
}

// CreateCar lists a new car for the calling dealer.
func CreateCar(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	var request dto.CreateCarRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	availableFrom, err := time.Parse(constants.DateLayout, request.AvailableFrom)
	if err != nil {
		response.BadRequest(c, "Available from date is not a valid date")
		return
	}

	var availableTo *time.Time
	if request.AvailableTo != nil {
		parsed, err := time.Parse(constants.DateLayout, *request.AvailableTo)
		if err != nil {
			response.BadRequest(c, "Available to date is not a valid date")
			return
		}
		availableTo = &parsed
	}

	var dealer models.User
	if err := config.DB.First(&dealer, currentUserID).Error; err != nil {
		response.Unauthorized(c)
		return
	}

	car := models.Car{
		DealerID:          currentUserID,
		Title:             request.Title,
		Make:              request.Make,
		Model:             request.Model,
		Year:              request.Year,
		CarType:           request.CarType,
		Transmission:      request.Transmission,
		FuelType:          request.FuelType,
		Price:             request.Price,
		PricePerDay:       request.PricePerDay,
		Mileage:           request.Mileage,
		Condition:         request.Condition,
		Status:            constants.CarStatusAvailable,
		FirstRegistration: request.FirstRegistration,
		Performance:       request.Performance,
		EngineCapacity:    request.EngineCapacity,
		Cylinders:         request.Cylinders,
		EmissionClass:     request.EmissionClass,
		DriveType:         request.DriveType,
		Seats:             request.Seats,
		Doors:             request.Doors,
		Weight:            request.Weight,
		TowingCapacity:    request.TowingCapacity,
		Color:             request.Color,
		Interior:          request.Interior,
		FuelConsumption:   request.FuelConsumption,
		ValidHUUntil:      request.ValidHUUntil,
		AvailableFrom:     availableFrom,
		AvailableTo:       availableTo,
		PickupLocation:    request.PickupLocation,
		DealerName:        dealer.FullName,

		ComfortFeatures:          request.ComfortFeatures,
		SafetyFeatures:           request.SafetyFeatures,
		TechnologyFeatures:       request.TechnologyFeatures,
		LightingFeatures:         request.LightingFeatures,
		DriverAssistanceFeatures: request.DriverAssistanceFeatures,
		OtherFeatures:            request.OtherFeatures,
	}

	if car.Condition == "" {
		car.Condition = constants.CarConditionUsed
	}
	if car.Seats == 0 {
		car.Seats = 5
	}
	if car.Doors == 0 {
		car.Doors = 4
	}

	if err := validator.ValidateCar(&car); err != nil {
		respondWithAppError(c, err)
		return
	}

	if err := config.DB.Create(&car).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateCarCache()

	response.Created(c, car)
}

// UpdateCar applies partial changes to a dealer's own listing.
func UpdateCar(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	carID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid car id")
		return
	}

	var request dto.UpdateCarRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var car models.Car
	if err := config.DB.First(&car, carID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if car.DealerID != currentUserID {
		response.Forbidden(c)
		return
	}

	if request.Title != nil {
		car.Title = *request.Title
	}
	if request.Price != nil {
		car.Price = *request.Price
	}
	if request.PricePerDay != nil {
		car.PricePerDay = *request.PricePerDay
	}
	if request.Mileage != nil {
		car.Mileage = request.Mileage
	}
	if request.Condition != nil {
		car.Condition = *request.Condition
	}
	if request.Status != nil {
		car.Status = *request.Status
		if err := car.ValidateStatus(); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}
	if request.Performance != nil {
		car.Performance = *request.Performance
	}
	if request.Color != nil {
		car.Color = *request.Color
	}
	if request.Interior != nil {
		car.Interior = *request.Interior
	}
	if request.FuelConsumption != nil {
		car.FuelConsumption = *request.FuelConsumption
	}
	if request.AvailableFrom != nil {
		parsed, err := time.Parse(constants.DateLayout, *request.AvailableFrom)
		if err != nil {
			response.BadRequest(c, "Available from date is not a valid date")
			return
		}
		car.AvailableFrom = parsed
	}
	if request.AvailableTo != nil {
		parsed, err := time.Parse(constants.DateLayout, *request.AvailableTo)
		if err != nil {
			response.BadRequest(c, "Available to date is not a valid date")
			return
		}
		car.AvailableTo = &parsed
	}
	if request.PickupLocation != nil {
		car.PickupLocation = *request.PickupLocation
	}
	if request.ComfortFeatures != nil {
		car.ComfortFeatures = *request.ComfortFeatures
	}
	if request.SafetyFeatures != nil {
		car.SafetyFeatures = *request.SafetyFeatures
	}
	if request.TechnologyFeatures != nil {
		car.TechnologyFeatures = *request.TechnologyFeatures
	}
	if request.LightingFeatures != nil {
		car.LightingFeatures = *request.LightingFeatures
	}
	if request.DriverAssistanceFeatures != nil {
		car.DriverAssistanceFeatures = *request.DriverAssistanceFeatures
	}
	if request.OtherFeatures != nil {
		car.OtherFeatures = *request.OtherFeatures
	}

	if err := validator.ValidateCar(&car); err != nil {
		respondWithAppError(c, err)
		return
	}

	car.UpdatedAt = time.Now()
	if err := config.DB.Save(&car).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateCarCache()

	response.Success(c, car)
}

// DeleteCar removes a dealer's listing together with its Cloudinary images.
func DeleteCar(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	carID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid car id")
		return
	}

	var car models.Car
	if err := config.DB.Preload("Images").First(&car, carID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if car.DealerID != currentUserID {
		response.Forbidden(c)
		return
	}

	var confirmedCount int64
	if err := config.DB.Model(&models.Booking{}).
		Where("car_id = ? AND status = ?", car.ID, constants.BookingStatusConfirmed).
		Count(&confirmedCount).Error; err != nil {
		response.ServerError(c)
		return
	}
	if confirmedCount > 0 {
		response.Conflict(c, "Car has confirmed bookings and cannot be deleted")
		return
	}

	for _, img := range car.Images {
		if img.PublicID == "" {
			continue
		}
		if _, err := config.Cloudinary.Upload.Destroy(config.Ctx, uploader.DestroyParams{PublicID: img.PublicID}); err != nil {
			log.Printf("failed to delete image %s from cloudinary: %v", img.PublicID, err)
		}
	}

	if err := config.DB.Delete(&car).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateCarCache()

	response.Success(c, gin.H{"deleted": car.ID})
}

// SearchCars runs the fuzzy free-text search over the inventory.
func SearchCars(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.BadRequest(c, "query is required")
		return
	}

	scoredCars, err := services.SearchCars(query)
	if err != nil {
		response.ServerError(c)
		return
	}

	carResponses := make([]dto.CarSummaryResponse, 0, len(scoredCars))
	for _, scored := range scoredCars {
		carResponse := convertToCarSummaryResponse(scored.Car)
		carResponse.Score = scored.Score
		carResponses = append(carResponses, carResponse)
	}

	response.Success(c, carResponses)
}

// GetCarBookingDates returns the day-by-day availability of a car for one month.
func GetCarBookingDates(c *gin.Context) {
	carIDStr := c.DefaultQuery("id", "")
	date := c.DefaultQuery("date", "")

	if carIDStr == "" || date == "" {
		response.BadRequest(c, "id and date are required")
		return
	}

	carID, err := strconv.Atoi(carIDStr)
	if err != nil {
		response.BadRequest(c, "Invalid car id")
		return
	}

	layout := "01/2006"
	parsedDate, err := time.Parse(layout, date)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected mm/yyyy")
		return
	}

	firstDay := time.Date(parsedDate.Year(), parsedDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)

	var allDates []time.Time
	for day := firstDay; day.Before(lastDay.AddDate(0, 0, 1)); day = day.AddDate(0, 0, 1) {
		allDates = append(allDates, day)
	}

	bookings, err := services.GetBookedIntervals(config.DB, uint(carID))
	if err != nil {
		log.Printf("error retrieving bookings for car %d: %v", carID, err)
		response.ServerError(c)
		return
	}

	var dayResponses []map[string]interface{}
	for _, currentDate := range allDates {
		booked := services.ConflictsWithAny(currentDate, currentDate, bookings, 0)

		dayResponses = append(dayResponses, map[string]interface{}{
			"date":   currentDate.Format(constants.DateLayout),
			"booked": booked,
		})
	}

	response.Success(c, dayResponses)
}

func invalidateCarCache() {
	rdb, err := config.ConnectRedis()
	if err != nil {
		return
	}
	if err := services.DeleteKeysByPattern(config.Ctx, rdb, "cars:all*"); err != nil {
		log.Printf("failed to drop car list cache: %v", err)
	}
}
