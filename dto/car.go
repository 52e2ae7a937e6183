package dto

import "time"

// CreateCarRequest is the payload a dealer sends to list a car.
type CreateCarRequest struct {
	Title             string     `json:"title" binding:"required"`
	Make              string     `json:"make" binding:"required"`
	Model             string     `json:"model" binding:"required"`
	Year              int        `json:"year" binding:"required"`
	CarType           string     `json:"carType" binding:"required"`
	Transmission      string     `json:"transmission" binding:"required"`
	FuelType          string     `json:"fuelType" binding:"required"`
	Price             float64    `json:"price"`
	PricePerDay       float64    `json:"pricePerDay" binding:"required"`
	Mileage           *int       `json:"mileage"`
	Condition         string     `json:"condition"`
	FirstRegistration *time.Time `json:"firstRegistration"`
	Performance       string     `json:"performance"`
	EngineCapacity    string     `json:"engineCapacity"`
	Cylinders         *int       `json:"cylinders"`
	EmissionClass     string     `json:"emissionClass"`
	DriveType         string     `json:"driveType" binding:"required"`
	Seats             int        `json:"seats"`
	Doors             int        `json:"doors"`
	Weight            *int       `json:"weight"`
	TowingCapacity    *int       `json:"towingCapacity"`
	Color             string     `json:"color"`
	Interior          string     `json:"interior"`
	FuelConsumption   string     `json:"fuelConsumption"`
	ValidHUUntil      *time.Time `json:"validHUUntil"`
	AvailableFrom     string     `json:"availableFrom" binding:"required"`
	AvailableTo       *string    `json:"availableTo"`
	PickupLocation    string     `json:"pickupLocation" binding:"required"`

	ComfortFeatures          []string `json:"comfortFeatures"`
	SafetyFeatures           []string `json:"safetyFeatures"`
	TechnologyFeatures       []string `json:"technologyFeatures"`
	LightingFeatures         []string `json:"lightingFeatures"`
	DriverAssistanceFeatures []string `json:"driverAssistanceFeatures"`
	OtherFeatures            []string `json:"otherFeatures"`
}

// UpdateCarRequest carries optional field changes for an existing listing.
type UpdateCarRequest struct {
	Title           *string  `json:"title"`
	Price           *float64 `json:"price"`
	PricePerDay     *float64 `json:"pricePerDay"`
	Mileage         *int     `json:"mileage"`
	Condition       *string  `json:"condition"`
	Status          *string  `json:"status"`
	Performance     *string  `json:"performance"`
	Color           *string  `json:"color"`
	Interior        *string  `json:"interior"`
	FuelConsumption *string  `json:"fuelConsumption"`
	AvailableFrom   *string  `json:"availableFrom"`
	AvailableTo     *string  `json:"availableTo"`
	PickupLocation  *string  `json:"pickupLocation"`

	ComfortFeatures          *[]string `json:"comfortFeatures"`
	SafetyFeatures           *[]string `json:"safetyFeatures"`
	TechnologyFeatures       *[]string `json:"technologyFeatures"`
	LightingFeatures         *[]string `json:"lightingFeatures"`
	DriverAssistanceFeatures *[]string `json:"driverAssistanceFeatures"`
	OtherFeatures            *[]string `json:"otherFeatures"`
}

// CarImageResponse is one image of a listing.
type CarImageResponse struct {
	ID        uint   `json:"id"`
	URL       string `json:"url"`
	PublicID  string `json:"publicId"`
	Order     int    `json:"order"`
	IsPrimary bool   `json:"isPrimary"`
	AltText   string `json:"altText"`
}

// CarSummaryResponse is the listing view used on collection endpoints.
type CarSummaryResponse struct {
	ID             uint     `json:"id"`
	DealerID       uint     `json:"dealerId"`
	DealerName     string   `json:"dealerName"`
	Title          string   `json:"title"`
	Make           string   `json:"make"`
	Model          string   `json:"model"`
	Year           int      `json:"year"`
	CarType        string   `json:"carType"`
	Transmission   string   `json:"transmission"`
	FuelType       string   `json:"fuelType"`
	PricePerDay    float64  `json:"pricePerDay"`
	Status         string   `json:"status"`
	PickupLocation string   `json:"pickupLocation"`
	Image          string   `json:"image"`
	Score          int      `json:"score,omitempty"`
	Features       []string `json:"features,omitempty"`
}

// CarDetailResponse is the full listing view plus its confirmed booking ranges.
type CarDetailResponse struct {
	Car         interface{}        `json:"car"`
	Images      []CarImageResponse `json:"images"`
	BookedDates []BookedInterval   `json:"bookedDates"`
}

// SearchCarsRequest is the free-text search payload.
type SearchCarsRequest struct {
	Query string `json:"query" form:"query" binding:"required"`
}
