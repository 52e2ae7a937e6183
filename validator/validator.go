package validator

import (
	"regexp"
	"time"

	"rentaj/constants"
	"rentaj/errors"
	"rentaj/models"
)

// ValidateUser checks a registration payload.
func ValidateUser(user *models.User) error {
	if user.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email is required", nil)
	}

	if !isValidEmail(user.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email is not valid", nil)
	}

	if user.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Password is required", nil)
	}

	if len(user.Password) < 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "Password must be at least 6 characters", nil)
	}

	if user.PhoneNumber != "" && !isValidPhone(user.PhoneNumber) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Phone number is not valid", nil)
	}

	if user.Role != constants.RoleRenter && user.Role != constants.RoleDealer {
		return errors.NewAppError(errors.ErrCodeInvalidRole, "Role is not valid", nil)
	}

	return nil
}

// ValidateCar checks a car listing before it is created or updated.
func ValidateCar(car *models.Car) error {
	if car.Title == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Title is required", nil)
	}

	if car.Make == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Make is required", nil)
	}

	if car.Model == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Model is required", nil)
	}

	if car.Year < 1900 || car.Year > time.Now().Year()+1 {
		return errors.NewAppError(errors.ErrCodeValidation, "Year is out of range", nil)
	}

	if car.CarType == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Car type is required", nil)
	}

	if car.Transmission == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Transmission is required", nil)
	}

	if car.FuelType == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Fuel type is required", nil)
	}

	if car.DriveType == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Drive type is required", nil)
	}

	if car.Price < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Price must not be negative", nil)
	}

	if car.PricePerDay <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Price per day must be positive", nil)
	}

	if car.AvailableFrom.IsZero() {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Available from date is required", nil)
	}

	if car.AvailableTo != nil && car.AvailableTo.Before(car.AvailableFrom) {
		return errors.NewAppError(errors.ErrCodeValidation, "Available to date must be after available from date", nil)
	}

	if car.PickupLocation == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Pickup location is required", nil)
	}

	if car.Condition != "" && car.Condition != constants.CarConditionNew && car.Condition != constants.CarConditionUsed {
		return errors.NewAppError(errors.ErrCodeValidation, "Condition is not valid", nil)
	}

	return nil
}

// ValidateBookingDates checks the raw date strings of a booking request.
func ValidateBookingDates(pickUpDate, returnDate string) error {
	if pickUpDate == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Pickup date is required", nil)
	}

	if returnDate == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Return date is required", nil)
	}

	pickup, err := time.Parse(constants.DateLayout, pickUpDate)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Pickup date is not a valid date", err)
	}

	ret, err := time.Parse(constants.DateLayout, returnDate)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Return date is not a valid date", err)
	}

	if !ret.After(pickup) {
		return errors.NewAppError(errors.ErrCodeValidation, "Return date must be after pickup date", nil)
	}

	return nil
}

func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func isValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	return phoneRegex.MatchString(phone)
}

// ValidateEmail checks a bare email string.
func ValidateEmail(email string) error {
	if !isValidEmail(email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email is not valid", nil)
	}
	return nil
}

// ValidatePhone checks a bare phone string.
func ValidatePhone(phone string) error {
	if !isValidPhone(phone) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Phone number is not valid", nil)
	}
	return nil
}

// ValidatePassword checks password strength for password changes.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.NewAppError(errors.ErrCodeInvalidPassword, "Password must be at least 6 characters", nil)
	}
	return nil
}
