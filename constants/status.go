package constants

// User roles
const (
	RoleRenter = 0
	RoleDealer = 1
)

// Car status
const (
	CarStatusAvailable = "AVAILABLE"
	CarStatusRented    = "RENTED"
)

// Car condition
const (
	CarConditionNew  = "NEW"
	CarConditionUsed = "USED"
)

// Booking status
const (
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// Date layout used on the wire for pickup/return dates
const DateLayout = "2006-01-02"
