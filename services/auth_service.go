package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/smtp"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rentaj/config"
	"rentaj/constants"
	"rentaj/models"
)

func generateVerificationCode() (string, error) {
	code := ""

	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += n.String()
	}

	return code, nil
}

func smtpConfig() (from string, password string, host string, port string) {
	return config.GetEnv("SMTP_FROM"), config.GetEnv("SMTP_PASSWORD"),
		config.GetEnv("SMTP_HOST"), config.GetEnv("SMTP_PORT")
}

func sendVerificationEmail(email string, token string) error {
	from, password, host, port := smtpConfig()
	to := []string{email}
	subject := "Subject: Verify your Rentaj account\n"
	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<title>Verify your account</title>
		</head>
		<body>
			<p>Hello %s,</p>
			<p>Your one-time verification code is: <strong>%s</strong></p>
			<p>If you did not request this code you can safely ignore this email.</p>
			<p>
				<a href="%s/verify-email?token=%s" style="display: inline-block; padding: 10px 20px; background-color: #1a73e8; color: white; text-decoration: none; border-radius: 5px;">
					Verify email
				</a>
			</p>
			<p>Thanks,<br>The Rentaj team</p>
		</body>
		</html>
	`, email, token, config.GetEnv("FRONTEND_URL"), token)

	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n" + subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, host)

	return smtp.SendMail(host+":"+port, auth, from, to, msg)
}

// SendBookingEmail confirms a new booking to the renter.
func SendBookingEmail(email string, bookingID uint, totalPrice float64, pickUpDate, returnDate time.Time) error {
	from, password, host, port := smtpConfig()
	to := []string{email}
	subject := "Subject: Your booking is confirmed\n"

	body := fmt.Sprintf(`<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<title>Booking confirmed</title>
	</head>
	<body>
		<p>Hello,</p>
		<p>Your booking has been confirmed.</p>
		<ul>
			<li>Booking number: <strong>%d</strong></li>
			<li>Pickup date: <strong>%s</strong></li>
			<li>Return date: <strong>%s</strong></li>
			<li>Total price: <strong>%.2f EUR</strong></li>
		</ul>
		<p>We will keep you posted about any change to your booking.</p>
		<p>Thanks,<br>The Rentaj team</p>
	</body>
	</html>`, bookingID, pickUpDate.Format(constants.DateLayout), returnDate.Format(constants.DateLayout), totalPrice)

	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n" + subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, host)

	return smtp.SendMail(host+":"+port, auth, from, to, msg)
}

// SendCancellationEmail notifies the renter that a booking was cancelled.
func SendCancellationEmail(email string, bookingID uint) error {
	from, password, host, port := smtpConfig()
	to := []string{email}
	subject := "Subject: Your booking was cancelled\n"

	body := fmt.Sprintf(`<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<title>Booking cancelled</title>
	</head>
	<body>
		<p>Hello,</p>
		<p>Booking <strong>%d</strong> has been cancelled. The car is free for new bookings again.</p>
		<p>Thanks,<br>The Rentaj team</p>
	</body>
	</html>`, bookingID)

	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n" + subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, host)

	return smtp.SendMail(host+":"+port, auth, from, to, msg)
}

func GetUserByEmail(email string) (models.User, error) {
	var user models.User
	result := config.DB.Where("email = ?", email).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return user, fmt.Errorf("no user found with email %s", email)
	}

	if result.Error != nil {
		return user, result.Error
	}

	return user, nil
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CreateUser registers a renter or dealer account and mails the verification code.
func CreateUser(input models.User) (models.User, error) {
	if input.Email == "" || input.Password == "" {
		return models.User{}, errors.New("email and password are required")
	}
	if input.Role != constants.RoleRenter && input.Role != constants.RoleDealer {
		return models.User{}, errors.New("role must be renter or dealer")
	}

	existing, err := GetUserByEmail(input.Email)
	if err == nil {
		return models.User{}, fmt.Errorf("email %s is already in use", existing.Email)
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	token, err := generateVerificationCode()
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		FullName:      input.FullName,
		Email:         input.Email,
		Password:      hashedPassword,
		PhoneNumber:   input.PhoneNumber,
		Location:      input.Location,
		Role:          input.Role,
		IsVerified:    false,
		Code:          token,
		CodeCreatedAt: time.Now(),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	result := config.DB.Create(&user)
	if result.Error != nil {
		return user, result.Error
	}

	if err := sendVerificationEmail(input.Email, token); err != nil {
		return user, err
	}

	return user, nil
}

// CreateGoogleUser provisions a verified renter account from a Google ID token payload.
func CreateGoogleUser(name, email, avatar string) (models.User, error) {
	existing, err := GetUserByEmail(email)
	if err == nil {
		return models.User{}, fmt.Errorf("email %s is already in use", existing.Email)
	}

	user := models.User{
		FullName:   name,
		Email:      email,
		Password:   "",
		Avatar:     avatar,
		IsVerified: true,
		Role:       constants.RoleRenter,
	}

	result := config.DB.Create(&user)
	if result.Error != nil {
		return user, result.Error
	}

	return user, nil
}
