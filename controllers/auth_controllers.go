package controllers

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"rentaj/config"
	"rentaj/dto"
	"rentaj/models"
	"rentaj/response"
	"rentaj/services"
	"rentaj/validator"
)

func convertToUserLoginResponse(user models.User) dto.UserLoginResponse {
	return dto.UserLoginResponse{
		UserID:       user.ID,
		UserName:     user.FullName,
		UserEmail:    user.Email,
		UserVerified: user.IsVerified,
		UserPhone:    user.PhoneNumber,
		UserRole:     user.Role,
		UserLocation: user.Location,
		UserAvatar:   user.Avatar,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input.Email = strings.ToLower(input.Email)

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		response.BadRequest(c, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		response.BadRequest(c, "Invalid email or password")
		return
	}

	userInfo := services.UserInfo{
		UserId: user.ID,
		Role:   user.Role,
	}

	accessToken, err := services.GenerateToken(userInfo, 60*24*3)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"user_info":   convertToUserLoginResponse(user),
		"accessToken": accessToken,
	})
}

func Logout(c *gin.Context) {
	cookies := c.Request.Cookies()
	for _, cookie := range cookies {
		c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, cookie.HttpOnly)
	}

	response.Success(c, nil)
}

func VerifyEmail(c *gin.Context) {
	code := c.Query("token")
	if code == "" {
		response.BadRequest(c, "Verification code is required")
		return
	}

	var user models.User
	result := config.DB.Where("code = ?", code).First(&user)
	if result.Error != nil {
		response.BadRequest(c, "Email verification failed")
		return
	}

	// Codes expire after 5 minutes
	if time.Since(user.CodeCreatedAt) > 5*time.Minute {
		response.BadRequest(c, "Verification code expired, please request a new one")
		return
	}

	user.IsVerified = true
	user.Code = ""
	config.DB.Save(&user)

	response.Success(c, convertToUserLoginResponse(user))
}

func RegisterUser(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	candidate := models.User{
		FullName:    input.FullName,
		Email:       strings.ToLower(input.Email),
		Password:    input.Password,
		PhoneNumber: input.PhoneNumber,
		Location:    input.Location,
		Role:        input.Role,
	}

	if err := validator.ValidateUser(&candidate); err != nil {
		respondWithAppError(c, err)
		return
	}

	user, err := services.CreateUser(candidate)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, convertToUserLoginResponse(user))
}

func VerifyCode(c *gin.Context) {
	var input dto.VerifyCodeInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var user models.User
	result := config.DB.Where("email = ?", input.Email).First(&user)
	if result.Error != nil {
		response.BadRequest(c, "No user found with this email")
		return
	}

	if user.Code != input.Code {
		response.BadRequest(c, "Verification code is not valid")
		return
	}

	if time.Since(user.CodeCreatedAt) > 5*time.Minute {
		response.BadRequest(c, "Verification code expired, please request a new one")
		return
	}

	user.Code = ""
	if !user.IsVerified {
		user.IsVerified = true
	}

	config.DB.Save(&user)

	response.Success(c, nil)
}

// GetProfile returns the authenticated user's own account.
func GetProfile(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, currentUserID).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, convertToUserLoginResponse(user))
}

// AuthGoogle signs a user in with a Google ID token, creating the account on
// first sign-in.
func AuthGoogle(c *gin.Context) {
	var token struct {
		TokenId string `json:"tokenId"`
	}

	if err := c.ShouldBindJSON(&token); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payload, err := verifyGoogleIDToken(token.TokenId)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	googleUser := dto.GoogleUser{
		Name:          payload.Claims["name"].(string),
		Email:         payload.Claims["email"].(string),
		VerifiedEmail: payload.Claims["email_verified"].(bool),
		Picture:       payload.Claims["picture"].(string),
	}

	if !googleUser.VerifiedEmail {
		response.BadRequest(c, "Email has not been verified")
		return
	}

	var user models.User
	result := config.DB.Where("email = ?", googleUser.Email).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		user, err = services.CreateGoogleUser(googleUser.Name, googleUser.Email, googleUser.Picture)
		if err != nil {
			response.ServerError(c)
			return
		}
	} else if result.Error != nil {
		response.ServerError(c)
		return
	}

	userInfo := services.UserInfo{
		UserId: user.ID,
		Role:   user.Role,
	}

	accessToken, err := services.GenerateToken(userInfo, 60*24*3)
	if err != nil {
		log.Println("Error generating access token:", err)
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"user_info":   convertToUserLoginResponse(user),
		"accessToken": accessToken,
	})
}

func verifyGoogleIDToken(tokenId string) (*idtoken.Payload, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	payload, err := idtoken.Validate(context.Background(), tokenId, clientID)
	if err != nil {
		return nil, err
	}
	return payload, nil
}
