package routes

import (
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"rentaj/constants"
	"rentaj/controllers"
	middlewares "rentaj/middleware"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary, m *melody.Melody) {

	controllers.SetBroadcaster(m)

	v1 := router.Group("/api/v1")
	v1.Use(middlewares.SessionMiddleware())

	v1.POST("/auth/register", controllers.RegisterUser)
	v1.POST("/auth/login", controllers.Login)
	v1.DELETE("/auth/logout", controllers.Logout)
	v1.POST("/auth/google", controllers.AuthGoogle)
	v1.GET("/verify-email", controllers.VerifyEmail)
	v1.POST("/verifyCode", controllers.VerifyCode)
	v1.GET("/profile", middlewares.AuthMiddleware(), controllers.GetProfile)

	v1.GET("/cars", controllers.GetAllCars)
	v1.GET("/cars/search", controllers.SearchCars)
	v1.GET("/cars/:id", controllers.GetCarDetail)
	v1.GET("/checkCar", controllers.GetCarBookingDates)
	v1.POST("/cars", middlewares.AuthMiddleware(constants.RoleDealer), controllers.CreateCar)
	v1.PUT("/cars/:id", middlewares.AuthMiddleware(constants.RoleDealer), controllers.UpdateCar)
	v1.DELETE("/cars/:id", middlewares.AuthMiddleware(constants.RoleDealer), controllers.DeleteCar)

	v1.GET("/bookings", middlewares.AuthMiddleware(), controllers.GetBookings)
	v1.GET("/bookings/:id", middlewares.AuthMiddleware(), controllers.GetBookingDetail)
	v1.POST("/bookings", middlewares.AuthMiddleware(constants.RoleRenter), controllers.CreateBooking)
	v1.PUT("/bookings/:id", middlewares.AuthMiddleware(), controllers.UpdateBooking)
	v1.DELETE("/bookings/:id", middlewares.AuthMiddleware(), controllers.CancelBooking)

	v1.POST("/img/multi-upload", middlewares.AuthMiddleware(constants.RoleDealer), controllers.UploadCarImages)
	v1.DELETE("/img", middlewares.AuthMiddleware(constants.RoleDealer), controllers.DeleteCarImage)
	v1.POST("/img/avatar", middlewares.AuthMiddleware(), controllers.UploadAvatar)
}
