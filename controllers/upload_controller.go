package controllers

import (
	"log"
	"strconv"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"rentaj/config"
	"rentaj/dto"
	"rentaj/models"
	"rentaj/response"
)

const carImageFolder = "rentaj/cars"

// UploadCarImages uploads one or more images for a dealer's own listing.
func UploadCarImages(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	carID, err := strconv.Atoi(c.PostForm("carId"))
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

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "No files in request")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		response.BadRequest(c, "No files in request")
		return
	}

	nextOrder := len(car.Images)
	var imageResponses []dto.CarImageResponse

	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			response.BadRequest(c, "Failed to open file")
			return
		}

		resp, err := config.Cloudinary.Upload.Upload(config.Ctx, src, uploader.UploadParams{Folder: carImageFolder})
		src.Close()
		if err != nil {
			log.Printf("cloudinary upload failed for car %d: %v", car.ID, err)
			response.ServerError(c)
			return
		}

		image := models.CarImage{
			CarID:     car.ID,
			URL:       resp.SecureURL,
			PublicID:  resp.PublicID,
			Order:     nextOrder,
			IsPrimary: nextOrder == 0,
			AltText:   car.Title,
		}
		if err := config.DB.Create(&image).Error; err != nil {
			response.ServerError(c)
			return
		}
		nextOrder++

		imageResponses = append(imageResponses, dto.CarImageResponse{
			ID:        image.ID,
			URL:       image.URL,
			PublicID:  image.PublicID,
			Order:     image.Order,
			IsPrimary: image.IsPrimary,
			AltText:   image.AltText,
		})
	}

	invalidateCarCache()

	response.Created(c, imageResponses)
}

// DeleteCarImage removes one image from a listing and from Cloudinary.
func DeleteCarImage(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	publicID := c.Query("publicId")
	if publicID == "" {
		response.BadRequest(c, "publicId is required")
		return
	}

	var image models.CarImage
	if err := config.DB.Where("public_id = ?", publicID).First(&image).Error; err != nil {
		response.NotFound(c)
		return
	}

	var car models.Car
	if err := config.DB.First(&car, image.CarID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if car.DealerID != currentUserID {
		response.Forbidden(c)
		return
	}

	if _, err := config.Cloudinary.Upload.Destroy(config.Ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		log.Printf("failed to delete image %s from cloudinary: %v", publicID, err)
		response.ServerError(c)
		return
	}

	if err := config.DB.Delete(&image).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateCarCache()

	response.Success(c, gin.H{"deleted": publicID})
}

// UploadAvatar replaces the authenticated user's avatar image.
func UploadAvatar(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file in request")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "Failed to open file")
		return
	}
	defer src.Close()

	resp, err := config.Cloudinary.Upload.Upload(config.Ctx, src, uploader.UploadParams{Folder: "rentaj/avatars"})
	if err != nil {
		response.ServerError(c)
		return
	}

	if err := config.DB.Model(&models.User{}).
		Where("id = ?", currentUserID).
		Update("avatar", resp.SecureURL).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{"url": resp.SecureURL})
}
