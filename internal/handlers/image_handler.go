package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/savvy/internal/dtos"
	"github.com/justsurfingit/savvy/internal/services"
	"go.uber.org/zap"
)

type ImageHandler struct {
	ImageService *services.ImageService
	Logger       *zap.Logger
}

func NewImageHandler(images *services.ImageService, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{ImageService: images, Logger: logger}
}

// UploadImage is the POST /images/ endpoint
func (h *ImageHandler) UploadImage(c *gin.Context) {
	var req dtos.ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, "Missing image_data")
		return
	}
	asset, err := h.ImageService.StoreImage(c.Request.Context(), req.ImageData)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewAssetResponse(asset))
}
