package handlers

import (
	"log/slog"
	"net/http"

	"github.com/formpilot/formbuilder-service/internal/assets"
	"github.com/gin-gonic/gin"
)

// Image uploads are bounded; form and question images are thumbnails, not
// originals.
const maxAssetSize = 10 << 20

type AssetHandler struct {
	BaseHandler
	store assets.Store
}

func NewAssetHandler(store assets.Store, logger *slog.Logger) *AssetHandler {
	return &AssetHandler{
		BaseHandler: NewBaseHandler(logger),
		store:       store,
	}
}

// UploadAsset uploads an image for a form header or question slot
// @Summary Upload asset
// @Description Stores the uploaded image under the given slot and returns its URL. Re-uploading to the same slot replaces the image at the same URL.
// @Tags assets
// @Accept multipart/form-data
// @Produce json
// @Param slot formData string true "Slot identity (form header or question)"
// @Param file formData file true "Image file"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /assets [post]
func (h *AssetHandler) UploadAsset(c *gin.Context) {
	slot := c.PostForm("slot")
	if slot == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid slot",
			Details: "slot form field is required",
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid file",
			Details: err.Error(),
		})
		return
	}
	if fileHeader.Size > maxAssetSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "File too large",
			Details: "asset uploads are limited to 10 MiB",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to read upload", err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.store.Upload(c.Request.Context(), slot, file, fileHeader.Size, contentType)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to store asset", err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Asset uploaded", gin.H{
		"slot": slot,
		"url":  url,
	})
}
