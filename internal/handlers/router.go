package handlers

import (
	"log/slog"
	"net/http"

	"github.com/formpilot/formbuilder-service/internal/assets"
	"github.com/formpilot/formbuilder-service/internal/repositories"
	"github.com/formpilot/formbuilder-service/internal/services"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	formHandler     *FormHandler
	responseHandler *ResponseHandler
	assetHandler    *AssetHandler
	repo            repositories.Repository
}

func NewHandlerManager(
	formService services.FormService,
	responseService services.ResponseService,
	exportService services.ExportService,
	assetStore assets.Store,
	repo repositories.Repository,
	logger *slog.Logger,
) *HandlerManager {
	return &HandlerManager{
		formHandler:     NewFormHandler(formService, logger),
		responseHandler: NewResponseHandler(responseService, exportService, logger),
		assetHandler:    NewAssetHandler(assetStore, logger),
		repo:            repo,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	api := router.Group("/api")
	{
		forms := api.Group("/forms")
		{
			forms.POST("", hm.formHandler.CreateForm)
			forms.GET("", hm.formHandler.ListForms)
			forms.GET("/:id", hm.formHandler.GetForm)
			forms.GET("/:id/responses", hm.responseHandler.ListResponsesByForm)
			forms.GET("/:id/responses/export", hm.responseHandler.ExportResponses)
		}

		responses := api.Group("/responses")
		{
			responses.POST("", hm.responseHandler.SubmitResponse)
			responses.GET("/:id", hm.responseHandler.GetResponse)
		}

		api.POST("/assets", hm.assetHandler.UploadAsset)
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "formbuilder-service",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "formbuilder-service",
	})
}
