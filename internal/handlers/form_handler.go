package handlers

import (
	"log/slog"
	"net/http"

	"github.com/formpilot/formbuilder-service/internal/repositories"
	"github.com/formpilot/formbuilder-service/internal/services"
	"github.com/gin-gonic/gin"
)

type FormHandler struct {
	BaseHandler
	formService services.FormService
}

func NewFormHandler(formService services.FormService, logger *slog.Logger) *FormHandler {
	return &FormHandler{
		BaseHandler: NewBaseHandler(logger),
		formService: formService,
	}
}

// CreateForm creates a new form
// @Summary Create form
// @Description Creates a new form with its ordered questions
// @Tags forms
// @Accept json
// @Produce json
// @Param form body services.CreateFormRequest true "Form data"
// @Success 201 {object} models.Form
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /forms [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	var req services.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	form, err := h.formService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

// GetForm retrieves a form by ID
// @Summary Get form
// @Description Retrieves a form with its questions in authoring order
// @Tags forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} models.Form
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /forms/{id} [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	form, err := h.formService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// ListForms lists forms
// @Summary List forms
// @Description Lists forms with pagination and sorting
// @Tags forms
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Param sort_by query string false "Sort field (created_at, title)"
// @Param sort_order query string false "Sort order (asc, desc)"
// @Success 200 {object} services.FormListResponse
// @Failure 500 {object} ErrorResponse
// @Router /forms [get]
func (h *FormHandler) ListForms(c *gin.Context) {
	filters := repositories.FormFilters{
		Limit:     parseIntQuery(c, "limit", 20),
		Offset:    parseIntQuery(c, "offset", 0),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	list, err := h.formService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
