package handlers

import (
	"log/slog"
	"net/http"

	"github.com/formpilot/formbuilder-service/internal/repositories"
	"github.com/formpilot/formbuilder-service/internal/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ResponseHandler struct {
	BaseHandler
	responseService services.ResponseService
	exportService   services.ExportService
}

func NewResponseHandler(responseService services.ResponseService, exportService services.ExportService, logger *slog.Logger) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler:     NewBaseHandler(logger),
		responseService: responseService,
		exportService:   exportService,
	}
}

// SubmitResponse submits a response against a form
// @Summary Submit response
// @Description Reconciles the submitted answers against the form and stores the result. With strict=1, a stale question reference or a payload whose variant disagrees with the question's declared type rejects the submission with 422; otherwise such answers are dropped and reported.
// @Tags responses
// @Accept json
// @Produce json
// @Param strict query bool false "Fail on stale or mismatched answers"
// @Param response body services.SubmitResponseRequest true "Response data"
// @Success 201 {object} services.SubmitResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /responses [post]
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	var req services.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	strict := c.Query("strict") == "1" || c.Query("strict") == "true"

	result, err := h.responseService.Submit(c.Request.Context(), &req, strict)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetResponse retrieves a stored response by ID
// @Summary Get response
// @Tags responses
// @Produce json
// @Param id path string true "Response ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /responses/{id} [get]
func (h *ResponseHandler) GetResponse(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	response, err := h.responseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListResponsesByForm lists the responses submitted against a form
// @Summary List responses for a form
// @Tags responses
// @Produce json
// @Param id path string true "Form ID"
// @Param submitted_by query string false "Filter by submitter"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} services.ResponseListResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /forms/{id}/responses [get]
func (h *ResponseHandler) ListResponsesByForm(c *gin.Context) {
	formID := ParseStringIDParam(c, "id")
	if formID == "" {
		return
	}

	filters := repositories.ResponseFilters{
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if submittedBy := c.Query("submitted_by"); submittedBy != "" {
		filters.SubmittedBy = &submittedBy
	}

	list, err := h.responseService.ListByForm(c.Request.Context(), formID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// ExportResponses exports a form's responses as an Excel workbook
// @Summary Export responses
// @Description Renders every response of the form as one spreadsheet row, one column per question in form order
// @Tags responses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Form ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /forms/{id}/responses/export [get]
func (h *ResponseHandler) ExportResponses(c *gin.Context) {
	formID := ParseStringIDParam(c, "id")
	if formID == "" {
		return
	}

	data, filename, err := h.exportService.ExportResponsesToExcel(c.Request.Context(), formID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
