package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/formpilot/formbuilder-service/internal/assets"
	"github.com/formpilot/formbuilder-service/internal/models"
	"github.com/formpilot/formbuilder-service/internal/repositories"
	"github.com/formpilot/formbuilder-service/internal/services"
	"github.com/formpilot/formbuilder-service/internal/submission"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Canned services so the tests exercise only the HTTP mapping.

type stubFormService struct {
	form *models.Form
	err  error
}

func (s *stubFormService) Create(ctx context.Context, req *services.CreateFormRequest) (*models.Form, error) {
	return s.form, s.err
}

func (s *stubFormService) GetByID(ctx context.Context, id string) (*models.Form, error) {
	return s.form, s.err
}

func (s *stubFormService) List(ctx context.Context, filters repositories.FormFilters) (*services.FormListResponse, error) {
	return &services.FormListResponse{Forms: []*models.Form{}}, s.err
}

type stubResponseService struct {
	result *services.SubmitResult
	err    error
}

func (s *stubResponseService) Submit(ctx context.Context, req *services.SubmitResponseRequest, strict bool) (*services.SubmitResult, error) {
	return s.result, s.err
}

func (s *stubResponseService) GetByID(ctx context.Context, id string) (*models.Response, error) {
	return nil, s.err
}

func (s *stubResponseService) ListByForm(ctx context.Context, formID string, filters repositories.ResponseFilters) (*services.ResponseListResponse, error) {
	return &services.ResponseListResponse{}, s.err
}

func (s *stubResponseService) CountByForm(ctx context.Context, formID string) (int64, error) {
	return 0, s.err
}

type stubExportService struct{}

func (stubExportService) ExportResponsesToExcel(ctx context.Context, formID string) ([]byte, string, error) {
	return []byte("xlsx"), "responses-" + formID + ".xlsx", nil
}

type stubRepository struct{}

func (stubRepository) Form() repositories.FormRepository         { return nil }
func (stubRepository) Response() repositories.ResponseRepository { return nil }
func (stubRepository) Ping(ctx context.Context) error            { return nil }
func (stubRepository) Close() error                              { return nil }

func newTestRouter(t *testing.T, forms services.FormService, responses services.ResponseService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	hm := NewHandlerManager(forms, responses, stubExportService{}, assets.DisabledStore{}, stubRepository{}, logger)
	hm.SetupRoutes(router)
	return router
}

func TestCreateForm_InvalidJSON(t *testing.T) {
	router := newTestRouter(t, &stubFormService{}, &stubResponseService{})

	req := httptest.NewRequest(http.MethodPost, "/api/forms", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateForm_ValidationFailure(t *testing.T) {
	forms := &stubFormService{err: services.ValidationErrors{
		{Field: "questions[0].categories", Message: "must contain at least one category"},
	}}
	router := newTestRouter(t, forms, &stubResponseService{})

	req := httptest.NewRequest(http.MethodPost, "/api/forms", strings.NewReader(`{"title":"x","questions":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "questions[0].categories")
}

func TestGetForm_NotFound(t *testing.T) {
	router := newTestRouter(t, &stubFormService{err: services.ErrFormNotFound}, &stubResponseService{})

	req := httptest.NewRequest(http.MethodGet, "/api/forms/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitResponse_StrictRejection(t *testing.T) {
	responses := &stubResponseService{err: &submission.ReferenceError{FormID: "f-1", QuestionID: "q-9"}}
	router := newTestRouter(t, &stubFormService{}, responses)

	body := `{"formId":"f-1","answers":[{"questionId":"q-9","questionType":"Cloze","clozeAnswers":["x"]}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/responses?strict=1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "q-9")
}

func TestSubmitResponse_Created(t *testing.T) {
	responses := &stubResponseService{result: &services.SubmitResult{
		Response: &models.Response{ID: "r-1", FormID: "f-1"},
		Dropped:  []string{"q-3"},
	}}
	router := newTestRouter(t, &stubFormService{}, responses)

	body := `{"formId":"f-1","answers":[{"questionId":"q-1","questionType":"Cloze","clozeAnswers":["x"]}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/responses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"r-1"`)
	assert.Contains(t, rec.Body.String(), `"q-3"`)
}

func TestExportResponses_Headers(t *testing.T) {
	router := newTestRouter(t, &stubFormService{}, &stubResponseService{})

	req := httptest.NewRequest(http.MethodGet, "/api/forms/f-1/responses/export", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "responses-f-1.xlsx")
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t, &stubFormService{}, &stubResponseService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestUploadAsset_MissingSlot(t *testing.T) {
	router := newTestRouter(t, &stubFormService{}, &stubResponseService{})

	req := httptest.NewRequest(http.MethodPost, "/api/assets", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
