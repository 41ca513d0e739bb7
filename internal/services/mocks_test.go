package services

import (
	"context"

	"github.com/formpilot/formbuilder-service/internal/models"
	"github.com/formpilot/formbuilder-service/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repositories for service tests. Create assigns ids the way the
// store-backed repositories do through their hooks.

type mockFormRepo struct {
	forms map[string]*models.Form
}

func newMockFormRepo() *mockFormRepo {
	return &mockFormRepo{forms: map[string]*models.Form{}}
}

func (m *mockFormRepo) Create(ctx context.Context, form *models.Form) error {
	if form.ID == "" {
		form.ID = uuid.NewString()
	}
	for i := range form.Questions {
		if form.Questions[i].ID == "" {
			form.Questions[i].ID = uuid.NewString()
		}
		form.Questions[i].FormID = form.ID
		form.Questions[i].Position = i
	}
	m.forms[form.ID] = form
	return nil
}

func (m *mockFormRepo) GetByID(ctx context.Context, id string) (*models.Form, error) {
	form, ok := m.forms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return form, nil
}

func (m *mockFormRepo) List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error) {
	forms := make([]*models.Form, 0, len(m.forms))
	for _, form := range m.forms {
		forms = append(forms, form)
	}
	return forms, int64(len(forms)), nil
}

type mockResponseRepo struct {
	responses map[string]*models.Response
	order     []string
}

func newMockResponseRepo() *mockResponseRepo {
	return &mockResponseRepo{responses: map[string]*models.Response{}}
}

func (m *mockResponseRepo) Create(ctx context.Context, response *models.Response) error {
	if response.ID == "" {
		response.ID = uuid.NewString()
	}
	m.responses[response.ID] = response
	m.order = append(m.order, response.ID)
	return nil
}

func (m *mockResponseRepo) GetByID(ctx context.Context, id string) (*models.Response, error) {
	response, ok := m.responses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return response, nil
}

func (m *mockResponseRepo) ListByForm(ctx context.Context, formID string, filters repositories.ResponseFilters) ([]*models.Response, int64, error) {
	var matched []*models.Response
	for _, id := range m.order {
		r := m.responses[id]
		if r.FormID != formID {
			continue
		}
		if filters.SubmittedBy != nil && r.SubmittedBy != *filters.SubmittedBy {
			continue
		}
		matched = append(matched, r)
	}
	return matched, int64(len(matched)), nil
}

func (m *mockResponseRepo) CountByForm(ctx context.Context, formID string) (int64, error) {
	_, total, err := m.ListByForm(ctx, formID, repositories.ResponseFilters{})
	return total, err
}

type mockRepository struct {
	formRepo     *mockFormRepo
	responseRepo *mockResponseRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		formRepo:     newMockFormRepo(),
		responseRepo: newMockResponseRepo(),
	}
}

func (m *mockRepository) Form() repositories.FormRepository         { return m.formRepo }
func (m *mockRepository) Response() repositories.ResponseRepository { return m.responseRepo }
func (m *mockRepository) Ping(ctx context.Context) error            { return nil }
func (m *mockRepository) Close() error                              { return nil }
