package postgres

import (
	"context"
	"fmt"

	"github.com/formpilot/formbuilder-service/internal/models"
	"github.com/formpilot/formbuilder-service/internal/repositories"
	"gorm.io/gorm"
)

type FormPostgreSQL struct {
	db *gorm.DB
}

func NewFormPostgreSQL(db *gorm.DB) repositories.FormRepository {
	return &FormPostgreSQL{db: db}
}

// Create persists the form and its questions in one transaction. Ids are
// store-assigned; positions must already follow authoring order.
func (f *FormPostgreSQL) Create(ctx context.Context, form *models.Form) error {
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range form.Questions {
			form.Questions[i].Position = i
		}
		if err := tx.Create(form).Error; err != nil {
			return fmt.Errorf("failed to create form: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a form with its questions in authoring order.
func (f *FormPostgreSQL) GetByID(ctx context.Context, id string) (*models.Form, error) {
	var form models.Form
	err := f.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&form, "id = ?", id).Error

	if err != nil {
		return nil, err
	}

	return &form, nil
}

func (f *FormPostgreSQL) List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error) {
	var forms []*models.Form
	var total int64

	query := f.db.WithContext(ctx).Model(&models.Form{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count forms: %w", err)
	}

	// Sort column is interpolated into the query, so only known columns pass.
	sortBy := filters.SortBy
	switch sortBy {
	case "title", "created_at":
	default:
		sortBy = "created_at"
	}
	sortOrder := filters.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&forms).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list forms: %w", err)
	}

	return forms, total, nil
}
