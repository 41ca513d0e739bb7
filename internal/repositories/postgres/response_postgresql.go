package postgres

import (
	"context"
	"fmt"

	"github.com/formpilot/formbuilder-service/internal/models"
	"github.com/formpilot/formbuilder-service/internal/repositories"
	"gorm.io/gorm"
)

type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

func (r *ResponsePostgreSQL) Create(ctx context.Context, response *models.Response) error {
	if err := r.db.WithContext(ctx).Create(response).Error; err != nil {
		return fmt.Errorf("failed to create response: %w", err)
	}
	return nil
}

func (r *ResponsePostgreSQL) GetByID(ctx context.Context, id string) (*models.Response, error) {
	var response models.Response
	if err := r.db.WithContext(ctx).First(&response, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// ListByForm returns responses in submission order.
func (r *ResponsePostgreSQL) ListByForm(ctx context.Context, formID string, filters repositories.ResponseFilters) ([]*models.Response, int64, error) {
	var responses []*models.Response
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Response{}).Where("form_id = ?", formID)
	if filters.SubmittedBy != nil {
		query = query.Where("submitted_by = ?", *filters.SubmittedBy)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count responses: %w", err)
	}

	query = query.Order("created_at ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&responses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list responses: %w", err)
	}

	return responses, total, nil
}

func (r *ResponsePostgreSQL) CountByForm(ctx context.Context, formID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Response{}).
		Where("form_id = ?", formID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}
