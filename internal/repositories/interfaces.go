package repositories

import (
	"context"
	"errors"

	"github.com/formpilot/formbuilder-service/internal/models"
	"gorm.io/gorm"
)

// FormRepository persists authored forms. A form is written once; there is
// no update operation, matching the read-only-after-save lifecycle.
type FormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	GetByID(ctx context.Context, id string) (*models.Form, error)
	List(ctx context.Context, filters FormFilters) ([]*models.Form, int64, error)
}

// ResponseRepository persists submitted responses.
type ResponseRepository interface {
	Create(ctx context.Context, response *models.Response) error
	GetByID(ctx context.Context, id string) (*models.Response, error)
	ListByForm(ctx context.Context, formID string, filters ResponseFilters) ([]*models.Response, int64, error)
	CountByForm(ctx context.Context, formID string) (int64, error)
}

// Repository aggregates the per-aggregate repositories.
type Repository interface {
	Form() FormRepository
	Response() ResponseRepository
	Ping(ctx context.Context) error
	Close() error
}

// ===== SHARED FILTER STRUCTS =====

type FormFilters struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "created_at", "title"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type ResponseFilters struct {
	SubmittedBy *string `json:"submitted_by"`
	Limit       int     `json:"limit"`
	Offset      int     `json:"offset"`
}

// IsNotFoundError reports whether err is the store's not-found signal.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
