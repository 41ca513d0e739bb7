package postgres

import (
	"context"

	"github.com/formpilot/formbuilder-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db           *gorm.DB
	formRepo     repositories.FormRepository
	responseRepo repositories.ResponseRepository
}

// NewRepository wires the per-aggregate repositories over one gorm handle.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:           db,
		formRepo:     NewFormPostgreSQL(db),
		responseRepo: NewResponsePostgreSQL(db),
	}
}

func (r *repository) Form() repositories.FormRepository {
	return r.formRepo
}

func (r *repository) Response() repositories.ResponseRepository {
	return r.responseRepo
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
