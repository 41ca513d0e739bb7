package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/formpilot/formbuilder-service/internal/cache"
	apperrors "github.com/formpilot/formbuilder-service/internal/errors"
	"github.com/formpilot/formbuilder-service/internal/events"
	"github.com/formpilot/formbuilder-service/internal/models"
	"github.com/formpilot/formbuilder-service/internal/repositories"
	"github.com/formpilot/formbuilder-service/internal/validator"
)

// Forms are immutable once saved, so cached copies never expire early for
// correctness reasons; the TTL only bounds Redis memory.
const formCacheTTL = 30 * time.Minute

// CreateFormRequest mirrors the wire document an authoring client submits.
type CreateFormRequest struct {
	Title       string            `json:"title" validate:"required,min=1"`
	HeaderImage string            `json:"headerImage,omitempty"`
	Questions   []models.Question `json:"questions" validate:"dive"`
}

type FormListResponse struct {
	Forms []*models.Form `json:"forms"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

type FormService interface {
	Create(ctx context.Context, req *CreateFormRequest) (*models.Form, error)
	GetByID(ctx context.Context, id string) (*models.Form, error)
	List(ctx context.Context, filters repositories.FormFilters) (*FormListResponse, error)
}

type formService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewFormService(repo repositories.Repository, cacheService cache.CacheService, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) FormService {
	return &formService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *formService) Create(ctx context.Context, req *CreateFormRequest) (*models.Form, error) {
	s.logger.Info("Creating form", "title", req.Title, "question_count", len(req.Questions))

	form := &models.Form{
		Title:       req.Title,
		HeaderImage: req.HeaderImage,
		Questions:   req.Questions,
	}

	// Struct tags first (required fields), then the variant shape rules:
	// exactly one payload per question, matching its declared type.
	if err := s.validator.ValidateStruct(req); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return nil, ve
		}
		return nil, err
	}
	if err := s.validator.GetQuestionValidator().ValidateForm(form); err != nil {
		return nil, err
	}

	if err := s.repo.Form().Create(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	if err := s.cache.Set(ctx, formCacheKey(form.ID), form, formCacheTTL); err != nil {
		s.logger.Warn("Failed to cache form", "form_id", form.ID, "error", err)
	}

	if err := s.publisher.PublishFormEvent(ctx, events.NewFormCreatedEvent(form)); err != nil {
		// Event delivery is best effort; the form is already persisted.
		s.logger.Warn("Failed to publish form created event", "form_id", form.ID, "error", err)
	}

	s.logger.Info("Form created successfully", "form_id", form.ID)
	return form, nil
}

func (s *formService) GetByID(ctx context.Context, id string) (*models.Form, error) {
	var cached models.Form
	if err := s.cache.Get(ctx, formCacheKey(id), &cached); err == nil {
		return &cached, nil
	}

	form, err := s.repo.Form().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	if err := s.cache.Set(ctx, formCacheKey(id), form, formCacheTTL); err != nil {
		s.logger.Warn("Failed to cache form", "form_id", id, "error", err)
	}

	return form, nil
}

func (s *formService) List(ctx context.Context, filters repositories.FormFilters) (*FormListResponse, error) {
	forms, total, err := s.repo.Form().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}

	return &FormListResponse{
		Forms: forms,
		Total: total,
		Page:  filters.Offset / max(filters.Limit, 1),
		Size:  filters.Limit,
	}, nil
}

func formCacheKey(id string) string {
	return "form:" + id
}
