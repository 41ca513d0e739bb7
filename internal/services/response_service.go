package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/formpilot/formbuilder-service/internal/cloze"
	apperrors "github.com/formpilot/formbuilder-service/internal/errors"
	"github.com/formpilot/formbuilder-service/internal/events"
	"github.com/formpilot/formbuilder-service/internal/models"
	"github.com/formpilot/formbuilder-service/internal/repositories"
	"github.com/formpilot/formbuilder-service/internal/submission"
	"github.com/formpilot/formbuilder-service/internal/validator"
)

// SubmittedAnswer is one wire-level answer in a submission request. The
// declared questionType selects which payload field is meaningful.
type SubmittedAnswer struct {
	QuestionID   string              `json:"questionId" validate:"required"`
	QuestionType models.QuestionType `json:"questionType" validate:"required,question_type"`

	CategorizedItems     []models.CategorizedItem     `json:"categorizedItems,omitempty"`
	ClozeAnswers         []string                     `json:"clozeAnswers,omitempty"`
	ComprehensionAnswers []models.ComprehensionAnswer `json:"comprehensionAnswers,omitempty"`
}

// SubmitResponseRequest mirrors the wire document a respondent client
// submits. An empty answer list is a valid submission; a respondent may
// send back a form without answering anything.
type SubmitResponseRequest struct {
	FormID      string            `json:"formId" validate:"required"`
	SubmittedBy string            `json:"submittedBy,omitempty"`
	Answers     []SubmittedAnswer `json:"answers" validate:"dive"`
}

// SubmitResult carries the stored response plus the ids of any answers that
// were dropped during reconciliation against the form.
type SubmitResult struct {
	Response *models.Response `json:"response"`
	Dropped  []string         `json:"dropped,omitempty"`
}

type ResponseListResponse struct {
	Responses []*models.Response `json:"responses"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Size      int                `json:"size"`
}

type ResponseService interface {
	// Submit reconciles the submitted answers against the form and persists
	// the result. With strict set, a stale question reference or a payload
	// whose variant disagrees with the question's type fails the submission;
	// otherwise such answers are dropped and reported in the result.
	Submit(ctx context.Context, req *SubmitResponseRequest, strict bool) (*SubmitResult, error)
	GetByID(ctx context.Context, id string) (*models.Response, error)
	ListByForm(ctx context.Context, formID string, filters repositories.ResponseFilters) (*ResponseListResponse, error)
	CountByForm(ctx context.Context, formID string) (int64, error)
}

type responseService struct {
	repo      repositories.Repository
	forms     FormService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewResponseService(repo repositories.Repository, forms FormService, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) ResponseService {
	return &responseService{
		repo:      repo,
		forms:     forms,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *responseService) Submit(ctx context.Context, req *SubmitResponseRequest, strict bool) (*SubmitResult, error) {
	s.logger.Info("Submitting response", "form_id", req.FormID, "answer_count", len(req.Answers), "strict", strict)

	if err := s.validator.ValidateStruct(req); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return nil, ve
		}
		return nil, err
	}

	form, err := s.forms.GetByID(ctx, req.FormID)
	if err != nil {
		return nil, err
	}

	set, err := buildAnswerSet(req.Answers)
	if err != nil {
		return nil, err
	}

	var response models.Response
	var dropped []string
	if strict {
		response, err = submission.BuildResponseStrict(form, set, req.SubmittedBy)
		if err != nil {
			return nil, err
		}
	} else {
		response, dropped = submission.BuildResponse(form, set, req.SubmittedBy)
		if len(dropped) > 0 {
			s.logger.Warn("Dropped answers during reconciliation",
				"form_id", req.FormID,
				"dropped_question_ids", dropped)
		}
	}

	s.checkClozeAnswerCounts(form, &response)

	if err := s.repo.Response().Create(ctx, &response); err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}

	if err := s.publisher.PublishFormEvent(ctx, events.NewResponseSubmittedEvent(&response)); err != nil {
		s.logger.Warn("Failed to publish response submitted event", "response_id", response.ID, "error", err)
	}

	s.logger.Info("Response submitted successfully", "response_id", response.ID, "form_id", req.FormID)
	return &SubmitResult{Response: &response, Dropped: dropped}, nil
}

func (s *responseService) GetByID(ctx context.Context, id string) (*models.Response, error) {
	response, err := s.repo.Response().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResponseNotFound
		}
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	return response, nil
}

func (s *responseService) ListByForm(ctx context.Context, formID string, filters repositories.ResponseFilters) (*ResponseListResponse, error) {
	// Surface a 404 for an unknown form rather than an empty list.
	if _, err := s.forms.GetByID(ctx, formID); err != nil {
		return nil, err
	}

	responses, total, err := s.repo.Response().ListByForm(ctx, formID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	return &ResponseListResponse{
		Responses: responses,
		Total:     total,
		Page:      filters.Offset / max(filters.Limit, 1),
		Size:      filters.Limit,
	}, nil
}

func (s *responseService) CountByForm(ctx context.Context, formID string) (int64, error) {
	return s.repo.Response().CountByForm(ctx, formID)
}

// checkClozeAnswerCounts logs cloze answers whose entry count disagrees with
// the number of blanks in the passage. Answers are index-correlated to
// blanks, so a count mismatch means trailing blanks went unanswered or extra
// entries will be ignored by readers; the submission itself stays valid.
func (s *responseService) checkClozeAnswerCounts(form *models.Form, response *models.Response) {
	for _, answer := range response.Answers {
		if answer.QuestionType != models.Cloze {
			continue
		}
		question := form.QuestionByID(answer.QuestionID)
		if question == nil {
			continue
		}
		if blanks := cloze.CountBlanks(question.ClozeText); len(answer.ClozeAnswers) != blanks {
			s.logger.Warn("Cloze answer count differs from blank count",
				"form_id", form.ID,
				"question_id", answer.QuestionID,
				"blanks", blanks,
				"answers", len(answer.ClozeAnswers))
		}
	}
}

// buildAnswerSet converts wire answers into a recorded answer set. The
// payload variant follows the declared questionType, so a client that lies
// about the type produces a shape mismatch at reconciliation instead of a
// silently re-typed answer. Duplicate question ids are last-write-wins.
func buildAnswerSet(answers []SubmittedAnswer) (submission.AnswerSet, error) {
	set := submission.NewAnswerSet()

	for i, a := range answers {
		if a.QuestionID == "" {
			return set, NewValidationError(fmt.Sprintf("answers[%d].questionId", i), "is required", a.QuestionID)
		}

		var payload submission.AnswerPayload
		switch a.QuestionType {
		case models.Categorize:
			payload = submission.CategorizePayload(a.CategorizedItems)
		case models.Cloze:
			payload = submission.ClozePayload(a.ClozeAnswers)
		case models.Comprehension:
			payload = submission.ComprehensionPayload(a.ComprehensionAnswers)
		default:
			return set, NewValidationError(fmt.Sprintf("answers[%d].questionType", i),
				"must be a valid question type (Categorize, Cloze, Comprehension)", string(a.QuestionType))
		}

		set = set.Record(a.QuestionID, payload)
	}

	return set, nil
}
