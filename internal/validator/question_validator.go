package validator

import (
	"fmt"

	apperrors "github.com/formpilot/formbuilder-service/internal/errors"
	"github.com/formpilot/formbuilder-service/internal/models"
)

// QuestionValidator enforces the variant shape rules: exactly one variant
// payload, matching the declared type, with variant-specific field checks.
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateForm validates the form and every question in it. Field paths in
// the returned errors index into the questions array.
func (v *QuestionValidator) ValidateForm(form *models.Form) error {
	var errs apperrors.ValidationErrors

	if form.Title == "" {
		errs = append(errs, *apperrors.NewValidationError("title", "is required", form.Title))
	}

	for i := range form.Questions {
		errs = append(errs, v.validateQuestion(&form.Questions[i], fmt.Sprintf("questions[%d]", i))...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateQuestion validates a single question in isolation.
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if errs := v.validateQuestion(question, ""); len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *QuestionValidator) validateQuestion(q *models.Question, path string) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if q.QuestionTitle == "" {
		errs = append(errs, *apperrors.NewValidationError(field(path, "questionTitle"), "is required", q.QuestionTitle))
	}

	switch q.QuestionType {
	case models.Categorize:
		errs = append(errs, v.validateCategorize(q, path)...)
	case models.Cloze:
		errs = append(errs, v.validateCloze(q, path)...)
	case models.Comprehension:
		errs = append(errs, v.validateComprehension(q, path)...)
	default:
		errs = append(errs, *apperrors.NewValidationErrorWithRule(
			field(path, "questionType"),
			"must be a valid question type (Categorize, Cloze, Comprehension)",
			"question_type", string(q.QuestionType)))
	}

	return errs
}

func (v *QuestionValidator) validateCategorize(q *models.Question, path string) apperrors.ValidationErrors {
	errs := v.requireExclusivePayload(q, path, models.Categorize)

	if len(q.Categories) == 0 {
		errs = append(errs, *apperrors.NewValidationError(field(path, "categories"), "must contain at least 1 category", nil))
	}

	seen := make(map[string]bool, len(q.Categories))
	for i, cat := range q.Categories {
		if seen[cat] {
			errs = append(errs, *apperrors.NewValidationError(
				fmt.Sprintf("%s[%d]", field(path, "categories"), i), "duplicates an earlier category", cat))
		}
		seen[cat] = true
	}

	// An item may be unassigned (empty category) while the author is still
	// editing; a non-empty category must name an existing one.
	for i, item := range q.Items {
		if item.Category != "" && !seen[item.Category] {
			errs = append(errs, *apperrors.NewValidationError(
				fmt.Sprintf("%s[%d].category", field(path, "items"), i),
				"does not match any category", item.Category))
		}
	}

	return errs
}

func (v *QuestionValidator) validateCloze(q *models.Question, path string) apperrors.ValidationErrors {
	return v.requireExclusivePayload(q, path, models.Cloze)
}

func (v *QuestionValidator) validateComprehension(q *models.Question, path string) apperrors.ValidationErrors {
	errs := v.requireExclusivePayload(q, path, models.Comprehension)

	for i, mcq := range q.ComprehensionQuestions {
		mcqPath := fmt.Sprintf("%s[%d]", field(path, "comprehensionQuestions"), i)

		if len(mcq.Options) < 1 {
			errs = append(errs, *apperrors.NewValidationError(mcqPath+".options", "must contain at least 1 option", nil))
			continue
		}

		if mcq.CorrectAnswer == "" {
			continue
		}
		found := false
		for _, opt := range mcq.Options {
			if opt == mcq.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, *apperrors.NewValidationError(mcqPath+".correctAnswer", "does not match any option", mcq.CorrectAnswer))
		}
	}

	return errs
}

// requireExclusivePayload rejects questions carrying fields from a variant
// other than their declared type.
func (v *QuestionValidator) requireExclusivePayload(q *models.Question, path string, declared models.QuestionType) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	foreign := func(name string, set bool) {
		if set {
			errs = append(errs, *apperrors.NewValidationError(
				field(path, name),
				fmt.Sprintf("is not a %s field", declared), nil))
		}
	}

	if declared != models.Categorize {
		foreign("categories", len(q.Categories) > 0)
		foreign("items", len(q.Items) > 0)
	}
	if declared != models.Cloze {
		foreign("clozeText", q.ClozeText != "")
	}
	if declared != models.Comprehension {
		foreign("comprehensionPassage", q.ComprehensionPassage != "")
		foreign("comprehensionQuestions", len(q.ComprehensionQuestions) > 0)
	}

	return errs
}

func field(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
