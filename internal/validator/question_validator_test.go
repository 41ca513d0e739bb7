package validator

import (
	"testing"

	apperrors "github.com/formpilot/formbuilder-service/internal/errors"
	"github.com/formpilot/formbuilder-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuestion_Categorize(t *testing.T) {
	v := NewQuestionValidator()

	tests := []struct {
		name        string
		question    models.Question
		expectError bool
	}{
		{
			name: "valid categorize question",
			question: models.Question{
				QuestionTitle: "Sort the animals",
				QuestionType:  models.Categorize,
				Categories:    []string{"Mammal", "Bird"},
				Items: []models.CategorizeItem{
					{Name: "Dog", Category: "Mammal"},
					{Name: "Eagle", Category: "Bird"},
				},
			},
		},
		{
			name: "unassigned item category is allowed",
			question: models.Question{
				QuestionTitle: "Sort the animals",
				QuestionType:  models.Categorize,
				Categories:    []string{"Mammal"},
				Items:         []models.CategorizeItem{{Name: "Dog", Category: ""}},
			},
		},
		{
			name: "item references unknown category",
			question: models.Question{
				QuestionTitle: "Sort the animals",
				QuestionType:  models.Categorize,
				Categories:    []string{"Mammal"},
				Items:         []models.CategorizeItem{{Name: "Eagle", Category: "Bird"}},
			},
			expectError: true,
		},
		{
			name: "no categories",
			question: models.Question{
				QuestionTitle: "Sort the animals",
				QuestionType:  models.Categorize,
			},
			expectError: true,
		},
		{
			name: "duplicate categories",
			question: models.Question{
				QuestionTitle: "Sort the animals",
				QuestionType:  models.Categorize,
				Categories:    []string{"Mammal", "Mammal"},
			},
			expectError: true,
		},
		{
			name: "categorize must not carry cloze text",
			question: models.Question{
				QuestionTitle: "Sort the animals",
				QuestionType:  models.Categorize,
				Categories:    []string{"Mammal"},
				ClozeText:     "The __dog__ barks",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateQuestion(&tt.question)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateQuestion_Comprehension(t *testing.T) {
	v := NewQuestionValidator()

	tests := []struct {
		name        string
		question    models.Question
		expectError bool
	}{
		{
			name: "valid comprehension question",
			question: models.Question{
				QuestionTitle:        "Read the passage",
				QuestionType:         models.Comprehension,
				ComprehensionPassage: "A long passage.",
				ComprehensionQuestions: []models.ComprehensionMCQ{
					{Question: "MCQ 1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
				},
			},
		},
		{
			name: "correct answer not among options",
			question: models.Question{
				QuestionTitle: "Read the passage",
				QuestionType:  models.Comprehension,
				ComprehensionQuestions: []models.ComprehensionMCQ{
					{Question: "MCQ 1", Options: []string{"A", "B"}, CorrectAnswer: "C"},
				},
			},
			expectError: true,
		},
		{
			name: "mcq without options",
			question: models.Question{
				QuestionTitle: "Read the passage",
				QuestionType:  models.Comprehension,
				ComprehensionQuestions: []models.ComprehensionMCQ{
					{Question: "MCQ 1"},
				},
			},
			expectError: true,
		},
		{
			name: "missing correct answer is allowed",
			question: models.Question{
				QuestionTitle: "Read the passage",
				QuestionType:  models.Comprehension,
				ComprehensionQuestions: []models.ComprehensionMCQ{
					{Question: "MCQ 1", Options: []string{"A"}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateQuestion(&tt.question)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateQuestion_CommonRules(t *testing.T) {
	v := NewQuestionValidator()

	t.Run("empty title rejected", func(t *testing.T) {
		err := v.ValidateQuestion(&models.Question{
			QuestionType: models.Cloze,
			ClozeText:    "The __sky__ is blue",
		})
		require.Error(t, err)

		var errs apperrors.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "questionTitle", errs[0].Field)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		err := v.ValidateQuestion(&models.Question{
			QuestionTitle: "Untitled Question",
			QuestionType:  "Essay",
		})
		assert.Error(t, err)
	})

	t.Run("cloze with foreign comprehension payload rejected", func(t *testing.T) {
		err := v.ValidateQuestion(&models.Question{
			QuestionTitle:        "Fill in the blank",
			QuestionType:         models.Cloze,
			ClozeText:            "The __sky__ is blue",
			ComprehensionPassage: "stray passage",
		})
		assert.Error(t, err)
	})
}

func TestValidateForm(t *testing.T) {
	v := NewQuestionValidator()

	t.Run("valid form", func(t *testing.T) {
		form := models.Form{
			Title: "My Form",
			Questions: []models.Question{
				{QuestionTitle: "Q1", QuestionType: models.Cloze, ClozeText: "A __b__ c"},
			},
		}
		assert.NoError(t, v.ValidateForm(&form))
	})

	t.Run("missing title and bad question both reported", func(t *testing.T) {
		form := models.Form{
			Questions: []models.Question{
				{QuestionType: "Bogus"},
			},
		}
		err := v.ValidateForm(&form)
		require.Error(t, err)

		var errs apperrors.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.GreaterOrEqual(t, len(errs), 3)
		assert.Equal(t, "title", errs[0].Field)
	})
}
