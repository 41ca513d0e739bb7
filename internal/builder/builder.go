// Package builder holds the authoring-time form aggregate. Every mutation
// returns a new Draft snapshot; prior snapshots are never aliased, so a
// caller can safely keep reading an older snapshot while editing continues.
package builder

import (
	"fmt"

	"github.com/formpilot/formbuilder-service/internal/models"
	"github.com/google/uuid"
)

// Draft is an in-progress form. Question ids are locally-unique temporary
// ids; the store assigns canonical ids on first persistence.
type Draft struct {
	Title       string
	HeaderImage string
	Questions   []models.Question
}

// NewDraft creates an empty draft with the given title and header image.
func NewDraft(title, headerImage string) Draft {
	return Draft{Title: title, HeaderImage: headerImage}
}

// AddQuestion appends a question of the given type with variant-appropriate
// placeholder content and a temporary id. Unknown types are an error, not a
// fallthrough.
func (d Draft) AddQuestion(qt models.QuestionType) (Draft, error) {
	q := models.Question{
		ID:            uuid.NewString(),
		QuestionTitle: "Untitled Question",
		QuestionType:  qt,
	}

	switch qt {
	case models.Categorize:
		q.Categories = []string{"Category 1", "Category 2"}
		q.Items = []models.CategorizeItem{{Name: "Item 1", Category: ""}}
	case models.Cloze:
		q.ClozeText = ""
	case models.Comprehension:
		q.ComprehensionPassage = ""
		q.ComprehensionQuestions = []models.ComprehensionMCQ{
			{Question: "MCQ 1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
		}
	default:
		return d, fmt.Errorf("unknown question type: %s", qt)
	}

	next := d.cloneQuestions(len(d.Questions) + 1)
	next.Questions = append(next.Questions, d.Questions...)
	next.Questions = append(next.Questions, q)
	return next, nil
}

// UpdateTitle replaces the display title of the question with the given id.
// A missing id is a silent no-op, matching the permissive editing policy.
func (d Draft) UpdateTitle(id, title string) Draft {
	return d.update(id, func(q *models.Question) {
		q.QuestionTitle = title
	})
}

// UpdateImage sets the image URL of the question with the given id. The
// update is keyed to the question slot, so the slot's URL always reflects
// its own latest completed upload regardless of upload completion order.
func (d Draft) UpdateImage(id, url string) Draft {
	return d.update(id, func(q *models.Question) {
		q.Image = url
	})
}

// SetHeaderImage sets the form-level header image slot.
func (d Draft) SetHeaderImage(url string) Draft {
	next := d.cloneQuestions(len(d.Questions))
	next.Questions = append(next.Questions, d.Questions...)
	next.HeaderImage = url
	return next
}

// UpdateCategorize replaces the Categorize payload of the matching question.
// Questions of another type are left untouched; only fields legal for the
// Categorize variant can be set through this operation.
func (d Draft) UpdateCategorize(id string, categories []string, items []models.CategorizeItem) Draft {
	return d.update(id, func(q *models.Question) {
		if q.QuestionType != models.Categorize {
			return
		}
		q.Categories = append([]string(nil), categories...)
		q.Items = append([]models.CategorizeItem(nil), items...)
	})
}

// UpdateCloze replaces the passage of the matching Cloze question.
func (d Draft) UpdateCloze(id, clozeText string) Draft {
	return d.update(id, func(q *models.Question) {
		if q.QuestionType != models.Cloze {
			return
		}
		q.ClozeText = clozeText
	})
}

// UpdateComprehension replaces the Comprehension payload of the matching
// question.
func (d Draft) UpdateComprehension(id, passage string, mcqs []models.ComprehensionMCQ) Draft {
	return d.update(id, func(q *models.Question) {
		if q.QuestionType != models.Comprehension {
			return
		}
		q.ComprehensionPassage = passage
		q.ComprehensionQuestions = append([]models.ComprehensionMCQ(nil), mcqs...)
	})
}

// RemoveQuestion filters out the question with the given id. A missing id is
// a silent no-op.
func (d Draft) RemoveQuestion(id string) Draft {
	next := d.cloneQuestions(len(d.Questions))
	for _, q := range d.Questions {
		if q.ID != id {
			next.Questions = append(next.Questions, q)
		}
	}
	return next
}

// ToSubmission produces the wire form document: temporary ids are stripped
// (the store assigns canonical ids on create) and positions follow authoring
// order.
func (d Draft) ToSubmission() models.Form {
	form := models.Form{
		Title:       d.Title,
		HeaderImage: d.HeaderImage,
		Questions:   make([]models.Question, len(d.Questions)),
	}
	for i, q := range d.Questions {
		q.ID = ""
		q.Position = i
		form.Questions[i] = q
	}
	return form
}

func (d Draft) update(id string, apply func(*models.Question)) Draft {
	next := d.cloneQuestions(len(d.Questions))
	for _, q := range d.Questions {
		if q.ID == id {
			apply(&q)
		}
		next.Questions = append(next.Questions, q)
	}
	return next
}

func (d Draft) cloneQuestions(capacity int) Draft {
	return Draft{
		Title:       d.Title,
		HeaderImage: d.HeaderImage,
		Questions:   make([]models.Question, 0, capacity),
	}
}
