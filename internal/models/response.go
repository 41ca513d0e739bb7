package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CategorizedItem records where the respondent placed one item.
type CategorizedItem struct {
	ItemName         string `json:"itemName"`
	AssignedCategory string `json:"assignedCategory"`
}

// ComprehensionAnswer records the option picked for one MCQ.
type ComprehensionAnswer struct {
	Question       string `json:"question"`
	SelectedOption string `json:"selectedOption"`
}

// Answer is one element of a response. QuestionType is a point-in-time copy
// of the referenced question's type, taken at reconciliation; it is stored
// rather than re-derived so later drift between the documents is detectable.
// Exactly one variant payload is set, matching QuestionType.
type Answer struct {
	QuestionID   string       `json:"questionId"`
	QuestionType QuestionType `json:"questionType"`

	CategorizedItems     []CategorizedItem     `json:"categorizedItems,omitempty"`
	ClozeAnswers         []string              `json:"clozeAnswers,omitempty"`
	ComprehensionAnswers []ComprehensionAnswer `json:"comprehensionAnswers,omitempty"`
}

// Response is a single submission against a form. It holds a non-owning
// reference to the form by id and exclusively owns its answers. Persisted
// once, immutable afterward.
type Response struct {
	ID          string                      `json:"_id,omitempty" gorm:"primaryKey;size:36"`
	FormID      string                      `json:"formId" gorm:"size:36;not null;index" validate:"required"`
	SubmittedBy string                      `json:"submittedBy,omitempty" gorm:"size:200"`
	Answers     datatypes.JSONSlice[Answer] `json:"answers"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Response) TableName() string {
	return "form_responses"
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
