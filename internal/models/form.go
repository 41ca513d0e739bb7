package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	Categorize    QuestionType = "Categorize"
	Cloze         QuestionType = "Cloze"
	Comprehension QuestionType = "Comprehension"
)

// Valid reports whether t is one of the three known question variants.
func (t QuestionType) Valid() bool {
	switch t {
	case Categorize, Cloze, Comprehension:
		return true
	}
	return false
}

// CategorizeItem is a single draggable item of a Categorize question.
// Category names the correct bucket; empty means not yet assigned by the author.
type CategorizeItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ComprehensionMCQ is one multiple-choice question attached to a
// Comprehension passage.
type ComprehensionMCQ struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

// Question is one element of a form. Exactly one variant payload is set,
// matching QuestionType; the remaining variant fields stay at their zero
// values and are omitted from the wire document.
type Question struct {
	ID       string `json:"_id,omitempty" gorm:"primaryKey;size:36"`
	FormID   string `json:"-" gorm:"size:36;index;not null"`
	Position int    `json:"-" gorm:"not null"`

	QuestionTitle string       `json:"questionTitle" gorm:"not null;size:500" validate:"required,min=1"`
	QuestionType  QuestionType `json:"questionType" gorm:"not null;size:20;index" validate:"required,question_type"`
	Image         string       `json:"image,omitempty"`

	// Categorize payload
	Categories datatypes.JSONSlice[string]         `json:"categories,omitempty"`
	Items      datatypes.JSONSlice[CategorizeItem] `json:"items,omitempty"`

	// Cloze payload
	ClozeText string `json:"clozeText,omitempty" gorm:"type:text"`

	// Comprehension payload
	ComprehensionPassage   string                                `json:"comprehensionPassage,omitempty" gorm:"type:text"`
	ComprehensionQuestions datatypes.JSONSlice[ComprehensionMCQ] `json:"comprehensionQuestions,omitempty"`
}

// Form is the authored aggregate. Question order is authoring order and is
// preserved end-to-end; it drives the numbering shown to respondents.
type Form struct {
	ID          string     `json:"_id,omitempty" gorm:"primaryKey;size:36"`
	Title       string     `json:"title" gorm:"not null;size:300" validate:"required,min=1"`
	HeaderImage string     `json:"headerImage,omitempty"`
	Questions   []Question `json:"questions" gorm:"foreignKey:FormID;references:ID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Form) TableName() string {
	return "forms"
}

func (Question) TableName() string {
	return "form_questions"
}

func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// QuestionByID returns the question with the given id, or nil if the form
// holds no such question.
func (f *Form) QuestionByID(id string) *Question {
	for i := range f.Questions {
		if f.Questions[i].ID == id {
			return &f.Questions[i]
		}
	}
	return nil
}
