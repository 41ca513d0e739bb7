package events

import (
	"time"

	"github.com/formpilot/formbuilder-service/internal/models"
	"github.com/google/uuid"
)

type EventType string

const (
	FormCreated       EventType = "form.created"
	ResponseSubmitted EventType = "response.submitted"
)

// FormEvent is the envelope published to the event bus when a form is
// created or a response is submitted.
type FormEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`

	FormID      string `json:"form_id"`
	FormTitle   string `json:"form_title,omitempty"`
	ResponseID  string `json:"response_id,omitempty"`
	SubmittedBy string `json:"submitted_by,omitempty"`
	AnswerCount int    `json:"answer_count,omitempty"`
}

func newFormEvent(eventType EventType) *FormEvent {
	return &FormEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "formbuilder-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
	}
}

// NewFormCreatedEvent builds the event announcing a newly persisted form.
func NewFormCreatedEvent(form *models.Form) *FormEvent {
	event := newFormEvent(FormCreated)
	event.FormID = form.ID
	event.FormTitle = form.Title
	return event
}

// NewResponseSubmittedEvent builds the event announcing a stored submission.
func NewResponseSubmittedEvent(response *models.Response) *FormEvent {
	event := newFormEvent(ResponseSubmitted)
	event.FormID = response.FormID
	event.ResponseID = response.ID
	event.SubmittedBy = response.SubmittedBy
	event.AnswerCount = len(response.Answers)
	return event
}
