package submission

import (
	"fmt"

	"github.com/formpilot/formbuilder-service/internal/models"
)

// ReferenceError reports an answer whose question id is absent from the
// target form, typically because the answer set went stale against a
// since-edited form.
type ReferenceError struct {
	FormID     string
	QuestionID string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("answer references question %s which is not part of form %s", e.QuestionID, e.FormID)
}

// ShapeMismatchError reports a recorded payload whose variant does not match
// the declared type of its question.
type ShapeMismatchError struct {
	QuestionID string
	Declared   models.QuestionType
	Recorded   models.QuestionType
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("answer for question %s carries a %s payload but the question is %s",
		e.QuestionID, e.Recorded, e.Declared)
}

// BuildResponse joins the answer set back to the form's question list.
//
// Answers appear in the order their questions appear in the form, filtered
// to those actually answered, so the response is always orderable by the
// form's canonical question order regardless of respondent interaction
// order. The questionType on each answer is copied from the form's question,
// never trusted from the recorded set.
//
// Entries whose question id is absent from the form, and entries whose
// payload variant does not match the question's declared type, are dropped;
// their ids are returned so callers can log them. BuildResponse itself never
// fails.
func BuildResponse(form *models.Form, set AnswerSet, submittedBy string) (models.Response, []string) {
	response := models.Response{
		FormID:      form.ID,
		SubmittedBy: submittedBy,
		Answers:     []models.Answer{},
	}

	var dropped []string
	for _, q := range form.Questions {
		payload, ok := set.Get(q.ID)
		if !ok {
			continue
		}
		if payload.questionType() != q.QuestionType {
			dropped = append(dropped, q.ID)
			continue
		}
		response.Answers = append(response.Answers, buildAnswer(&q, payload))
	}
	for id := range staleIDs(form, set) {
		dropped = append(dropped, id)
	}

	return response, dropped
}

// BuildResponseStrict behaves like BuildResponse but surfaces the first
// stale reference or payload mismatch as an error instead of dropping it.
func BuildResponseStrict(form *models.Form, set AnswerSet, submittedBy string) (models.Response, error) {
	for id := range staleIDs(form, set) {
		return models.Response{}, &ReferenceError{FormID: form.ID, QuestionID: id}
	}
	for _, q := range form.Questions {
		payload, ok := set.Get(q.ID)
		if !ok {
			continue
		}
		if recorded := payload.questionType(); recorded != q.QuestionType {
			return models.Response{}, &ShapeMismatchError{
				QuestionID: q.ID,
				Declared:   q.QuestionType,
				Recorded:   recorded,
			}
		}
	}

	response, _ := BuildResponse(form, set, submittedBy)
	return response, nil
}

func buildAnswer(q *models.Question, payload AnswerPayload) models.Answer {
	answer := models.Answer{
		QuestionID:   q.ID,
		QuestionType: q.QuestionType,
	}

	switch p := payload.(type) {
	case CategorizePayload:
		answer.CategorizedItems = p
	case ClozePayload:
		answer.ClozeAnswers = p
	case ComprehensionPayload:
		answer.ComprehensionAnswers = p
	}

	return answer
}

func staleIDs(form *models.Form, set AnswerSet) map[string]bool {
	stale := make(map[string]bool)
	for id := range set.recorded {
		if form.QuestionByID(id) == nil {
			stale[id] = true
		}
	}
	return stale
}
