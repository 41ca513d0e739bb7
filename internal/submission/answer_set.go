// Package submission collects a respondent's in-progress answers and
// reconciles them against the originating form at submit time.
package submission

import "github.com/formpilot/formbuilder-service/internal/models"

// AnswerPayload is the variant-specific body of a recorded answer. Exactly
// one concrete payload type exists per question variant.
type AnswerPayload interface {
	questionType() models.QuestionType
}

// CategorizePayload maps items to the categories the respondent chose.
type CategorizePayload []models.CategorizedItem

// ClozePayload holds one entry per blank, index-correlated to the order
// blanks appear in the passage.
type ClozePayload []string

// ComprehensionPayload holds the option selected for each MCQ.
type ComprehensionPayload []models.ComprehensionAnswer

func (CategorizePayload) questionType() models.QuestionType    { return models.Categorize }
func (ClozePayload) questionType() models.QuestionType         { return models.Cloze }
func (ComprehensionPayload) questionType() models.QuestionType { return models.Comprehension }

// AnswerSet maps question ids to the latest recorded payload. Record is
// last-write-wins; no history is kept and no shape checking happens here.
// Shape checks are deferred to the reconciler at submission.
type AnswerSet struct {
	recorded map[string]AnswerPayload
}

// NewAnswerSet creates an empty answer set.
func NewAnswerSet() AnswerSet {
	return AnswerSet{recorded: map[string]AnswerPayload{}}
}

// Record returns a new set with the payload stored under questionID,
// overwriting any earlier payload for the same question. The receiver is
// left untouched, mirroring the snapshot discipline of form drafts.
func (s AnswerSet) Record(questionID string, payload AnswerPayload) AnswerSet {
	next := make(map[string]AnswerPayload, len(s.recorded)+1)
	for id, p := range s.recorded {
		next[id] = p
	}
	next[questionID] = payload
	return AnswerSet{recorded: next}
}

// Get returns the payload recorded for questionID, if any.
func (s AnswerSet) Get(questionID string) (AnswerPayload, bool) {
	p, ok := s.recorded[questionID]
	return p, ok
}

// Len reports how many questions have a recorded payload.
func (s AnswerSet) Len() int {
	return len(s.recorded)
}
