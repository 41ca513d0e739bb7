package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// The wire documents are consumed by existing clients, so the field names
// and the flat variant-payload layout are load-bearing.
func TestFormWireDocument(t *testing.T) {
	form := Form{
		ID:    "f-1",
		Title: "Quiz",
		Questions: []Question{
			{
				ID:            "q-1",
				QuestionTitle: "Sort these",
				QuestionType:  Categorize,
				Categories:    []string{"Fruit"},
				Items:         []CategorizeItem{{Name: "Apple", Category: "Fruit"}},
			},
			{
				ID:            "q-2",
				QuestionTitle: "Fill in",
				QuestionType:  Cloze,
				ClozeText:     "A __b__ c",
			},
		},
	}

	data, err := json.Marshal(form)
	require.NoError(t, err)

	require.JSONEq(t, `{
		"_id": "f-1",
		"title": "Quiz",
		"questions": [
			{
				"_id": "q-1",
				"questionTitle": "Sort these",
				"questionType": "Categorize",
				"categories": ["Fruit"],
				"items": [{"name": "Apple", "category": "Fruit"}]
			},
			{
				"_id": "q-2",
				"questionTitle": "Fill in",
				"questionType": "Cloze",
				"clozeText": "A __b__ c"
			}
		],
		"createdAt": "0001-01-01T00:00:00Z",
		"updatedAt": "0001-01-01T00:00:00Z"
	}`, string(data))
}

func TestResponseWireDocument(t *testing.T) {
	response := Response{
		ID:          "r-1",
		FormID:      "f-1",
		SubmittedBy: "someone@example.com",
		Answers: []Answer{
			{
				QuestionID:   "q-2",
				QuestionType: Cloze,
				ClozeAnswers: []string{"b"},
			},
		},
	}

	data, err := json.Marshal(response)
	require.NoError(t, err)

	require.JSONEq(t, `{
		"_id": "r-1",
		"formId": "f-1",
		"submittedBy": "someone@example.com",
		"answers": [
			{
				"questionId": "q-2",
				"questionType": "Cloze",
				"clozeAnswers": ["b"]
			}
		],
		"createdAt": "0001-01-01T00:00:00Z",
		"updatedAt": "0001-01-01T00:00:00Z"
	}`, string(data))
}
