package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidPayload = errors.New("payload must be a list of answer objects")
	ErrInvalidFormat  = errors.New("each answer must have selectedOptionIndex and correctOptionIndex")
	ErrInvalidTypes   = errors.New("invalid answer types")
)

// Answer is one submitted response. A nil SelectedOptionIndex means the question was skipped.
type Answer struct {
	SelectedOptionIndex *int `json:"selectedOptionIndex"`
	CorrectOptionIndex  int  `json:"correctOptionIndex"`
}

// Correct reports whether the selection matches the key.
func (a Answer) Correct() bool {
	return a.SelectedOptionIndex != nil && *a.SelectedOptionIndex == a.CorrectOptionIndex
}

type Result struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// Score counts correct answers.
func Score(answers []Answer) Result {
	res := Result{Total: len(answers)}
	for _, a := range answers {
		if a.Correct() {
			res.Score++
		}
	}
	return res
}

// ParseAnswers strictly decodes a submission: a JSON list of objects that carry both
// keys, an integer correctOptionIndex and an integer or null selectedOptionIndex.
// An empty JSON value (null, {}, "", 0, false) is an empty submission.
func ParseAnswers(body []byte) ([]Answer, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, ErrInvalidPayload
	}
	if isEmptyValue(v) {
		return []Answer{}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, ErrInvalidPayload
	}

	answers := make([]Answer, 0, len(items))
	for i, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("answer %d: %w", i, ErrInvalidFormat)
		}
		selRaw, okSel := fields["selectedOptionIndex"]
		corRaw, okCor := fields["correctOptionIndex"]
		if !okSel || !okCor {
			return nil, fmt.Errorf("answer %d: %w", i, ErrInvalidFormat)
		}

		correct, ok := parseInt(corRaw)
		if !ok {
			return nil, fmt.Errorf("answer %d: correctOptionIndex must be an integer: %w", i, ErrInvalidTypes)
		}
		a := Answer{CorrectOptionIndex: correct}
		if !bytes.Equal(bytes.TrimSpace(selRaw), []byte("null")) {
			sel, ok := parseInt(selRaw)
			if !ok {
				return nil, fmt.Errorf("answer %d: selectedOptionIndex must be an integer or null: %w", i, ErrInvalidTypes)
			}
			a.SelectedOptionIndex = &sel
		}
		answers = append(answers, a)
	}
	return answers, nil
}

func parseInt(raw json.RawMessage) (int, bool) {
	n, err := strconv.Atoi(string(bytes.TrimSpace(raw)))
	return n, err == nil
}

func isEmptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	case map[string]any:
		return len(x) == 0
	case []any:
		return len(x) == 0
	}
	return false
}
