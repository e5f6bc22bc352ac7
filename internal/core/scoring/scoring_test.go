package scoring

import (
	"errors"
	"testing"
)

func intp(i int) *int { return &i }

func TestScore(t *testing.T) {
	answers := []Answer{
		{SelectedOptionIndex: intp(2), CorrectOptionIndex: 2},
		{SelectedOptionIndex: intp(0), CorrectOptionIndex: 1},
		{SelectedOptionIndex: nil, CorrectOptionIndex: 0},
		{SelectedOptionIndex: intp(3), CorrectOptionIndex: 3},
	}
	got := Score(answers)
	if got.Score != 2 || got.Total != 4 {
		t.Fatalf("got %+v, want 2/4", got)
	}
	if got := Score(nil); got.Score != 0 || got.Total != 0 {
		t.Fatalf("empty: %+v", got)
	}
}

func TestParseAnswers(t *testing.T) {
	answers, err := ParseAnswers([]byte(`[
		{"selectedOptionIndex": 1, "correctOptionIndex": 1},
		{"selectedOptionIndex": null, "correctOptionIndex": 0}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(answers) != 2 || *answers[0].SelectedOptionIndex != 1 || answers[1].SelectedOptionIndex != nil {
		t.Fatalf("answers = %+v", answers)
	}
	if res := Score(answers); res.Score != 1 || res.Total != 2 {
		t.Fatalf("score = %+v", res)
	}

	empty, err := ParseAnswers([]byte(`[]`))
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty list: %v, %v", empty, err)
	}
}

func TestParseAnswers_EmptyValuesAreEmptySubmissions(t *testing.T) {
	for _, body := range []string{`null`, `{}`, `""`, `0`, `false`, ` [] `} {
		answers, err := ParseAnswers([]byte(body))
		if err != nil {
			t.Fatalf("ParseAnswers(%s): %v", body, err)
		}
		if res := Score(answers); res != (Result{}) {
			t.Fatalf("ParseAnswers(%s) scored %+v", body, res)
		}
	}
}

func TestParseAnswers_Rejects(t *testing.T) {
	cases := []struct {
		body string
		want error
	}{
		{`{"selectedOptionIndex": 1}`, ErrInvalidPayload},
		{`"answers"`, ErrInvalidPayload},
		{`7`, ErrInvalidPayload},
		{`not json`, ErrInvalidPayload},
		{`[1, 2]`, ErrInvalidFormat},
		{`[{"correctOptionIndex": 1}]`, ErrInvalidFormat},
		{`[{"selectedOptionIndex": 1}]`, ErrInvalidFormat},
		{`[{"selectedOptionIndex": 1, "correctOptionIndex": "1"}]`, ErrInvalidTypes},
		{`[{"selectedOptionIndex": 1, "correctOptionIndex": 1.5}]`, ErrInvalidTypes},
		{`[{"selectedOptionIndex": 1, "correctOptionIndex": null}]`, ErrInvalidTypes},
		{`[{"selectedOptionIndex": "a", "correctOptionIndex": 1}]`, ErrInvalidTypes},
		{`[{"selectedOptionIndex": true, "correctOptionIndex": 1}]`, ErrInvalidTypes},
	}
	for _, tc := range cases {
		if _, err := ParseAnswers([]byte(tc.body)); !errors.Is(err, tc.want) {
			t.Errorf("ParseAnswers(%s) err = %v, want %v", tc.body, err, tc.want)
		}
	}
}
