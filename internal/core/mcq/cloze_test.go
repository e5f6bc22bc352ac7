package mcq

import "testing"

func TestMakeCloze(t *testing.T) {
	cases := []struct {
		name, sentence, target, want string
	}{
		{
			name:     "empty target",
			sentence: "  Nothing changes here.  ",
			target:   "",
			want:     "  Nothing changes here.  ",
		},
		{
			name:     "first match only, case-insensitive",
			sentence: "The Cat sat on the mat.",
			target:   "cat",
			want:     "The _________ sat on the mat.",
		},
		{
			name:     "whole words only",
			sentence: "The category of the cat is clear.",
			target:   "cat",
			want:     "The category of the _________ is clear.",
		},
		{
			name:     "parenthetical removed",
			sentence: "Mitochondria (the powerhouse of the cell) produce energy for the cell.",
			target:   "Mitochondria",
			want:     "_________ produce energy for the cell.",
		},
		{
			name:     "answer after blank removed",
			sentence: "Photosynthesis converts light; photosynthesis needs water.",
			target:   "Photosynthesis",
			want:     "_________ converts light; needs water.",
		},
		{
			name:     "no match",
			sentence: "Nothing to blank (really) here.",
			target:   "cat",
			want:     "Nothing to blank here.",
		},
		{
			name:     "regex metacharacters",
			sentence: "Use the a.b value, not aXb.",
			target:   "a.b",
			want:     "Use the _________ value, not aXb.",
		},
		{
			name:     "accented answer",
			sentence: "We met at the café near the station every morning.",
			target:   "café",
			want:     "We met at the _________ near the station every morning.",
		},
		{
			name:     "no match inside accented word",
			sentence: "The catégorie of the cat was decided early.",
			target:   "cat",
			want:     "The catégorie of the _________ was decided early.",
		},
		{
			name:     "repeated answer after blank",
			sentence: "Naïve cells meet naïve naïve antigens.",
			target:   "naïve",
			want:     "_________ cells meet antigens.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MakeCloze(tc.sentence, tc.target); got != tc.want {
				t.Fatalf("MakeCloze(%q, %q) = %q, want %q", tc.sentence, tc.target, got, tc.want)
			}
		})
	}
}

func TestWholeWord(t *testing.T) {
	cases := []struct {
		target, text string
		want         bool
	}{
		{"cat", "a cat.", true},
		{"cat", "catégorie", false},
		{"cat", "écat", false},
		{"café", "Café!", true},
		{"café", "cafés", false},
		{"cat", "cat_2", false},
		{"ÉTÉ", "en été", true},
	}
	for _, tc := range cases {
		if got := wholeWord(tc.target).MatchString(tc.text); got != tc.want {
			t.Errorf("wholeWord(%q).MatchString(%q) = %v, want %v", tc.target, tc.text, got, tc.want)
		}
	}
}
