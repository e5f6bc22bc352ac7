package nlp

import (
	"context"
	"testing"
)

func TestProseAnnotator_Annotate(t *testing.T) {
	a, err := NewProseAnnotator()
	if err != nil {
		t.Fatalf("new annotator: %v", err)
	}
	doc, err := a.Annotate(context.Background(), "The cats sat on the mat. The dog slept in the garden.")
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	if len(doc.Sentences) != 2 {
		t.Fatalf("sentences = %d, want 2", len(doc.Sentences))
	}

	var cats *Token
	for i, tok := range doc.Sentences[0].Tokens {
		if tok.Text == "cats" {
			cats = &doc.Sentences[0].Tokens[i]
		}
	}
	if cats == nil {
		t.Fatalf("token cats missing: %+v", doc.Sentences[0].Tokens)
	}
	if !cats.Noun || !cats.Alpha {
		t.Fatalf("cats should be an alphabetic noun: %+v", *cats)
	}
	if cats.Lemma != "cat" {
		t.Fatalf("lemma = %q, want cat", cats.Lemma)
	}
}

func TestProseAnnotator_Cancelled(t *testing.T) {
	a, err := NewProseAnnotator()
	if err != nil {
		t.Fatalf("new annotator: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.Annotate(ctx, "A sentence about trees. Another one about rivers."); err == nil {
		t.Fatal("expected context error")
	}
}
