package quiz

import (
	"errors"
	"math/rand"
	"testing"

	"study-quiz/internal/opentdb"
)

func rawQuestion(text, correct, category string, incorrect ...string) opentdb.RawQuestion {
	return opentdb.RawQuestion{
		Type:             opentdb.TypeMultiple,
		Category:         category,
		Question:         text,
		CorrectAnswer:    correct,
		IncorrectAnswers: incorrect,
	}
}

func TestBuildQuestionsUnescapesEveryTextField(t *testing.T) {
	raw := []opentdb.RawQuestion{
		rawQuestion("2 &amp; 2 = ?", "4 &lt; 5", "Science &amp; Nature", "&quot;1&quot;", "2", "3"),
	}

	questions := BuildQuestions(raw, NewUniformShuffler(rand.New(rand.NewSource(1))))
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	item := questions[0]
	if item.Text != "2 & 2 = ?" {
		t.Fatalf("question not unescaped, got %q", item.Text)
	}
	if item.CorrectAnswer != "4 < 5" {
		t.Fatalf("correct answer not unescaped, got %q", item.CorrectAnswer)
	}
	if item.Category != "Science & Nature" {
		t.Fatalf("category not unescaped, got %q", item.Category)
	}
	if item.IndexOf(`"1"`) < 0 {
		t.Fatalf("incorrect answer not unescaped: %+v", item.Choices)
	}
}

func TestBuildQuestionsChoicesContainCorrectAnswerOnce(t *testing.T) {
	raw := []opentdb.RawQuestion{
		rawQuestion("Q1", "Paris", "Geography", "Berlin", "Rome", "Madrid"),
		rawQuestion("Q2", "1492", "History", "1066", "1815", "1914"),
		rawQuestion("Q3", "H&#039;O", "Science", "CO", "NaCl", "O"),
	}

	shufflers := map[string]Shuffler{
		ShuffleUniform: NewUniformShuffler(rand.New(rand.NewSource(7))),
		ShuffleBiased:  NewBiasedShuffler(rand.New(rand.NewSource(7))),
	}

	for name, shuffle := range shufflers {
		t.Run(name, func(t *testing.T) {
			for round := 0; round < 50; round++ {
				for _, question := range BuildQuestions(raw, shuffle) {
					if len(question.Choices) != ChoiceCount {
						t.Fatalf("expected %d choices, got %d", ChoiceCount, len(question.Choices))
					}
					hits := 0
					for _, choice := range question.Choices {
						if choice == question.CorrectAnswer {
							hits++
						}
					}
					if hits != 1 {
						t.Fatalf("correct answer %q appears %d times in %v", question.CorrectAnswer, hits, question.Choices)
					}
				}
			}
		})
	}
}

func TestBuildQuestionsDropsMalformedQuestions(t *testing.T) {
	raw := []opentdb.RawQuestion{
		rawQuestion("True or false?", "True", "General", "False"),
		rawQuestion("Duplicate", "A", "General", "A", "B", "C"),
		rawQuestion("Encoded duplicate", "&amp;", "General", "&", "B", "C"),
		rawQuestion("Fine", "A", "General", "B", "C", "D"),
	}

	questions := BuildQuestions(raw, nil)
	if len(questions) != 1 {
		t.Fatalf("expected only the well-formed question, got %d", len(questions))
	}
	if questions[0].Text != "Fine" {
		t.Fatalf("unexpected survivor %q", questions[0].Text)
	}
}

func TestNewShuffler(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		wantErr bool
	}{
		{name: "empty defaults to uniform", mode: ""},
		{name: "uniform", mode: "uniform"},
		{name: "biased mixed case", mode: " Biased "},
		{name: "unknown", mode: "bogo", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			shuffle, err := NewShuffler(tc.mode, rand.New(rand.NewSource(3)))
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownShuffle) {
					t.Fatalf("expected ErrUnknownShuffle, got %v", err)
				}
				return
			}
			if err != nil || shuffle == nil {
				t.Fatalf("NewShuffler(%q) = (%v, %v)", tc.mode, shuffle, err)
			}
		})
	}
}

func TestShufflersKeepTheSameElements(t *testing.T) {
	for _, shuffle := range []Shuffler{
		NewUniformShuffler(rand.New(rand.NewSource(11))),
		NewBiasedShuffler(rand.New(rand.NewSource(11))),
	} {
		choices := []string{"a", "b", "c", "d"}
		shuffle(choices)

		seen := map[string]bool{}
		for _, choice := range choices {
			seen[choice] = true
		}
		if len(seen) != 4 || !seen["a"] || !seen["b"] || !seen["c"] || !seen["d"] {
			t.Fatalf("shuffle lost elements: %v", choices)
		}
	}
}
