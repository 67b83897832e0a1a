package quiz

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func sampleRound(categories ...string) []Question {
	questions := make([]Question, 0, len(categories))
	for idx, category := range categories {
		correct := fmt.Sprintf("right-%d", idx)
		questions = append(questions, Question{
			Text:          fmt.Sprintf("Question %d", idx+1),
			CorrectAnswer: correct,
			Category:      category,
			Choices:       []string{"wrong-a", correct, "wrong-b", "wrong-c"},
		})
	}
	return questions
}

func readyState(t *testing.T, categories ...string) State {
	t.Helper()
	state := NewState(DefaultRules()).ApplyQuestions(sampleRound(categories...))
	if state.Phase != PhaseReady {
		t.Fatalf("expected ready phase, got %s", state.Phase)
	}
	return state
}

func mustAnswer(t *testing.T, state State, correct bool) (State, AnswerResult) {
	t.Helper()
	question, ok := state.Current()
	if !ok {
		t.Fatalf("no current question in phase %s", state.Phase)
	}
	choice := question.CorrectAnswer
	if !correct {
		choice = "wrong-a"
	}
	next, result, err := state.Answer(choice)
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	return next, result
}

func TestNewStateStartsLoading(t *testing.T) {
	state := NewState(Rules{})
	if !state.Loading() {
		t.Fatalf("expected loading phase, got %s", state.Phase)
	}
	if state.Rules != DefaultRules() {
		t.Fatalf("zero rules not normalized: %+v", state.Rules)
	}
}

func TestApplyQuestionsKeepsFirstRoundSize(t *testing.T) {
	questions := sampleRound("a", "b", "c", "d", "e", "f", "g", "h", "i", "j")
	state := NewState(DefaultRules()).ApplyQuestions(questions)

	if len(state.Questions) != DefaultRoundSize {
		t.Fatalf("expected %d questions, got %d", DefaultRoundSize, len(state.Questions))
	}
	for idx := range state.Questions {
		if state.Questions[idx].Text != questions[idx].Text {
			t.Fatalf("question %d out of order: %q", idx, state.Questions[idx].Text)
		}
	}
}

func TestApplyQuestionsEmptyBatchIsEmptyPhase(t *testing.T) {
	state := NewState(DefaultRules()).ApplyQuestions(nil)
	if state.Phase != PhaseEmpty {
		t.Fatalf("expected empty phase, got %s", state.Phase)
	}
	if _, ok := state.Current(); ok {
		t.Fatalf("empty state must not expose a current question")
	}
}

func TestShortBatchPlaysEveryQuestion(t *testing.T) {
	state := readyState(t, "a", "b")

	state, result := mustAnswer(t, state, true)
	if result.RoundComplete {
		t.Fatalf("round completed after first of two questions")
	}
	state, result = mustAnswer(t, state, false)
	if !result.RoundComplete || state.Phase != PhaseComplete {
		t.Fatalf("expected round to complete after two questions, phase=%s", state.Phase)
	}
}

func TestScoreIsPointsPerCorrectAnswer(t *testing.T) {
	pattern := []bool{true, false, true, true, false}
	state := readyState(t, "a", "b", "c", "d", "e")

	correct := 0
	for idx, answerCorrect := range pattern {
		var result AnswerResult
		state, result = mustAnswer(t, state, answerCorrect)
		if result.Correct != answerCorrect {
			t.Fatalf("answer %d correct=%t, want %t", idx, result.Correct, answerCorrect)
		}
		if answerCorrect {
			correct++
		}
		if state.Score != correct*DefaultPointsPerCorrect {
			t.Fatalf("score after %d answers = %d, want %d", idx+1, state.Score, correct*DefaultPointsPerCorrect)
		}
		if state.Answered() != idx+1 {
			t.Fatalf("answered = %d, want %d", state.Answered(), idx+1)
		}
		if state.Phase == PhaseReady && state.Answered() != state.CurrentIndex {
			t.Fatalf("answered %d != index %d mid-round", state.Answered(), state.CurrentIndex)
		}
	}

	if len(state.WrongAnswers) != DefaultRoundSize-correct {
		t.Fatalf("wrong answers = %d, want %d", len(state.WrongAnswers), DefaultRoundSize-correct)
	}
	if state.CurrentIndex != DefaultRoundSize-1 {
		t.Fatalf("index after completion = %d, want %d", state.CurrentIndex, DefaultRoundSize-1)
	}
}

func TestAllCorrectRoundHasNoCategory(t *testing.T) {
	state := readyState(t, "Science", "History", "Art", "Music", "Sports")
	for range state.Questions {
		state, _ = mustAnswer(t, state, true)
	}

	if state.Score != 100 {
		t.Fatalf("score = %d, want 100", state.Score)
	}
	if len(state.WrongAnswers) != 0 {
		t.Fatalf("expected no wrong answers, got %+v", state.WrongAnswers)
	}

	summary, ok := state.Summary()
	if !ok {
		t.Fatalf("expected summary after completed round")
	}
	if summary.Recommendation.Category != "" {
		t.Fatalf("expected no weakest category, got %q", summary.Recommendation.Category)
	}
}

func TestWrongAnswerRecordsQuestionDetails(t *testing.T) {
	state := readyState(t, "History", "b", "c", "d", "e")
	state, result := mustAnswer(t, state, false)

	if result.Correct {
		t.Fatalf("expected incorrect result")
	}
	want := WrongAnswer{QuestionText: "Question 1", CorrectAnswer: "right-0", Category: "History"}
	if len(state.WrongAnswers) != 1 || state.WrongAnswers[0] != want {
		t.Fatalf("wrong answers = %+v, want [%+v]", state.WrongAnswers, want)
	}
}

func TestAnswerDoesNotMutateReceiver(t *testing.T) {
	state := readyState(t, "a", "b", "c")
	before := state

	next, _ := mustAnswer(t, state, false)
	_, _ = mustAnswer(t, state, false)

	if state.CurrentIndex != before.CurrentIndex || len(state.WrongAnswers) != 0 {
		t.Fatalf("receiver mutated: %+v", state)
	}
	if len(next.WrongAnswers) != 1 {
		t.Fatalf("expected one wrong answer on next state, got %d", len(next.WrongAnswers))
	}
}

func TestAnswerOutsideReadyPhaseFails(t *testing.T) {
	tests := []struct {
		name  string
		state State
	}{
		{name: "loading", state: NewState(DefaultRules())},
		{name: "empty", state: NewState(DefaultRules()).ApplyFetchFailure()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := tc.state.Answer("anything"); !errors.Is(err, ErrRoundNotActive) {
				t.Fatalf("expected ErrRoundNotActive, got %v", err)
			}
		})
	}

	t.Run("complete", func(t *testing.T) {
		state := readyState(t, "only")
		state, _ = mustAnswer(t, state, true)
		if _, _, err := state.Answer("right-0"); !errors.Is(err, ErrRoundNotActive) {
			t.Fatalf("expected ErrRoundNotActive, got %v", err)
		}
	})
}

func TestAnswerRejectsChoiceNotOffered(t *testing.T) {
	state := readyState(t, "Science", "History")

	next, _, err := state.Answer("right-1")
	if !errors.Is(err, ErrUnknownChoice) {
		t.Fatalf("expected ErrUnknownChoice, got %v", err)
	}
	if next.CurrentIndex != 0 || next.Score != 0 || len(next.WrongAnswers) != 0 {
		t.Fatalf("rejected choice changed the round: %+v", next)
	}
}

func TestBeginFetchResetsRound(t *testing.T) {
	state := readyState(t, "a", "b", "c", "d", "e")
	state, _ = mustAnswer(t, state, true)
	state, _ = mustAnswer(t, state, false)

	state = state.BeginFetch()
	if !state.Loading() || state.Score != 0 || state.CurrentIndex != 0 || len(state.WrongAnswers) != 0 || len(state.Questions) != 0 {
		t.Fatalf("state not reset: %+v", state)
	}
}

func TestSummaryIncludesFinalWrongAnswer(t *testing.T) {
	state := readyState(t, "Art", "Art", "Science", "Science", "Science")
	for idx := range state.Questions {
		state, _ = mustAnswer(t, state, idx < 2)
	}

	summary, ok := state.Summary()
	if !ok {
		t.Fatalf("expected summary")
	}
	if summary.Recommendation.Category != "Science" || summary.Recommendation.Misses != 3 {
		t.Fatalf("unexpected recommendation %+v", summary.Recommendation)
	}
	if !strings.HasPrefix(summary.Recommendation.Text, "Daha fazla çalışmanız gereken konu: Science") {
		t.Fatalf("unexpected text %q", summary.Recommendation.Text)
	}
	if summary.QuestionCount != 5 || summary.CorrectCount != 2 || summary.Score != 40 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseComplete.String() != "complete" || Phase(42).String() != "unknown" {
		t.Fatalf("unexpected phase names")
	}
}
