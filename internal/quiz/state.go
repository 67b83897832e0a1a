package quiz

import (
	"errors"
	"fmt"
	"slices"
)

const (
	DefaultRoundSize        = 5
	DefaultPointsPerCorrect = 20
)

var (
	ErrRoundNotActive = errors.New("round is not active")
	ErrUnknownChoice  = errors.New("choice is not offered for the current question")
)

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseEmpty
	PhaseReady
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseEmpty:
		return "empty"
	case PhaseReady:
		return "ready"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

type Rules struct {
	RoundSize        int
	PointsPerCorrect int
}

func DefaultRules() Rules {
	return Rules{
		RoundSize:        DefaultRoundSize,
		PointsPerCorrect: DefaultPointsPerCorrect,
	}
}

func (r Rules) normalized() Rules {
	if r.RoundSize <= 0 {
		r.RoundSize = DefaultRoundSize
	}
	if r.PointsPerCorrect <= 0 {
		r.PointsPerCorrect = DefaultPointsPerCorrect
	}
	return r
}

type WrongAnswer struct {
	QuestionText  string
	CorrectAnswer string
	Category      string
}

// State is the whole round. Update methods take a value receiver and return
// the next State; the receiver is never modified.
//
// While Phase is PhaseReady, CurrentIndex indexes Questions. Once the last
// question is answered the phase moves to PhaseComplete and CurrentIndex stays
// on that question, so Answered() == len(Questions).
type State struct {
	Rules        Rules
	Phase        Phase
	Questions    []Question
	CurrentIndex int
	Score        int
	CorrectCount int
	WrongAnswers []WrongAnswer
}

// AnswerResult describes one submitted answer.
type AnswerResult struct {
	Question      Question
	Choice        string
	Correct       bool
	RoundComplete bool
}

// RoundSummary is the outcome of a completed round.
type RoundSummary struct {
	Score          int
	CorrectCount   int
	QuestionCount  int
	WrongAnswers   []WrongAnswer
	Recommendation Recommendation
}

// NewState returns the initial state: loading, nothing answered.
func NewState(rules Rules) State {
	return State{
		Rules: rules.normalized(),
		Phase: PhaseLoading,
	}
}

func (s State) Loading() bool {
	return s.Phase == PhaseLoading
}

// Answered is the number of answers submitted this round.
func (s State) Answered() int {
	return s.CorrectCount + len(s.WrongAnswers)
}

// Current returns the question on screen.
func (s State) Current() (Question, bool) {
	if s.Phase != PhaseReady && s.Phase != PhaseComplete {
		return Question{}, false
	}
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// BeginFetch resets every round field and enters PhaseLoading. Restart and
// retry both go through here.
func (s State) BeginFetch() State {
	return NewState(s.Rules)
}

// ApplyQuestions stores the first RoundSize questions. An empty batch lands
// in PhaseEmpty.
func (s State) ApplyQuestions(questions []Question) State {
	next := NewState(s.Rules)
	if len(questions) == 0 {
		next.Phase = PhaseEmpty
		return next
	}

	limit := min(len(questions), next.Rules.RoundSize)
	next.Questions = slices.Clone(questions[:limit])
	next.Phase = PhaseReady
	return next
}

// ApplyFetchFailure leaves the question list empty.
func (s State) ApplyFetchFailure() State {
	next := NewState(s.Rules)
	next.Phase = PhaseEmpty
	return next
}

// Answer scores choice against the current question by exact string
// equality and advances the round.
func (s State) Answer(choice string) (State, AnswerResult, error) {
	question, ok := s.Current()
	if !ok || s.Phase != PhaseReady {
		return s, AnswerResult{}, ErrRoundNotActive
	}

	if question.IndexOf(choice) < 0 {
		return s, AnswerResult{}, fmt.Errorf("%w: %q", ErrUnknownChoice, choice)
	}

	next := s
	result := AnswerResult{
		Question: question,
		Choice:   choice,
		Correct:  choice == question.CorrectAnswer,
	}

	if result.Correct {
		next.Score += next.Rules.PointsPerCorrect
		next.CorrectCount++
	} else {
		next.WrongAnswers = append(slices.Clip(s.WrongAnswers), WrongAnswer{
			QuestionText:  question.Text,
			CorrectAnswer: question.CorrectAnswer,
			Category:      question.Category,
		})
	}

	if next.CurrentIndex < len(next.Questions)-1 {
		next.CurrentIndex++
	} else {
		next.Phase = PhaseComplete
		result.RoundComplete = true
	}

	return next, result, nil
}

// Summary reports the finished round. ok is false until PhaseComplete.
func (s State) Summary() (RoundSummary, bool) {
	if s.Phase != PhaseComplete {
		return RoundSummary{}, false
	}
	return RoundSummary{
		Score:          s.Score,
		CorrectCount:   s.CorrectCount,
		QuestionCount:  len(s.Questions),
		WrongAnswers:   slices.Clone(s.WrongAnswers),
		Recommendation: BuildRecommendation(s.WrongAnswers),
	}, true
}
