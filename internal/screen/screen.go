// Package screen holds the quiz screen controller: it owns the round state,
// talks to the trivia source and turns every event into the alert the user
// sees. Renderers (terminal UI, line mode) only draw State and forward input.
package screen

import (
	"context"
	"errors"

	"study-quiz/internal/history"
	"study-quiz/internal/logger"
	"study-quiz/internal/opentdb"
	"study-quiz/internal/quiz"
)

const (
	LoadingText  = "Sorular yükleniyor..."
	EmptyText    = "Soru bulunamadı."
	RetryLabel   = "Tekrar Dene"
	RestartLabel = "Tekrar Oyna"
	OKLabel      = "Tamam"

	fetchErrorTitle   = "Hata"
	fetchErrorMessage = "Sorular yüklenemedi."
	correctTitle      = "Doğru!"
	correctMessage    = "Tebrikler, doğru cevap."
	wrongTitle        = "Yanlış!"
	wrongMessagePre   = "Doğru cevap: "
	summaryTitle      = "Çalışma Önerisi"

	defaultFetchAmount = opentdb.DefaultAmount
)

type Fetcher interface {
	FetchQuestions(ctx context.Context, amount int) ([]opentdb.RawQuestion, error)
}

// Recorder stores finished rounds.
type Recorder interface {
	RecordRound(ctx context.Context, summary quiz.RoundSummary) (history.Round, error)
}

type Action int

const (
	// ActionDismiss closes the alert.
	ActionDismiss Action = iota
	// ActionRestart closes the alert and starts a new round.
	ActionRestart
)

type AlertKind int

const (
	AlertFetchError AlertKind = iota
	AlertCorrect
	AlertWrong
	AlertSummary
)

type Alert struct {
	Kind        AlertKind
	Title       string
	Message     string
	ActionLabel string
	Action      Action
}

// Feedback is what one answer produces: the per-answer alert and, when the
// answer ended the round, the recommendation alert behind it.
type Feedback struct {
	Answer  Alert
	Summary *Alert
	Result  quiz.AnswerResult
}

type Screen struct {
	state    quiz.State
	fetcher  Fetcher
	recorder Recorder
	shuffle  quiz.Shuffler
	amount   int
	log      *logger.Logger
	// roundLog carries the current round number on every entry.
	roundLog *logger.Logger
	round    int
}

type Option func(*Screen)

func WithRules(rules quiz.Rules) Option {
	return func(s *Screen) {
		s.state = quiz.NewState(rules)
	}
}

func WithShuffler(shuffle quiz.Shuffler) Option {
	return func(s *Screen) {
		if shuffle != nil {
			s.shuffle = shuffle
		}
	}
}

func WithFetchAmount(amount int) Option {
	return func(s *Screen) {
		if amount > 0 {
			s.amount = amount
		}
	}
}

// WithRecorder stores every finished round. A nil recorder disables history.
func WithRecorder(recorder Recorder) Option {
	return func(s *Screen) {
		s.recorder = recorder
	}
}

func New(fetcher Fetcher, log *logger.Logger, opts ...Option) *Screen {
	if log == nil {
		log = logger.Nop()
	}

	s := &Screen{
		state:   quiz.NewState(quiz.DefaultRules()),
		fetcher: fetcher,
		shuffle: quiz.NewUniformShuffler(nil),
		amount:  defaultFetchAmount,
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.roundLog = log
	return s
}

func (s *Screen) State() quiz.State {
	return s.state
}

// BeginFetch resets the round and shows the loading view. The caller must
// follow up with Load and CompleteFetch.
func (s *Screen) BeginFetch() {
	s.state = s.state.BeginFetch()
	s.round++
	s.roundLog = s.log.With("round", s.round)
}

// Load performs the network request and builds playable questions. It does
// not touch the screen state, so it can run off the UI loop.
func (s *Screen) Load(ctx context.Context) ([]quiz.Question, error) {
	if s.fetcher == nil {
		return nil, errors.New("question fetcher is not configured")
	}

	raw, err := s.fetcher.FetchQuestions(ctx, s.amount)
	if err != nil {
		return nil, err
	}

	questions := quiz.BuildQuestions(raw, s.shuffle)
	if dropped := len(raw) - len(questions); dropped > 0 {
		s.roundLog.Warn("dropped unplayable questions", "dropped", dropped, "received", len(raw))
	}
	return questions, nil
}

// CompleteFetch applies the outcome of Load. A failure yields the error
// alert; an empty but successful batch yields none.
func (s *Screen) CompleteFetch(questions []quiz.Question, err error) (Alert, bool) {
	if err != nil {
		s.roundLog.Error("fetch questions failed", "error", err)
		s.state = s.state.ApplyFetchFailure()
		return Alert{
			Kind:        AlertFetchError,
			Title:       fetchErrorTitle,
			Message:     fetchErrorMessage,
			ActionLabel: OKLabel,
			Action:      ActionDismiss,
		}, true
	}

	s.state = s.state.ApplyQuestions(questions)
	s.roundLog.Info("round ready", "questions", len(s.state.Questions), "phase", s.state.Phase.String())
	return Alert{}, false
}

// FetchQuestions runs a full blocking fetch cycle.
func (s *Screen) FetchQuestions(ctx context.Context) (Alert, bool) {
	s.BeginFetch()
	questions, err := s.Load(ctx)
	return s.CompleteFetch(questions, err)
}

// Retry re-fetches from the empty state.
func (s *Screen) Retry(ctx context.Context) (Alert, bool) {
	return s.FetchQuestions(ctx)
}

// Restart resets score, index and wrong answers and fetches a new batch.
func (s *Screen) Restart(ctx context.Context) (Alert, bool) {
	s.log.Info("restarting round")
	return s.FetchQuestions(ctx)
}

// SubmitAnswer scores choice against the current question.
func (s *Screen) SubmitAnswer(ctx context.Context, choice string) (Feedback, error) {
	next, result, err := s.state.Answer(choice)
	if err != nil {
		return Feedback{}, err
	}
	s.state = next

	feedback := Feedback{Result: result}
	if result.Correct {
		feedback.Answer = Alert{Kind: AlertCorrect, Title: correctTitle, Message: correctMessage, ActionLabel: OKLabel, Action: ActionDismiss}
	} else {
		feedback.Answer = Alert{
			Kind:        AlertWrong,
			Title:       wrongTitle,
			Message:     wrongMessagePre + result.Question.CorrectAnswer,
			ActionLabel: OKLabel,
			Action:      ActionDismiss,
		}
	}

	if result.RoundComplete {
		summary := s.buildRecommendation(ctx)
		feedback.Summary = &summary
	}
	return feedback, nil
}

func (s *Screen) buildRecommendation(ctx context.Context) Alert {
	summary, _ := s.state.Summary()
	s.roundLog.Info("round complete",
		"score", summary.Score,
		"correct", summary.CorrectCount,
		"questions", summary.QuestionCount,
		"weak_category", summary.Recommendation.Category,
	)

	if s.recorder != nil {
		round, err := s.recorder.RecordRound(ctx, summary)
		if err != nil {
			s.roundLog.Warn("record round failed", "error", err)
		} else {
			s.roundLog.Debug("round recorded", "round_id", round.ID.String())
		}
	}

	return Alert{
		Kind:        AlertSummary,
		Title:       summaryTitle,
		Message:     summary.Recommendation.Text,
		ActionLabel: RestartLabel,
		Action:      ActionRestart,
	}
}
