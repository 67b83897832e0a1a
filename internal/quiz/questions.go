package quiz

import (
	"html"

	"study-quiz/internal/opentdb"
)

// ChoiceCount is the number of answer choices a playable question carries.
const ChoiceCount = 4

// Question is a decoded, ready-to-play trivia question. Choices holds the
// correct answer exactly once.
type Question struct {
	Text          string
	CorrectAnswer string
	Category      string
	Choices       []string
}

// IndexOf returns the position of choice in q.Choices, or -1.
func (q Question) IndexOf(choice string) int {
	for idx, candidate := range q.Choices {
		if candidate == choice {
			return idx
		}
	}
	return -1
}

// BuildQuestions decodes and shuffles raw API questions. Questions that
// cannot produce ChoiceCount distinct choices are dropped.
func BuildQuestions(raw []opentdb.RawQuestion, shuffle Shuffler) []Question {
	if shuffle == nil {
		shuffle = NewUniformShuffler(nil)
	}

	questions := make([]Question, 0, len(raw))
	for _, item := range raw {
		question, ok := buildQuestion(item, shuffle)
		if !ok {
			continue
		}
		questions = append(questions, question)
	}
	return questions
}

func buildQuestion(raw opentdb.RawQuestion, shuffle Shuffler) (Question, bool) {
	if len(raw.IncorrectAnswers) != ChoiceCount-1 {
		return Question{}, false
	}

	correct := html.UnescapeString(raw.CorrectAnswer)
	choices := make([]string, 0, ChoiceCount)
	seen := make(map[string]struct{}, ChoiceCount)
	for _, incorrect := range raw.IncorrectAnswers {
		choices = append(choices, html.UnescapeString(incorrect))
	}
	choices = append(choices, correct)

	for _, choice := range choices {
		if _, dup := seen[choice]; dup {
			return Question{}, false
		}
		seen[choice] = struct{}{}
	}

	shuffle(choices)

	return Question{
		Text:          html.UnescapeString(raw.Question),
		CorrectAnswer: correct,
		Category:      html.UnescapeString(raw.Category),
		Choices:       choices,
	}, true
}
