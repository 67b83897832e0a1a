package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"study-quiz/internal/quiz"
	"study-quiz/internal/screen"
)

var errQuit = errors.New("quit")

// Run plays rounds on a line-oriented terminal until the input ends or the
// user declines a restart.
func Run(ctx context.Context, in io.Reader, out io.Writer, scr *screen.Screen) error {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, screen.LoadingText)
	if alert, shown := scr.FetchQuestions(ctx); shown {
		printAlert(out, alert)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch scr.State().Phase {
		case quiz.PhaseEmpty:
			err = promptRetry(ctx, reader, out, scr)
		case quiz.PhaseReady:
			err = playQuestion(ctx, reader, out, scr)
		default:
			return nil
		}

		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func promptRetry(ctx context.Context, reader *bufio.Reader, out io.Writer, scr *screen.Screen) error {
	fmt.Fprintf(out, "\n%s\n[R] %s  [Q] Çıkış\n", screen.EmptyText, screen.RetryLabel)

	line, err := readLine(reader)
	if err != nil {
		return errQuit
	}
	switch line {
	case "R", "":
		fmt.Fprintln(out, screen.LoadingText)
		if alert, shown := scr.Retry(ctx); shown {
			printAlert(out, alert)
		}
		return nil
	case "Q":
		return errQuit
	default:
		return nil
	}
}

func playQuestion(ctx context.Context, reader *bufio.Reader, out io.Writer, scr *screen.Screen) error {
	state := scr.State()
	question, _ := state.Current()
	printQuestion(out, state, question)

	idx, ok := getAnswer(reader, out, len(question.Choices))
	if !ok {
		return errQuit
	}

	feedback, err := scr.SubmitAnswer(ctx, question.Choices[idx])
	if err != nil {
		return err
	}
	printAlert(out, feedback.Answer)

	if feedback.Summary == nil {
		return nil
	}

	summary, _ := scr.State().Summary()
	fmt.Fprintf(out, "\nPuan: %d (%d/%d doğru)\n", summary.Score, summary.CorrectCount, summary.QuestionCount)
	printAlert(out, *feedback.Summary)

	fmt.Fprintf(out, "[E] %s  [H] Çıkış\n", feedback.Summary.ActionLabel)
	line, err := readLine(reader)
	if err != nil || (line != "E" && line != "") {
		return errQuit
	}

	fmt.Fprintln(out, screen.LoadingText)
	if alert, shown := scr.Restart(ctx); shown {
		printAlert(out, alert)
	}
	return nil
}

func printQuestion(out io.Writer, state quiz.State, question quiz.Question) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Puan: %d  Soru: %d/%d\n\n", state.Score, state.CurrentIndex+1, len(state.Questions))
	fmt.Fprintf(out, "%s\n\n", question.Text)
	for idx, choice := range question.Choices {
		fmt.Fprintf(out, "%c. %s\n", 'A'+idx, choice)
	}
	fmt.Fprintln(out)
}

func printAlert(out io.Writer, alert screen.Alert) {
	fmt.Fprintf(out, "\n== %s ==\n%s\n", alert.Title, alert.Message)
}

func getAnswer(reader *bufio.Reader, out io.Writer, choiceCount int) (int, bool) {
	if choiceCount < 1 {
		return -1, false
	}

	maxLetter := byte('A' + choiceCount - 1)

	for {
		answer, err := readLine(reader)
		if err != nil {
			return -1, false
		}

		if len(answer) == 1 {
			letter := answer[0]
			if letter >= 'A' && letter <= maxLetter {
				return int(letter - 'A'), true
			}
		}

		fmt.Fprintf(out, "\nGeçersiz giriş. Lütfen A-%c arasında bir harf girin.\n", maxLetter)
	}
}

// readLine returns the next upper-cased, trimmed line. A final line without
// a trailing newline is still returned.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.ToUpper(strings.TrimSpace(line)), nil
}
