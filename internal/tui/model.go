package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"study-quiz/internal/quiz"
	"study-quiz/internal/screen"
)

type fetchedMsg struct {
	questions []quiz.Question
	err       error
}

// Model renders a screen.Screen with bubbletea. Alerts are modal: while one
// is queued every key goes to it.
type Model struct {
	ctx     context.Context
	screen  *screen.Screen
	spinner spinner.Model
	cursor  int
	alerts  []screen.Alert
	width   int
}

func New(ctx context.Context, scr *screen.Screen) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	return Model{
		ctx:     ctx,
		screen:  scr,
		spinner: s,
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, scr *screen.Screen) error {
	_, err := tea.NewProgram(New(ctx, scr), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	m.screen.BeginFetch()
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m Model) fetchCmd() tea.Cmd {
	scr, ctx := m.screen, m.ctx
	return func() tea.Msg {
		questions, err := scr.Load(ctx)
		return fetchedMsg{questions: questions, err: err}
	}
}

func (m Model) startFetch() (Model, tea.Cmd) {
	m.screen.BeginFetch()
	m.cursor = 0
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case fetchedMsg:
		if alert, shown := m.screen.CompleteFetch(msg.questions, msg.err); shown {
			m.alerts = append(m.alerts, alert)
		}
		m.cursor = 0
		return m, nil

	case spinner.TickMsg:
		if !m.screen.State().Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if len(m.alerts) > 0 {
		alert := m.alerts[0]
		switch key {
		case "enter", " ":
		case "esc":
			// The restart alert has a single action.
			if alert.Action == screen.ActionRestart {
				return m, nil
			}
		default:
			return m, nil
		}
		m.alerts = m.alerts[1:]
		if alert.Action == screen.ActionRestart {
			return m.startFetch()
		}
		return m, nil
	}

	if key == "q" {
		return m, tea.Quit
	}

	state := m.screen.State()
	switch state.Phase {
	case quiz.PhaseEmpty:
		if key == "r" || key == "enter" {
			return m.startFetch()
		}

	case quiz.PhaseReady:
		question, _ := state.Current()
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(question.Choices)-1 {
				m.cursor++
			}
		case "enter":
			return m.submit(question.Choices[m.cursor])
		case "1", "2", "3", "4":
			idx := int(key[0] - '1')
			if idx < len(question.Choices) {
				return m.submit(question.Choices[idx])
			}
		}
	}
	return m, nil
}

func (m Model) submit(choice string) (tea.Model, tea.Cmd) {
	feedback, err := m.screen.SubmitAnswer(m.ctx, choice)
	if err != nil {
		return m, nil
	}
	m.alerts = append(m.alerts, feedback.Answer)
	if feedback.Summary != nil {
		m.alerts = append(m.alerts, *feedback.Summary)
	}
	m.cursor = 0
	return m, nil
}

func (m Model) View() string {
	if len(m.alerts) > 0 {
		return m.renderAlert(m.alerts[0])
	}

	state := m.screen.State()
	switch state.Phase {
	case quiz.PhaseLoading:
		return fmt.Sprintf("\n  %s %s\n", m.spinner.View(), screen.LoadingText)
	case quiz.PhaseEmpty:
		return fmt.Sprintf("\n  %s\n\n  %s\n\n  %s\n",
			screen.EmptyText,
			styleButton.Render(screen.RetryLabel),
			styleSubtle.Render("r: tekrar dene • q: çıkış"),
		)
	default:
		return m.renderQuestion(state)
	}
}

func (m Model) renderQuestion(state quiz.State) string {
	question, ok := state.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		styleHeader.Render(fmt.Sprintf("Puan: %d", state.Score)),
		styleProgress.Render(fmt.Sprintf("Soru: %d/%d", state.CurrentIndex+1, len(state.Questions))),
	)
	b.WriteString("\n" + header + "\n\n")

	box := styleQuestion
	if m.width > 8 {
		box = box.Width(m.width - 4)
	}
	b.WriteString(box.Render(question.Text) + "\n")

	for idx, choice := range question.Choices {
		line := fmt.Sprintf("%d. %s", idx+1, choice)
		if idx == m.cursor {
			b.WriteString(styleSelected.Render("> "+line) + "\n")
		} else {
			b.WriteString(styleChoice.Render(line) + "\n")
		}
	}

	b.WriteString("\n" + styleSubtle.Render("↑/↓ seç • enter/1-4 cevapla • q çıkış") + "\n")
	return b.String()
}

func (m Model) renderAlert(alert screen.Alert) string {
	title := alert.Title
	switch alert.Kind {
	case screen.AlertCorrect:
		title = styleCorrect.Render(title)
	case screen.AlertWrong:
		title = styleIncorrect.Render(title)
	default:
		title = styleAlertHead.Render(title)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		alert.Message,
		"",
		styleButton.Render(alert.ActionLabel),
	)
	return "\n" + styleAlertBox.Render(body) + "\n"
}
