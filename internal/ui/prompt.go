package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PromptText is the question asked for the optional path
const PromptText = "Enter medical log file path (or press Enter to skip): "

// ErrCanceled is returned when the user aborts the prompt
var ErrCanceled = errors.New("prompt canceled")

// PathModel asks for a single file path
type PathModel struct {
	input    textinput.Model
	value    string
	done     bool
	canceled bool
}

// NewPathModel creates the prompt model
func NewPathModel() *PathModel {
	ti := textinput.New()
	ti.Prompt = PromptText
	ti.Placeholder = "medical_log_sample.txt"
	ti.CharLimit = 4096
	ti.Focus()

	return &PathModel{input: ti}
}

// Init implements tea.Model
func (m *PathModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *PathModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			m.value = strings.TrimSpace(m.input.Value())
			m.done = true
			m.input.Blur()
			return m, tea.Quit

		case "esc", "ctrl+c":
			m.canceled = true
			m.input.Blur()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *PathModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return m.input.View() + "\n" + helpStyle.Render("enter: read file • esc: skip") + "\n"
}

// Value returns the entered path, trimmed
func (m *PathModel) Value() string {
	return m.value
}

// Canceled reports whether the user aborted
func (m *PathModel) Canceled() bool {
	return m.canceled
}

// RunPrompt shows the interactive prompt on a terminal and returns the path
func RunPrompt(ctx context.Context, in io.Reader, out io.Writer) (string, error) {
	model := NewPathModel()
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return "", ErrCanceled
		}
		return "", fmt.Errorf("run prompt: %w", err)
	}

	pm, ok := final.(*PathModel)
	if !ok || pm.Canceled() {
		return "", ErrCanceled
	}
	return pm.Value(), nil
}

// ReadLine prints the prompt and reads one line from in. End of input
// counts as an empty answer. Canceling ctx abandons the read and returns
// ErrCanceled; the blocked read is left to finish on its own.
func ReadLine(ctx context.Context, in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, PromptText)

	type answer struct {
		line string
		err  error
	}
	done := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		done <- answer{line, err}
	}()

	var a answer
	select {
	case <-ctx.Done():
		fmt.Fprintln(out)
		return "", ErrCanceled
	case a = <-done:
	}

	if a.err != nil && !errors.Is(a.err, io.EOF) {
		return "", fmt.Errorf("read path: %w", a.err)
	}
	if a.line == "" {
		// keep the next output off the prompt line
		fmt.Fprintln(out)
	}
	return strings.TrimSpace(a.line), nil
}
