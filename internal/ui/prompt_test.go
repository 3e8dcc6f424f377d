package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	tea "github.com/charmbracelet/bubbletea"
)

func typeString(m *PathModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestPathModel_Enter(t *testing.T) {
	m := NewPathModel()
	typeString(m, "  ward7/log.txt ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter did not return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("enter command did not quit")
	}
	if m.Value() != "ward7/log.txt" {
		t.Fatalf("Value() = %q, want %q", m.Value(), "ward7/log.txt")
	}
	if m.Canceled() {
		t.Fatalf("Canceled() = true after enter")
	}
	if m.View() != "" {
		t.Fatalf("View() = %q after enter, want empty", m.View())
	}
}

func TestPathModel_Escape(t *testing.T) {
	m := NewPathModel()
	typeString(m, "abc")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if !m.Canceled() {
		t.Fatalf("Canceled() = false after esc")
	}
	if m.Value() != "" {
		t.Fatalf("Value() = %q after esc, want empty", m.Value())
	}
}

func TestPathModel_View(t *testing.T) {
	m := NewPathModel()
	if !strings.Contains(m.View(), "press Enter to skip") {
		t.Fatalf("View() = %q, want the prompt text", m.View())
	}
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "path", input: "  medical_log_sample.txt  \n", want: "medical_log_sample.txt"},
		{name: "empty line", input: "\n", want: ""},
		{name: "eof", input: "", want: ""},
		{name: "no newline", input: "a.txt", want: "a.txt"},
		{name: "only first line", input: "a.txt\nb.txt\n", want: "a.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := ReadLine(testContext(t), strings.NewReader(tt.input), &out)
			if err != nil {
				t.Fatalf("ReadLine() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadLine() = %q, want %q", got, tt.want)
			}
			if !strings.HasPrefix(out.String(), PromptText) {
				t.Errorf("prompt not printed: %q", out.String())
			}
		})
	}
}

func TestReadLine_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := ReadLine(testContext(t), iotest.ErrReader(boom), &bytes.Buffer{})
	if !errors.Is(err, boom) {
		t.Fatalf("ReadLine() error = %v, want it to wrap boom", err)
	}
}

func TestReadLine_Canceled(t *testing.T) {
	// stdin that never delivers a line, like a pipe held open by its writer
	in, w := io.Pipe()
	t.Cleanup(func() { w.Close() })

	ctx, cancel := context.WithCancel(testContext(t))
	result := make(chan error, 1)
	go func() {
		_, err := ReadLine(ctx, in, io.Discard)
		result <- err
	}()

	cancel()
	if err := <-result; !errors.Is(err, ErrCanceled) {
		t.Fatalf("ReadLine() error = %v, want ErrCanceled", err)
	}
}

func TestReadLine_AlreadyCanceled(t *testing.T) {
	in, w := io.Pipe()
	t.Cleanup(func() { w.Close() })

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	var out bytes.Buffer
	if _, err := ReadLine(ctx, in, &out); !errors.Is(err, ErrCanceled) {
		t.Fatalf("ReadLine() error = %v, want ErrCanceled", err)
	}
	if !strings.HasPrefix(out.String(), PromptText) {
		t.Fatalf("prompt not printed: %q", out.String())
	}
}
