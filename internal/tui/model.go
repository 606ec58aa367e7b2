// Package tui provides the interactive book search screen.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/bookdice/internal/book"
	"github.com/lepinkainen/bookdice/internal/request"
)

const defaultWidth = 80

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

// FetchFunc looks up one random book for a subject.
type FetchFunc func(ctx context.Context, subject string) (*book.Record, error)

// Recorder receives every book that was shown to the user.
type Recorder interface {
	Record(ctx context.Context, subject string, record book.Record) error
}

// Options configures the search screen.
type Options struct {
	// Subject pre-fills the input
	Subject string
	// Fetch performs the lookup; required
	Fetch FetchFunc
	// Recorder is optional
	Recorder Recorder
}

// bookFetchedMsg carries the outcome of one fetch back into the update loop.
type bookFetchedMsg struct {
	seq     uint64
	subject string
	record  *book.Record
	err     error
}

type model struct {
	ctx      context.Context
	input    textinput.Model
	spinner  spinner.Model
	tracker  *request.Tracker
	fetch    FetchFunc
	recorder Recorder
	width    int
}

func newModel(ctx context.Context, opts Options) *model {
	input := textinput.New()
	input.Placeholder = "Subject"
	input.Prompt = "> "
	input.CharLimit = 200
	input.Width = 40
	input.SetValue(opts.Subject)
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return &model{
		ctx:      ctx,
		input:    input,
		spinner:  s,
		tracker:  request.NewTracker(),
		fetch:    opts.Fetch,
		recorder: opts.Recorder,
		width:    defaultWidth,
	}
}

func (m *model) Init() tea.Cmd { return textinput.Blink }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.search()
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.tracker.Reset()
		}
		return m, cmd

	case bookFetchedMsg:
		return m, m.settle(msg)

	case spinner.TickMsg:
		if !m.tracker.State().Fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = min(max(msg.Width-30, 10), 40)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// search is the search button: it does nothing while a request is running.
func (m *model) search() tea.Cmd {
	if m.tracker.State().Fetching {
		return nil
	}

	subject := m.input.Value()
	seq := m.tracker.Start()
	slog.Info("Searching for a random book", "subject", subject, "seq", seq)

	return tea.Batch(m.spinner.Tick, fetchCmd(m.ctx, m.fetch, seq, subject))
}

func fetchCmd(ctx context.Context, fetch FetchFunc, seq uint64, subject string) tea.Cmd {
	return func() tea.Msg {
		record, err := fetch(ctx, subject)
		return bookFetchedMsg{seq: seq, subject: subject, record: record, err: err}
	}
}

func (m *model) settle(msg bookFetchedMsg) tea.Cmd {
	if msg.err == nil && msg.record == nil {
		msg.err = fmt.Errorf("no book returned for %q", msg.subject)
	}

	if msg.err != nil {
		if m.tracker.Fail(msg.seq) {
			slog.Warn("Book request failed", "subject", msg.subject, "error", msg.err)
		}
		return nil
	}

	if !m.tracker.Complete(msg.seq, msg.record) {
		return nil
	}
	slog.Info("Picked book", "subject", msg.subject, "title", msg.record.Title)

	if m.recorder == nil {
		return nil
	}
	ctx, recorder, subject, record := m.ctx, m.recorder, msg.subject, *msg.record
	return func() tea.Msg {
		if err := recorder.Record(ctx, subject, record); err != nil {
			slog.Warn("Failed to record pick", "subject", subject, "error", err)
		}
		return nil
	}
}

// Run shows the search screen until the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Fetch == nil {
		return fmt.Errorf("tui: no fetch function configured")
	}

	_, err := runProgram(newModel(ctx, opts))
	return err
}
