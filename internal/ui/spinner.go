package ui

// spinner.go provides a blocking spinner for long-running archive scans.

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// actionDoneMsg signals the action completed
type actionDoneMsg struct {
	err error
}

// blockingSpinnerModel runs a spinner while an action executes
type blockingSpinnerModel struct {
	spinner    spinner.Model
	title      string
	ctx        context.Context
	cancel     context.CancelFunc
	action     func(ctx context.Context) error
	done       bool
	cancelling bool
	err        error
}

// RunWithSpinner executes an action while displaying a spinner.
// ctrl+c cancels the action's context and waits for it to return, so a scan
// stops cleanly at the next year boundary.
//
// Example:
//
//	var res models.ScanResult
//	err := RunWithSpinner(ctx, "Scanning by decade...", func(ctx context.Context) error {
//	    var scanErr error
//	    res, scanErr = scanner.MostRecent(ctx, month, day, filters)
//	    return scanErr
//	})
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := blockingSpinnerModel{
		spinner: NewAppSpinner(),
		title:   title,
		ctx:     ctx,
		cancel:  cancel,
		action:  action,
	}

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("spinner program error: %w", err)
	}

	final := finalModel.(blockingSpinnerModel)
	return final.err
}

func (m blockingSpinnerModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.runAction(),
	)
}

func (m blockingSpinnerModel) runAction() tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: m.action(m.ctx)}
	}
}

func (m blockingSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// ctrl+c asks the action to stop; we still wait for actionDoneMsg
		if msg.String() == "ctrl+c" && !m.cancelling {
			m.cancelling = true
			m.cancel()
		}
	}

	return m, nil
}

func (m blockingSpinnerModel) View() string {
	if m.done {
		return ""
	}
	if m.cancelling {
		return fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render("Stopping after the current request..."))
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), RenderNormal(m.title))
}
