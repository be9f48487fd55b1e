package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"decomment/internal/driver"
	"decomment/internal/ui"
)

type cleanOutcome struct {
	results []driver.Result
	err     error
}

// runCleanWithUI cleans files in the background while a progress view runs in
// the foreground. Quitting the view cancels the remaining work.
func runCleanWithUI(ctx context.Context, out io.Writer, title string, list driver.FileList, opts driver.Options) ([]driver.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan cleanOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.CleanList(ctx, list, optsCopy)
		outcomeCh <- cleanOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, list.Files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()

	// the view may have quit early; stop the workers and keep them from blocking on send
	cancel()
	go func() {
		for range events {
		}
	}()

	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
