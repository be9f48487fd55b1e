package ui

import (
	"errors"
	"strings"
	"testing"

	"decomment/internal/driver"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.swift", 20, "short.swift"},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestTruncateLongPath(t *testing.T) {
	got := truncate("a/very/long/path/file.swift", 10)
	if !strings.HasSuffix(got, "...") || len(got) > 10 {
		t.Errorf("truncate = %q", got)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		stage  driver.Stage
		status driver.Status
		want   string
	}{
		{"", driver.StatusQueued, "queued"},
		{driver.StageRead, driver.StatusWorking, "reading"},
		{driver.StageStrip, driver.StatusWorking, "stripping"},
		{driver.StageWrite, driver.StatusWorking, "writing"},
		{driver.StageStrip, driver.StatusCleaned, "cleaned"},
		{driver.StageRead, driver.StatusError, "error"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Errorf("statusLabel(%q, %q) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestApplyEventTracksCompletion(t *testing.T) {
	files := []string{"a.swift", "b.swift"}
	m := NewProgressModel("decomment", files, nil).(*progressModel)

	m.applyEvent(driver.Event{File: "a.swift", Stage: driver.StageStrip, Status: driver.StatusWorking})
	if m.items[0].status != "stripping" || m.fraction() != 0 {
		t.Fatalf("after working event: %+v, fraction %v", m.items[0], m.fraction())
	}
	m.applyEvent(driver.Event{File: "a.swift", Stage: driver.StageStrip, Status: driver.StatusCleaned})
	m.applyEvent(driver.Event{File: "b.swift", Stage: driver.StageRead, Status: driver.StatusError, Err: errors.New("boom")})
	// late events for finished files are ignored
	m.applyEvent(driver.Event{File: "a.swift", Status: driver.StatusQueued})
	m.applyEvent(driver.Event{File: "unknown.swift", Status: driver.StatusCleaned})

	if m.fraction() != 1 {
		t.Errorf("fraction = %v, want 1", m.fraction())
	}
	if m.items[0].status != "cleaned" || m.items[1].status != "error" {
		t.Errorf("items = %+v", m.items)
	}
	if m.counts[driver.StatusCleaned] != 1 || m.counts[driver.StatusError] != 1 {
		t.Errorf("counts = %v", m.counts)
	}

	m.done = true
	view := m.View()
	for _, want := range []string{"done: decomment", "1 cleaned", "1 errors", "a.swift", "b.swift"} {
		if !strings.Contains(view, want) {
			t.Errorf("view does not contain %q:\n%s", want, view)
		}
	}
}
