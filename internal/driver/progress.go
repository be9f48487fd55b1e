package driver

import "time"

// Stage describes the step a file is in.
type Stage string

const (
	// StageRead loads the file from the store.
	StageRead Stage = "read"
	// StageStrip runs the comment scanner.
	StageStrip Stage = "strip"
	// StageWrite writes the cleaned text back.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusCleaned indicates comments were found (and removed unless checking).
	StatusCleaned Status = "cleaned"
	// StatusUnchanged indicates the file had no comments.
	StatusUnchanged Status = "unchanged"
	// StatusError indicates the file could not be processed.
	StatusError Status = "error"
)

// Event reports progress for a single file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. It is called from worker goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent implements ProgressSink.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}
