package recorder

import "time"

// Transition records one committed view state change.
type Transition struct {
	ID      string // uuid
	At      time.Time
	View    string
	Param   string
	Status  string // "loading", "success", "error"
	ErrKind string // gateway.Kind of the cause, empty unless Status is "error"
	Error   string
}

// FetchEvent records one finished gateway call.
type FetchEvent struct {
	At         time.Time
	Op         string // "list", "get", "search", "scoring"
	Target     string
	DurationMS int64
	ErrKind    string
	Error      string
}

// Recorder persists view history for later analysis.
type Recorder interface {
	RecordTransition(t *Transition) error
	RecordFetch(evt *FetchEvent) error
	Close() error
}
