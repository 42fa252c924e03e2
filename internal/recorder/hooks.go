package recorder

import (
	"log"
	"time"

	"github.com/google/uuid"

	"ScoringDesk/internal/gateway"
	"ScoringDesk/internal/view"
	"ScoringDesk/internal/views"
)

// FetchObserver returns a gateway observer that records every call to rec.
func FetchObserver(rec Recorder) gateway.Observer {
	return func(e gateway.CallEvent) {
		evt := &FetchEvent{
			At:         e.Started,
			Op:         e.Op,
			Target:     e.Target,
			DurationMS: e.Duration.Milliseconds(),
			ErrKind:    gateway.Kind(e.Err),
		}
		if e.Err != nil {
			evt.Error = e.Err.Error()
		}
		if err := rec.RecordFetch(evt); err != nil {
			log.Printf("[ERROR] record fetch: %v", err)
		}
	}
}

// TransitionObserver returns a views observer that records every committed state.
func TransitionObserver(rec Recorder) func(views.Transition) {
	return func(t views.Transition) {
		tr := &Transition{
			ID:     uuid.NewString(),
			At:     time.Now(),
			View:   t.View,
			Param:  t.Param,
			Status: t.Status.String(),
		}
		if t.Status == view.StatusError {
			tr.ErrKind = gateway.Kind(t.Err)
			if t.Err != nil {
				tr.Error = t.Err.Error()
			}
		}
		if err := rec.RecordTransition(tr); err != nil {
			log.Printf("[ERROR] record transition: %v", err)
		}
	}
}
