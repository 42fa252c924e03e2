package view

import "fmt"

// Status tags the variant held by a State.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is the per-view asynchronous state.
// Data and ViewModel are set only for StatusSuccess, Err only for StatusError.
type State[T any, V any] struct {
	Status    Status
	Data      T
	ViewModel *V
	Err       error
}
