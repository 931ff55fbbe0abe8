package page

import "net/http"

// State is the outcome of resolving one page request.
type State int

const (
	// StateNoSelection means the request named no topic.
	StateNoSelection State = iota
	// StateFound means the topic was resolved and the map is interactive.
	StateFound
	// StateNotFound means the topic id is not in the tree.
	StateNotFound
	// StateLoadError means the tree could not be fetched or decoded.
	StateLoadError
)

// Messages shown in the context panel for the terminal states.
const (
	MsgNoSelection = "No topic selected."
	MsgNotFound    = "Topic not found."
	MsgLoadError   = "Error loading tree."
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNoSelection:
		return "no-selection"
	case StateFound:
		return "found"
	case StateNotFound:
		return "not-found"
	case StateLoadError:
		return "load-error"
	default:
		return "unknown"
	}
}

// HTTPStatus maps a state to the response status code.
func (s State) HTTPStatus() int {
	switch s {
	case StateNotFound:
		return http.StatusNotFound
	case StateLoadError:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

// Message returns the fixed panel message for terminal states.
func (s State) Message() string {
	switch s {
	case StateNoSelection:
		return MsgNoSelection
	case StateNotFound:
		return MsgNotFound
	case StateLoadError:
		return MsgLoadError
	default:
		return ""
	}
}
