// Package events carries notifications about completed task operations.
//
// The task service emits an Event after each successful creation and after
// each query, and handlers registered on an Emitter observe them without the
// service knowing who listens. The server registers a LogHandler that writes
// an audit line per event.
package events
