// Package domain contains the core entities of the task service: tasks, their
// statuses and due dates, the records returned by natural-language queries,
// and the validation errors raised when a creation payload is malformed.
// It has no knowledge of storage, transport, or the language model.
package domain
