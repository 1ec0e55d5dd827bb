// Package store defines the task persistence interface and its in-memory
// implementation. The in-memory store is the only state the service keeps;
// it is lost when the process exits.
package store
