// Package service contains the task use cases that sit between the HTTP
// transport and the store.
//
// TaskService exposes three boundary operations:
//
//   - CreateTask parses and validates a decoded JSON payload and stores it.
//   - ListTasks returns a snapshot of every task in insertion order.
//   - RunQuery snapshots the tasks, renders an instruction, asks the language
//     model delegate under a bounded timeout, and validates its answer.
//
// The store lock is never held while the delegate runs. Errors keep their
// domain, query and delegate types so the API layer can map them with
// errors.Is and errors.As.
package service
