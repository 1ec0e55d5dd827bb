// Package report builds the task status report: it fetches the task list
// from a running server, keeps tasks that have a status and a valid due
// date, counts them by status and exports the counts as PDF, CSV, JSON or
// YAML.
package report
