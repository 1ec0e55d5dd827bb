// Package testutils provides helpers shared by package tests: an in-memory
// slog handler for asserting on log output, and builders for task payloads
// and language model answers.
package testutils
