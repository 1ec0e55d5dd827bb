// Package delegate defines the boundary between the task service and the
// external language model that interprets natural-language queries. The
// Delegate interface takes an instruction and returns the model's raw text;
// everything about the model itself (vendor, transport, retries) lives in
// platform implementations such as the Gemini delegate.
package delegate
