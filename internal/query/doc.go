// Package query turns a natural-language question about the task list into a
// language-model instruction, and turns the model's answer back into a
// validated domain.QueryResult.
//
// The answer is decoded with a strict JSON decoder and then checked against
// the result schema; it is never evaluated as code. Anything that does not
// fit the schema is rejected as a whole with a *ResultError.
package query
