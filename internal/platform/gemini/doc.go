// Package gemini provides a delegate.Delegate backed by Google's Gemini API.
//
// The delegate sends the rendered query instruction as a single user turn,
// asks for a JSON response, and returns the concatenated text of the first
// candidate. It does not interpret that text; validation happens in the
// query package.
package gemini
