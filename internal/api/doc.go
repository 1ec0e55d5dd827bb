// Package api handles incoming HTTP requests for the task service. Handlers
// decode JSON bodies, call service.TaskService and translate results and
// errors into JSON responses. Only this package decides status codes.
package api
