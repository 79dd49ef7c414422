// Package api handles incoming HTTP requests for tasks, subtasks, tags,
// statistics and the contribution calendar. Handlers decode and validate
// requests, call the service layer, and write the {"data": ...} or error
// envelopes defined in package shared. Routing lives in cmd/server.
package api
