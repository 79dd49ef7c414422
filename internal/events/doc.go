// Package events provides types and interfaces for task lifecycle events.
//
// Services emit events without knowing which handlers will process them.
// The primary components are:
// - TaskEvent: a change in a task's lifecycle (created, completed, reopened, deleted)
// - EventHandler: interface for components that can handle events
// - EventEmitter: interface for components that can emit events
// - ActivityLog: a handler that records task activity in the structured log
package events
