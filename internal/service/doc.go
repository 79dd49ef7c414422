// Package service contains the application use cases of the task board. It
// sits between the HTTP layer and the storage interfaces in internal/store
// and owns the policies the stores deliberately leave out:
//
//   - tag references on tasks must name existing tags at create/update time
//   - tag names are unique, compared case-insensitively
//   - the contribution window is resolved against the service clock
//   - task lifecycle transitions are published as events
//
// Services receive their dependencies through constructor injection and never
// depend on a concrete store implementation.
package service
