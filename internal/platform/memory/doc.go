// Package memory provides in-process implementations of the storage
// interfaces defined in the internal/store package.
//
// A single DB value owns every task and tag behind one sync.RWMutex. Stores
// built on the same DB share that lock, so a read-modify-write on a task is
// atomic with respect to every other store operation. Values handed to
// callers are deep copies; state only changes through store methods.
//
// Nothing is persisted: a new DB starts empty.
package memory
