// Package domain contains the task tracker's entities (tasks, subtasks and
// tags), the patch types used to mutate them, and the rules that keep their
// invariants: subtasks only on advanced tasks, completion timestamps that
// follow the completed flag, and parent completion derived from subtasks.
//
// Nothing in this package knows about storage or HTTP. Mutating methods take
// the current time as an argument so callers own the clock.
package domain
