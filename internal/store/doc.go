// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific storage technologies or persistence details.
//
// Every entity returned by a store is an independent copy; changing it has no
// effect on stored state until it goes back through an update method.
package store
