// Package event implements the core of the in-process event system: typed
// signatures, per-event subscriber collections with stable subscription
// handles, and the name-addressed registry that owns the collections.
//
// Producers resolve or create a collection through the Registry, attach
// subscribers to it and invoke it synchronously with Call, or defer the
// invocation through the queue package. Subscribers are plain functions
// whose parameters match the event signature.
package event
