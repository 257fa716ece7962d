// Package measure records hierarchical performance measurements.
//
// A Tracker creates measurements. Each measurement times one unit of work and
// can carry numeric, string, and boolean facts. Measurements nest: a child
// created with TrackChild serializes itself when closed and rolls its payload
// up into its parent, so closing the root produces exactly one flattened
// payload for the whole tree, delivered to the configured Sink.
//
// The tree structure is not nested in the output. Every measurement becomes
// one flat JSON object, and parentage is recoverable through the
// OperationId/ParentOperationId fields.
package measure
