// Package property provides named, typed and validated value slots.
//
// A property exposes a read-only view (Readable) and a read-write view
// (Writable). Scalar properties wrap a single value, container properties
// (ListProperty, SetProperty, MapProperty) wrap a slice or map and carry
// prototype sub-properties describing their elements.
//
// Every property carries immutable Metadata holding its validator, its owner
// and a read-only flag. Properties are normally obtained from the factory
// registry (package factory) or assembled with the fluent builders (package
// builder) rather than constructed directly.
package property
