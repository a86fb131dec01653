// Package registry maps call type tags (the "type" of a configured call)
// to the handler factories that implement them.
//
// Extension modules register their call types once, before any task runs.
// The registry is then sealed and only read. Every lookup must find exactly
// one live entry: no entry is an UnknownCallTypeError, more than one is an
// AmbiguousCallTypeError. Registration itself refuses duplicates, so the
// ambiguous case signals broken bookkeeping rather than a priority rule.
package registry
