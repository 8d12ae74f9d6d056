// Package collections assembles parsed records into the ordered corpus:
// grouping by day directory, duplicate-ordinal detection, draft visibility,
// deterministic total ordering, and template resolution. Builds are pure;
// the snapshot store publishes their output atomically.
package collections
