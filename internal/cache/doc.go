// Package cache persists commit range counts between runs.
//
// Counts are keyed by the ordered pair of commit ids they were computed for,
// serialized as "from..to". Because commit ids are content hashes, a stored
// count never goes stale; the cache only ever saves traversal work and is
// never a source of correctness.
//
// The file is read once when a run starts and written once when it ends.
// There is no locking: two concurrent runs simply race, and the last writer
// wins.
package cache
