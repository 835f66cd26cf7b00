// Package cache provides a byte-budgeted LRU cache for table contents.
//
// Entries are keyed by table name and evicted least recently used first once
// the total size exceeds the budget. Values larger than the budget are never
// admitted. Cached slices must be treated as read-only.
package cache
