// Package badger provides a BadgerDB-backed implementation of catalog.Store.
//
// Entities are stored as binary records keyed by content-based ID, with
// three secondary indexes that carry the normalized name in the key:
// primary name, alternate name, and individual name tokens. All search
// entry points resolve through prefix iteration over these indexes, so
// a lookup touches only keys that already satisfy the filter.
package badger
