// Package formatstore persists meeting format records in a local SQLite
// database, one row per record keyed by id.
//
// Put is an upsert with last-write-wins semantics; there is no transaction
// spanning several records, so callers that need a cross-record rule (the
// single selection) enforce it themselves. Lock provides an advisory file
// lock so separate processes can serialize their bootstrap.
//
// Schema changes bump the version in schema.go; users delete formats.db to
// adopt a new schema.
package formatstore
