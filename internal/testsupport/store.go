package testsupport

import (
	"context"
	"testing"

	"minutes/internal/config"
	"minutes/internal/formats"
	"minutes/internal/formatstore"
)

// MustOpenStore opens a formatstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *formatstore.Store {
	t.Helper()

	store, err := formatstore.Open(cfg)
	if err != nil {
		t.Fatalf("formatstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustPut writes record directly to the store, bypassing any manager.
func MustPut(t testing.TB, store *formatstore.Store, record formats.Record) {
	t.Helper()

	if err := store.Put(context.Background(), record); err != nil {
		t.Fatalf("store.Put(%s): %v", record.ID, err)
	}
}

// MustGetAll reads every record from the store.
func MustGetAll(t testing.TB, store *formatstore.Store) []formats.Record {
	t.Helper()

	records, err := store.GetAll(context.Background())
	if err != nil {
		t.Fatalf("store.GetAll: %v", err)
	}
	return records
}
