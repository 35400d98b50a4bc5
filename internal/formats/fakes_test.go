package formats_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"minutes/internal/formats"
)

var errInjected = errors.New("injected failure")

// fakeRepo is an in-memory repository with fault injection.
type fakeRepo struct {
	mu       sync.Mutex
	records  map[string]formats.Record
	getErr   error
	putErr   error
	getCalls int
	puts     []formats.Record
	deletes  []string
	// gate, when set, blocks every Put until it is closed.
	gate chan struct{}
}

func newFakeRepo(records ...formats.Record) *fakeRepo {
	repo := &fakeRepo{records: make(map[string]formats.Record)}
	for _, r := range records {
		repo.records[r.ID] = r
	}
	return repo
}

func (f *fakeRepo) GetAll(ctx context.Context) ([]formats.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]formats.Record, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) Put(ctx context.Context, record formats.Record) error {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.records[record.ID] = record
	f.puts = append(f.puts, record)
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	f.deletes = append(f.deletes, id)
	return nil
}

func (f *fakeRepo) stored(id string) (formats.Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	return r, ok
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *fakeRepo) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.puts)
}

func (f *fakeRepo) getAllCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls
}

// putOnlyRepo hides Delete so the writer's fallback path is exercised.
type putOnlyRepo struct {
	inner *fakeRepo
}

func (p putOnlyRepo) GetAll(ctx context.Context) ([]formats.Record, error) {
	return p.inner.GetAll(ctx)
}

func (p putOnlyRepo) Put(ctx context.Context, record formats.Record) error {
	return p.inner.Put(ctx, record)
}
