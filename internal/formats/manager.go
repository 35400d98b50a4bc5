package formats

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"minutes/internal/catalog"
	"minutes/internal/localization"
	"minutes/internal/logging"
)

// State tracks bootstrap progress.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unloaded"
	}
}

// Manager owns the format snapshot and every command that mutates it.
type Manager struct {
	repo       Repository
	translator localization.Translator
	tag        language.Tag
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string

	bootMu sync.Mutex

	mu           sync.RWMutex
	state        State
	records      []Record
	lastRevision int64

	writer *writer
	events broker
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLogger sets the logger; the default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithLanguage sets the collation language used to order titles.
func WithLanguage(tag language.Tag) Option {
	return func(m *Manager) {
		m.tag = tag
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator overrides how custom format ids are generated.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) {
		if newID != nil {
			m.newID = newID
		}
	}
}

// NewManager builds a Manager over repo. A nil repo runs in memory only.
// A nil translator leaves built-in keys unresolved.
func NewManager(repo Repository, translator localization.Translator, opts ...Option) *Manager {
	if translator == nil {
		translator = localization.Identity
	}
	m := &Manager{
		repo:       repo,
		translator: translator,
		tag:        language.English,
		logger:     logging.NewNop(),
		now:        time.Now,
		newID:      func() string { return "custom-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logging.NewComponentLogger(m.logger, "formats")
	if repo != nil {
		m.writer = newWriter(repo, m.logger)
	}
	return m
}

// State reports bootstrap progress.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Persistent reports whether the manager writes through to a repository.
func (m *Manager) Persistent() bool {
	return m.repo != nil
}

// Bootstrap loads the snapshot, seeding the built-in catalog into an empty
// store. Concurrent and repeated calls share one load.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.bootMu.Lock()
	defer m.bootMu.Unlock()

	if m.State() == StateReady {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.setState(StateLoading)

	logger := logging.WithContext(ctx, m.logger)
	var records []Record
	if m.repo == nil {
		logger.Info("format store unavailable; using built-in formats in memory")
		records = m.seedRecords()
	} else {
		var err error
		records, err = m.loadPersisted(ctx, logger)
		if err != nil {
			m.setState(StateUnloaded)
			return err
		}
	}

	m.mu.Lock()
	m.records = records
	m.state = StateReady
	m.observeRevisionsLocked(records)
	selected := m.selectedIDLocked()
	m.events.publish(Event{Kind: EventLoaded, SelectedID: selected})
	m.mu.Unlock()

	logger.Info("format catalog ready",
		logging.Int("formats", len(records)),
		logging.String("selected", selected),
	)
	return nil
}

func (m *Manager) loadPersisted(ctx context.Context, logger *slog.Logger) ([]Record, error) {
	if locker, ok := m.repo.(Locker); ok {
		unlock, err := locker.Lock(ctx)
		switch {
		case err == nil:
			defer unlock()
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			logger.Warn("format store lock unavailable; loading without it", logging.Error(err))
		}
	}

	records, err := m.repo.GetAll(ctx)
	if err != nil {
		// Rows may still exist behind a failed read, so seeds stay in memory
		// rather than overwriting edited built-ins.
		logger.Warn("format store read failed; using built-in formats for this session", logging.Error(err))
		return m.seedRecords(), nil
	}

	if len(records) == 0 {
		seeded := m.seedRecords()
		for _, r := range seeded {
			if err := m.repo.Put(ctx, r); err != nil {
				logger.Warn("seed write failed; format kept for this session",
					logging.FormatID(r.ID),
					logging.Error(err),
				)
			}
		}
		logger.Info("seeded built-in formats", logging.Int("formats", len(seeded)))
		return seeded, nil
	}

	m.mu.Lock()
	m.observeRevisionsLocked(records)
	repaired := reconcileSelection(records, m.translator, m.tag)
	for _, idx := range repaired {
		m.stamp(&records[idx])
	}
	m.mu.Unlock()

	for _, idx := range repaired {
		r := records[idx]
		logger.Warn("repaired format selection",
			logging.FormatID(r.ID),
			logging.Bool("selected", r.Selected),
		)
		if err := m.repo.Put(ctx, r); err != nil {
			logger.Warn("selection repair write failed", logging.FormatID(r.ID), logging.Error(err))
		}
	}
	return records, nil
}

func (m *Manager) seedRecords() []Record {
	defs := catalog.Definitions()
	records := make([]Record, 0, len(defs))
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, def := range defs {
		r := NewBuiltin(def)
		m.stamp(&r)
		records = append(records, r)
	}
	return records
}

func (m *Manager) observeRevisionsLocked(records []Record) {
	for _, r := range records {
		if r.Revision > m.lastRevision {
			m.lastRevision = r.Revision
		}
	}
}

// stamp assigns a revision strictly greater than any this manager has seen.
// Callers hold m.mu.
func (m *Manager) stamp(r *Record) {
	now := m.now().UTC()
	rev := now.UnixNano()
	if rev <= m.lastRevision {
		rev = m.lastRevision + 1
	}
	m.lastRevision = rev
	r.Revision = rev
	r.UpdatedAt = now
}

func (m *Manager) setState(state State) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

// Subscribe returns a channel of catalog changes and a cancel function.
// Events are delivered in the order the snapshot changed. Events are dropped
// for subscribers that fall behind.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	return m.events.subscribe()
}

// Flush waits for background writes issued so far.
func (m *Manager) Flush(ctx context.Context) error {
	if m.writer == nil {
		return nil
	}
	return m.writer.flush(ctx)
}

// Close drains pending writes and stops the background writer.
func (m *Manager) Close(ctx context.Context) error {
	if m.writer == nil {
		return nil
	}
	return m.writer.close(ctx)
}
