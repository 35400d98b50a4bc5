package formats

import (
	"context"
	"fmt"
	"strings"

	"minutes/internal/catalog"
	"minutes/internal/logging"
)

// Select makes id the only selected record. Only records whose flag changed
// are written, and the snapshot is updated before any write completes.
func (m *Manager) Select(ctx context.Context, id string) error {
	m.mu.Lock()
	if err := m.readyLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	if m.indexLocked(id) < 0 {
		m.mu.Unlock()
		logging.WithContext(ctx, m.logger).Warn("select ignored: unknown format", logging.FormatID(id))
		return fmt.Errorf("select %q: %w", id, ErrUnknownFormat)
	}
	next := cloneRecords(m.records)
	var changed []Record
	for i := range next {
		want := next[i].ID == id
		if next[i].Selected == want {
			continue
		}
		next[i].Selected = want
		m.stamp(&next[i])
		changed = append(changed, next[i])
	}
	m.records = next
	m.persist(ctx, changed...)
	if len(changed) == 0 {
		m.mu.Unlock()
		return nil
	}
	m.events.publish(Event{Kind: EventSelectionChanged, FormatID: id, SelectedID: id})
	m.mu.Unlock()

	logging.WithContext(ctx, m.logger).Info("format selected", logging.FormatID(id))
	return nil
}

// AddCustom appends a literal, unselected format. The title must not be
// blank; both fields are stored verbatim.
func (m *Manager) AddCustom(ctx context.Context, title, template string) (Record, error) {
	if strings.TrimSpace(title) == "" {
		return Record{}, fmt.Errorf("add format: %w: title is required", ErrInvalidFormat)
	}

	m.mu.Lock()
	if err := m.readyLocked(); err != nil {
		m.mu.Unlock()
		return Record{}, err
	}
	id := m.newID()
	for m.indexLocked(id) >= 0 || catalog.IsBuiltin(id) {
		id = m.newID()
	}
	record := Record{ID: id, Title: title, Template: template}
	m.stamp(&record)
	m.records = append(cloneRecords(m.records), record)
	m.persist(ctx, record)
	m.events.publish(Event{Kind: EventAdded, FormatID: id, SelectedID: m.selectedIDLocked()})
	m.mu.Unlock()

	logging.WithContext(ctx, m.logger).Info("custom format added", logging.FormatID(id))
	return record, nil
}

// EditTemplate replaces the template of id. Editing a built-in drops its
// template key so the edited text is what every later read shows; the title
// key is kept.
func (m *Manager) EditTemplate(ctx context.Context, id, template string) error {
	return m.mutate(ctx, id, "edit template", func(r *Record) error {
		r.Template = template
		r.TemplateKey = ""
		return nil
	})
}

// RenameCustom replaces the title of a custom format.
func (m *Manager) RenameCustom(ctx context.Context, id, title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("rename %q: %w: title is required", id, ErrInvalidFormat)
	}
	return m.mutate(ctx, id, "rename", func(r *Record) error {
		if r.IsBuiltin() {
			return fmt.Errorf("rename %q: %w", id, ErrBuiltinProtected)
		}
		r.Title = title
		return nil
	})
}

func (m *Manager) mutate(ctx context.Context, id, op string, apply func(*Record) error) error {
	m.mu.Lock()
	if err := m.readyLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	idx := m.indexLocked(id)
	if idx < 0 {
		m.mu.Unlock()
		logging.WithContext(ctx, m.logger).Warn(op+" ignored: stale format reference", logging.FormatID(id))
		return fmt.Errorf("%s %q: %w", op, id, ErrUnknownFormat)
	}
	next := cloneRecords(m.records)
	if err := apply(&next[idx]); err != nil {
		m.mu.Unlock()
		return err
	}
	m.stamp(&next[idx])
	record := next[idx]
	m.records = next
	m.persist(ctx, record)
	m.events.publish(Event{Kind: EventUpdated, FormatID: id, SelectedID: m.selectedIDLocked()})
	m.mu.Unlock()

	logging.WithContext(ctx, m.logger).Info("format updated", logging.FormatID(id), logging.String("op", op))
	return nil
}

// Delete removes a custom format. When it was selected, general (or the first
// remaining record in display order) becomes selected.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	if err := m.readyLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	idx := m.indexLocked(id)
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("delete %q: %w", id, ErrUnknownFormat)
	}
	if m.records[idx].IsBuiltin() {
		m.mu.Unlock()
		return fmt.Errorf("delete %q: %w", id, ErrBuiltinProtected)
	}
	wasSelected := m.records[idx].Selected
	next := make([]Record, 0, len(m.records)-1)
	next = append(next, m.records[:idx]...)
	next = append(next, m.records[idx+1:]...)

	var promoted *Record
	if wasSelected && len(next) > 0 {
		succ := successorIndex(next, m.translator, m.tag)
		next[succ].Selected = true
		m.stamp(&next[succ])
		successor := next[succ]
		promoted = &successor
	}
	m.records = next
	if m.writer != nil {
		m.writer.delete(ctx, id)
	}
	if promoted != nil {
		m.persist(ctx, *promoted)
	}
	m.events.publish(Event{Kind: EventDeleted, FormatID: id, SelectedID: m.selectedIDLocked()})
	if promoted != nil {
		m.events.publish(Event{Kind: EventSelectionChanged, FormatID: promoted.ID, SelectedID: promoted.ID})
	}
	m.mu.Unlock()

	logger := logging.WithContext(ctx, m.logger)
	logger.Info("custom format deleted", logging.FormatID(id))
	if promoted != nil {
		logger.Info("format selected after delete", logging.FormatID(promoted.ID))
	}
	return nil
}

// persist queues writes. Callers hold m.mu so queue order matches the order
// snapshots were adopted.
func (m *Manager) persist(ctx context.Context, records ...Record) {
	if m.writer == nil {
		return
	}
	for _, r := range records {
		m.writer.put(ctx, r)
	}
}

func (m *Manager) readyLocked() error {
	if m.state != StateReady {
		return ErrNotReady
	}
	return nil
}

func (m *Manager) indexLocked(id string) int {
	for i, r := range m.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) selectedIDLocked() string {
	for _, r := range m.records {
		if r.Selected {
			return r.ID
		}
	}
	return ""
}
