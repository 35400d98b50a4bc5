package formats

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"minutes/internal/catalog"
	"minutes/internal/localization"
)

// Snapshot returns a copy of the current records in storage form.
func (m *Manager) Snapshot() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneRecords(m.records)
}

// Get returns the display form of one record.
func (m *Manager) Get(id string) (DisplayRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx := m.indexLocked(id)
	if idx < 0 {
		return DisplayRecord{}, false
	}
	return Resolve(m.records[idx], m.translator), true
}

// Selected returns the display form of the selected record.
func (m *Manager) Selected() (DisplayRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.records {
		if r.Selected {
			return Resolve(r, m.translator), true
		}
	}
	return DisplayRecord{}, false
}

// Filter resolves every record and keeps those whose title or template
// contains query, ignoring case. An empty query keeps everything. The result
// is in snapshot order.
func (m *Manager) Filter(query string) []DisplayRecord {
	m.mu.RLock()
	records := cloneRecords(m.records)
	m.mu.RUnlock()
	return filterDisplay(records, m.translator, query)
}

// Sort orders records for presentation: the selected record first, then
// general, then the rest by title using the manager's collation language.
func (m *Manager) Sort(records []DisplayRecord) []DisplayRecord {
	out := make([]DisplayRecord, len(records))
	copy(out, records)
	sortDisplay(out, m.tag)
	return out
}

// DisplayList returns the filtered records in presentation order.
func (m *Manager) DisplayList(query string) []DisplayRecord {
	return m.Sort(m.Filter(query))
}

func filterDisplay(records []Record, translator localization.Translator, query string) []DisplayRecord {
	out := make([]DisplayRecord, 0, len(records))
	if query == "" {
		for _, r := range records {
			out = append(out, Resolve(r, translator))
		}
		return out
	}
	fold := cases.Fold()
	needle := fold.String(query)
	for _, r := range records {
		d := Resolve(r, translator)
		if strings.Contains(fold.String(d.Title), needle) || strings.Contains(fold.String(d.Template), needle) {
			out = append(out, d)
		}
	}
	return out
}

func sortBucket(d DisplayRecord) int {
	switch {
	case d.Selected:
		return 0
	case d.ID == catalog.GeneralID:
		return 1
	default:
		return 2
	}
}

// sortDisplay orders in place. Collators are not safe for concurrent use, so
// each call builds its own.
func sortDisplay(records []DisplayRecord, tag language.Tag) {
	collator := collate.New(tag)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if ba, bb := sortBucket(a), sortBucket(b); ba != bb {
			return ba < bb
		}
		if c := collator.CompareString(a.Title, b.Title); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
}
