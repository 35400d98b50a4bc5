package formats

import (
	"golang.org/x/text/language"

	"minutes/internal/catalog"
	"minutes/internal/localization"
)

// reconcileSelection repairs a persisted snapshot that breaks the single
// selection rule, which happens when two processes select different formats
// concurrently. With several selected records the newest revision wins; with
// none, general (or the first record in display order) is promoted. It
// returns the indexes of records it changed.
func reconcileSelection(records []Record, translator localization.Translator, tag language.Tag) []int {
	if len(records) == 0 {
		return nil
	}

	var selected []int
	for i, r := range records {
		if r.Selected {
			selected = append(selected, i)
		}
	}

	switch len(selected) {
	case 1:
		return nil
	case 0:
		idx := successorIndex(records, translator, tag)
		records[idx].Selected = true
		return []int{idx}
	}

	order := displayRank(records, translator, tag)
	winner := selected[0]
	for _, idx := range selected[1:] {
		r, w := records[idx], records[winner]
		if r.Revision > w.Revision || (r.Revision == w.Revision && order[r.ID] < order[w.ID]) {
			winner = idx
		}
	}
	changed := make([]int, 0, len(selected)-1)
	for _, idx := range selected {
		if idx == winner {
			continue
		}
		records[idx].Selected = false
		changed = append(changed, idx)
	}
	return changed
}

// successorIndex picks the record to select when none is: general if
// present, otherwise the first record in display order.
func successorIndex(records []Record, translator localization.Translator, tag language.Tag) int {
	for i, r := range records {
		if r.ID == catalog.GeneralID {
			return i
		}
	}
	order := displayRank(records, translator, tag)
	best := 0
	for i, r := range records {
		if order[r.ID] < order[records[best].ID] {
			best = i
		}
	}
	return best
}

// displayRank maps each id to its position in display order, ignoring the
// selected flag.
func displayRank(records []Record, translator localization.Translator, tag language.Tag) map[string]int {
	display := make([]DisplayRecord, 0, len(records))
	for _, r := range records {
		d := Resolve(r, translator)
		d.Selected = false
		display = append(display, d)
	}
	sortDisplay(display, tag)
	rank := make(map[string]int, len(display))
	for i, d := range display {
		rank[d.ID] = i
	}
	return rank
}
