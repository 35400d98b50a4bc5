package formats

import (
	"fmt"
	"strings"
	"time"

	"minutes/internal/catalog"
)

// Record is the persisted form of a meeting format. Each display field is
// carried either as a localization key (built-ins) or as literal text.
type Record struct {
	ID          string    `json:"id"`
	Title       string    `json:"title,omitempty"`
	Template    string    `json:"template,omitempty"`
	TitleKey    string    `json:"title_key,omitempty"`
	TemplateKey string    `json:"template_key,omitempty"`
	Selected    bool      `json:"selected"`
	Revision    int64     `json:"revision"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsBuiltin reports whether the record came from the built-in catalog. The
// title key is never cleared, so it identifies built-ins for their lifetime.
func (r Record) IsBuiltin() bool {
	return r.TitleKey != ""
}

// Validate checks the key/literal duality and required fields.
func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidFormat)
	}
	if r.TitleKey != "" && r.Title != "" {
		return fmt.Errorf("%w: %s carries both a title key and a literal title", ErrInvalidFormat, r.ID)
	}
	if r.TitleKey == "" && strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: %s has no title", ErrInvalidFormat, r.ID)
	}
	if r.TemplateKey != "" && r.Template != "" {
		return fmt.Errorf("%w: %s carries both a template key and a literal template", ErrInvalidFormat, r.ID)
	}
	return nil
}

// NewBuiltin builds the canonical record for a catalog definition.
func NewBuiltin(def catalog.Definition) Record {
	return Record{
		ID:          def.ID,
		TitleKey:    def.TitleKey,
		TemplateKey: def.TemplateKey,
		Selected:    def.ID == catalog.GeneralID,
	}
}

// DisplayRecord is a record with its text resolved for the active locale.
type DisplayRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Template string `json:"template"`
	Selected bool   `json:"selected"`
	Builtin  bool   `json:"builtin"`
	// Customized marks a built-in whose template was edited and is now literal.
	Customized bool `json:"customized"`
}

func cloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
