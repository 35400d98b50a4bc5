package catalog_test

import (
	"testing"

	"minutes/internal/catalog"
)

func TestDefinitionsAreUniqueAndIncludeGeneral(t *testing.T) {
	defs := catalog.Definitions()
	if len(defs) != 7 {
		t.Fatalf("expected 7 built-in formats, got %d", len(defs))
	}
	seen := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if _, dup := seen[def.ID]; dup {
			t.Fatalf("duplicate id %q", def.ID)
		}
		seen[def.ID] = struct{}{}
		if def.TitleKey == "" || def.TemplateKey == "" {
			t.Fatalf("definition %q is missing keys: %#v", def.ID, def)
		}
	}
	if _, ok := seen[catalog.GeneralID]; !ok {
		t.Fatal("expected general format in catalog")
	}
}

func TestDefinitionsReturnsCopy(t *testing.T) {
	defs := catalog.Definitions()
	defs[0].ID = "mutated"
	if catalog.Definitions()[0].ID != catalog.GeneralID {
		t.Fatal("expected catalog to be immutable through Definitions")
	}
}

func TestLookup(t *testing.T) {
	def, ok := catalog.Lookup("1on1")
	if !ok || def.TitleKey != "formats.1on1.title" {
		t.Fatalf("unexpected lookup result %#v, %v", def, ok)
	}
	if catalog.IsBuiltin("custom-123") {
		t.Fatal("custom id should not be builtin")
	}
}
