package localization_test

import (
	"strings"
	"testing"

	"golang.org/x/text/language"

	"minutes/internal/catalog"
	"minutes/internal/localization"
)

func mustLocalizer(t *testing.T, lang string) *localization.Localizer {
	t.Helper()
	bundle, err := localization.NewBundle()
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}
	loc, err := bundle.Localizer(lang)
	if err != nil {
		t.Fatalf("Localizer(%q): %v", lang, err)
	}
	return loc
}

func TestBundleLanguages(t *testing.T) {
	bundle, err := localization.NewBundle()
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}
	got := strings.Join(bundle.Languages(), ",")
	if got != "en,ja" {
		t.Fatalf("unexpected languages %q", got)
	}
}

func TestEnglishCatalogCoversEveryBuiltin(t *testing.T) {
	loc := mustLocalizer(t, "en")
	for _, def := range catalog.Definitions() {
		if got := loc.Translate(def.TitleKey); got == def.TitleKey {
			t.Fatalf("missing english title for %q", def.ID)
		}
		if got := loc.Translate(def.TemplateKey); got == def.TemplateKey {
			t.Fatalf("missing english template for %q", def.ID)
		}
	}
}

func TestTranslateMissingKeyReturnsKey(t *testing.T) {
	loc := mustLocalizer(t, "ja")
	if got := loc.Translate("formats.unknown.title"); got != "formats.unknown.title" {
		t.Fatalf("expected key passthrough, got %q", got)
	}
	if got := loc.Translate(""); got != "" {
		t.Fatalf("expected empty key to stay empty, got %q", got)
	}
}

func TestPartialCatalogFallsBackToEnglish(t *testing.T) {
	loc := mustLocalizer(t, "ja-JP")
	if got := loc.Translate("formats.general.title"); got != "一般" {
		t.Fatalf("expected japanese title, got %q", got)
	}
	if got := loc.Translate("formats.brainstorm.title"); got != "Brainstorming" {
		t.Fatalf("expected english fallback, got %q", got)
	}
	if got := loc.Translate("formats.negotiation.template"); !strings.Contains(got, "Terms discussed") {
		t.Fatalf("expected english template fallback, got %q", got)
	}
}

func TestLocalizerTag(t *testing.T) {
	loc := mustLocalizer(t, "ja-JP")
	if loc.Tag() != language.MustParse("ja-JP") {
		t.Fatalf("unexpected tag %v", loc.Tag())
	}
	bundle, _ := localization.NewBundle()
	if _, err := bundle.Localizer("??"); err == nil {
		t.Fatal("expected error for invalid tag")
	}
}

func TestIdentityTranslator(t *testing.T) {
	if got := localization.Identity.Translate("formats.general.title"); got != "formats.general.title" {
		t.Fatalf("unexpected %q", got)
	}
}
