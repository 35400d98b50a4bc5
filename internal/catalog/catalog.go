// Package catalog holds the built-in meeting formats that seed a fresh store.
//
// Definitions carry localization keys, never display text; the text is
// resolved at read time against the active locale.
package catalog

// GeneralID identifies the built-in format selected on first run.
const GeneralID = "general"

// Definition describes one built-in format.
type Definition struct {
	ID          string
	TitleKey    string
	TemplateKey string
}

var definitions = []Definition{
	define(GeneralID),
	define("1on1"),
	define("negotiation"),
	define("interview"),
	define("brainstorm"),
	define("sales"),
	define("lecture"),
}

func define(id string) Definition {
	return Definition{
		ID:          id,
		TitleKey:    "formats." + id + ".title",
		TemplateKey: "formats." + id + ".template",
	}
}

// Definitions returns the built-in formats in catalog order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the built-in definition with the given id.
func Lookup(id string) (Definition, bool) {
	for _, def := range definitions {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// IsBuiltin reports whether id names a built-in format.
func IsBuiltin(id string) bool {
	_, ok := Lookup(id)
	return ok
}
