package formats

import "minutes/internal/localization"

// Resolve produces the display form of r. Key-bearing fields are translated;
// literal fields pass through untouched whatever the translator does. A nil
// translator leaves keys unresolved.
func Resolve(r Record, translator localization.Translator) DisplayRecord {
	if translator == nil {
		translator = localization.Identity
	}
	display := DisplayRecord{
		ID:       r.ID,
		Title:    r.Title,
		Template: r.Template,
		Selected: r.Selected,
		Builtin:  r.IsBuiltin(),
	}
	if r.TitleKey != "" {
		display.Title = translator.Translate(r.TitleKey)
	}
	if r.TemplateKey != "" {
		display.Template = translator.Translate(r.TemplateKey)
	}
	display.Customized = display.Builtin && r.TemplateKey == ""
	return display
}
