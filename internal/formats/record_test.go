package formats

import (
	"errors"
	"testing"
)

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr bool
	}{
		{"builtin", Record{ID: "general", TitleKey: "t", TemplateKey: "b"}, false},
		{"customized builtin", Record{ID: "general", TitleKey: "t", Template: "body"}, false},
		{"custom", Record{ID: "custom-1", Title: "Retro"}, false},
		{"custom empty template", Record{ID: "custom-1", Title: "Retro", Template: ""}, false},
		{"missing id", Record{Title: "Retro"}, true},
		{"blank title", Record{ID: "custom-1", Title: "   "}, true},
		{"title key and literal", Record{ID: "general", TitleKey: "t", Title: "General"}, true},
		{"template key and literal", Record{ID: "general", TitleKey: "t", TemplateKey: "b", Template: "body"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Fatalf("expected ErrInvalidFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestIsBuiltinSurvivesTemplateEdit(t *testing.T) {
	r := Record{ID: "general", TitleKey: "formats.general.title", Template: "edited"}
	if !r.IsBuiltin() {
		t.Fatal("edited built-in should still report IsBuiltin")
	}
	if (Record{ID: "custom-1", Title: "x"}).IsBuiltin() {
		t.Fatal("custom record reported as built-in")
	}
}
