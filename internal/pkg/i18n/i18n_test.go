package i18n

import (
	"testing"
	"testing/fstest"
)

func TestInitParsesEmbeddedMessages(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if got := T("variant.required", map[string]any{"Title": "SKU"}); got != "SKU is required" {
		t.Fatalf("message: got=%q", got)
	}
	if got := Localize("id", "variant.required", map[string]any{"Title": "SKU"}); got != "SKU is required" {
		t.Fatalf("fallback to english: got=%q", got)
	}
	if got := T("no.such.message", nil); got != "no.such.message" {
		t.Fatalf("unknown id: got=%q", got)
	}
}

func TestBrokenLocaleFileFails(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"malformed json", fstest.MapFS{"locales/active.en.json": {Data: []byte(`{"variant.required": `)}}},
		{"missing file", fstest.MapFS{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseEmbedded(tt.fsys, "locales/active.en.json"); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
