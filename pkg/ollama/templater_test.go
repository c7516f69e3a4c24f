package ollama

import (
	"strings"
	"testing"
)

func TestRenderTemplate(t *testing.T) {
	out, err := RenderTemplate("Note:\n{{.Text}}", map[string]any{"Text": "12345 AB12 CDE"})
	if err != nil {
		t.Fatalf("RenderTemplate error: %v", err)
	}
	if !strings.Contains(out, "12345 AB12 CDE") {
		t.Fatalf("unexpected render: %q", out)
	}
}

func TestRenderTemplate_BadTemplate(t *testing.T) {
	if _, err := RenderTemplate("{{.Text", nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
