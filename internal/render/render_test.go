package render_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/myreply/docket/internal/render"
)

func TestRenderSubstitutesValues(t *testing.T) {
	template := "<p>Rent: {{monthly_rent}} owed by {{document_id}}</p>"
	out := render.Render(template, map[string]string{
		"monthly_rent": "$1,850.00",
		"document_id":  "CM7XK2P9A000",
	})

	want := "<p>Rent: $1,850.00 owed by CM7XK2P9A000</p>"
	if out != want {
		t.Errorf("rendered %q, want %q", out, want)
	}
}

func TestRenderGlobalPerKey(t *testing.T) {
	out := render.Render("{{id}} and {{id}} again", map[string]string{"id": "X"})
	if out != "X and X again" {
		t.Errorf("rendered %q", out)
	}
}

func TestRenderMissingValueSentinel(t *testing.T) {
	out := render.Render("value: {{absent}}", map[string]string{})
	if out != "value: N/A" {
		t.Errorf("rendered %q, want sentinel substitution", out)
	}
	if strings.Contains(out, "{{") {
		t.Error("literal placeholder survived rendering")
	}
}

func TestRenderValueWithTemplateSyntax(t *testing.T) {
	// Substituted text must never be treated as template syntax itself.
	out := render.Render("note: {{narrative}}", map[string]string{
		"narrative": "cost was $100 and the form said {{total_owed}}",
	})

	want := "note: cost was $100 and the form said {{total_owed}}"
	if out != want {
		t.Errorf("rendered %q, want %q", out, want)
	}
}

func TestRenderIgnoresExtraValues(t *testing.T) {
	out := render.Render("static text", map[string]string{"unused": "x"})
	if out != "static text" {
		t.Errorf("rendered %q", out)
	}
}

func TestPlaceholders(t *testing.T) {
	template := "{{a}} {{b}} {{a}} {{c_1}} {{not closed"
	got := render.Placeholders(template)

	if !slices.Equal(got, []string{"a", "b", "c_1"}) {
		t.Errorf("placeholders = %v", got)
	}
}
