package formatting_test

import (
	"errors"
	"testing"

	"github.com/myreply/docket/pkg/formatting"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"plain", "1850", 1850, true},
		{"decimal", "125.50", 125.5, true},
		{"dollar sign", "$1850", 1850, true},
		{"thousands separators", "$1,850.25", 1850.25, true},
		{"surrounding whitespace", "  42  ", 42, true},
		{"zero", "0", 0, true},
		{"empty", "", 0, false},
		{"free text", "about two grand", 0, false},
		{"bare symbol", "$", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseAmount(tt.input)
			if tt.ok != (err == nil) {
				t.Fatalf("err = %v, want ok=%v", err, tt.ok)
			}
			if tt.ok && got != tt.want {
				t.Errorf("parsed %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "$0.00"},
		{"cents", 0.5, "$0.50"},
		{"whole", 1850, "$1,850.00"},
		{"fractional", 1975.5, "$1,975.50"},
		{"millions", 1234567.89, "$1,234,567.89"},
		{"rounding carries", 9.999, "$10.00"},
		{"negative", -42.5, "-$42.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.FormatCurrency(tt.amount); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatRating(t *testing.T) {
	if got := formatting.FormatRating(7); got != "7/10 (70%)" {
		t.Errorf("got %q", got)
	}
	if got := formatting.FormatRating(10); got != "10/10 (100%)" {
		t.Errorf("got %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name      string
		n         int64
		precision int
		want      string
	}{
		{"zero", 0, 1, "0 B"},
		{"bytes", 512, 0, "512 B"},
		{"kilobytes", 2048, 1, "2.0 KB"},
		{"megabytes", 5 * 1024 * 1024, 2, "5.00 MB"},
		{"negative precision clamped", 1024, -3, "1 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

type parsed struct {
	URL  string `json:"document_url"`
	Text string `json:"argument_text"`
}

func TestParse(t *testing.T) {
	t.Run("direct json", func(t *testing.T) {
		got, err := formatting.Parse[parsed](`{"document_url":"u","argument_text":"t"}`)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if got.URL != "u" || got.Text != "t" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("fenced json", func(t *testing.T) {
		got, err := formatting.Parse[parsed]("Here you go:\n```json\n{\"argument_text\":\"t\"}\n```")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if got.Text != "t" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("anonymous fence", func(t *testing.T) {
		got, err := formatting.Parse[parsed]("```\n{\"argument_text\":\"t\"}\n```")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if got.Text != "t" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("unparsable", func(t *testing.T) {
		_, err := formatting.Parse[parsed]("not json at all")
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("err = %v, want ErrParseFailed", err)
		}
	})
}
