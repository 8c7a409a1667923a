package fields

import (
	"encoding/json"
	"math"
	"testing"
)

func TestStringFirstUsableAliasWins(t *testing.T) {
	rec := Record{
		"Title":   "",
		"title":   "Tove",
		"Name":    "ignored",
		"EventID": float64(303031),
	}

	got, ok := rec.String("Title", "title", "Name")
	if !ok || got != "Tove" {
		t.Fatalf("String = %q, %v; want Tove", got, ok)
	}

	id, ok := rec.String("EventID")
	if !ok || id != "303031" {
		t.Fatalf("expected integral number rendered without decimals, got %q", id)
	}

	if _, ok := rec.String("missing"); ok {
		t.Fatal("expected missing alias to report false")
	}
}

func TestStringRejectsNonFiniteAndObjects(t *testing.T) {
	rec := Record{
		"nan":    math.NaN(),
		"inf":    math.Inf(1),
		"nested": map[string]any{"a": "b"},
		"flag":   true,
		"ratio":  1.5,
	}
	for _, key := range []string{"nan", "inf", "nested", "flag"} {
		if got, ok := rec.String(key); ok {
			t.Fatalf("String(%q) = %q; want no value", key, got)
		}
	}
	if got, _ := rec.String("ratio"); got != "1.5" {
		t.Fatalf("unexpected ratio %q", got)
	}
}

func TestNumberParsesNumericStrings(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{name: "float", value: float64(166), want: 166, ok: true},
		{name: "string", value: " 103 ", want: 103, ok: true},
		{name: "json number", value: json.Number("2024"), want: 2024, ok: true},
		{name: "blank string", value: "  ", ok: false},
		{name: "garbage", value: "abc", ok: false},
		{name: "infinite string", value: "Inf", ok: false},
		{name: "nan", value: math.NaN(), ok: false},
		{name: "bool", value: true, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Record{"v": tt.value}.Number("v")
			if ok != tt.ok {
				t.Fatalf("Number ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("Number = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNumberFallsThroughToLaterAlias(t *testing.T) {
	rec := Record{"LengthInMinutes": "", "length": "95"}
	got, ok := rec.Int("LengthInMinutes", "length")
	if !ok || got != 95 {
		t.Fatalf("Int = %d, %v; want 95", got, ok)
	}
}

func TestIntRoundsFractionalValues(t *testing.T) {
	tests := []struct {
		value any
		want  int
	}{
		{value: "120.5", want: 121},
		{value: 120.4, want: 120},
		{value: "-0.6", want: -1},
		{value: json.Number("95.0"), want: 95},
	}
	for _, tt := range tests {
		got, ok := Record{"LengthInMinutes": tt.value}.Int("LengthInMinutes")
		if !ok || got != tt.want {
			t.Fatalf("Int(%v) = %d, %v; want %d", tt.value, got, ok, tt.want)
		}
	}
	if _, ok := (Record{"LengthInMinutes": 1e12}).Int("LengthInMinutes"); ok {
		t.Fatal("expected out-of-range value to be rejected")
	}
}

func TestObjectAndAsRecord(t *testing.T) {
	rec := Record{
		"Images": "not an object",
		"images": map[string]any{"Poster": "p.jpg"},
	}
	images, ok := rec.Object("Images", "images")
	if !ok {
		t.Fatal("expected nested object")
	}
	if poster, _ := images.String("Poster"); poster != "p.jpg" {
		t.Fatalf("unexpected poster %q", poster)
	}

	if _, ok := AsRecord([]any{}); ok {
		t.Fatal("expected array to be rejected")
	}
	if _, ok := AsRecord(map[string]any(nil)); ok {
		t.Fatal("expected nil map to be rejected")
	}
}

func TestValueSkipsNil(t *testing.T) {
	rec := Record{"a": nil, "b": 0.0}
	got, ok := rec.Value("a", "b")
	if !ok || got != 0.0 {
		t.Fatalf("Value = %v, %v", got, ok)
	}
}
