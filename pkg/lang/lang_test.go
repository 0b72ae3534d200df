package lang

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		input    string
		expected Locale
		wantErr  bool
	}{
		{input: "en", expected: "en"},
		{input: " JA ", expected: "ja"},
		{input: "en-us", expected: "en-US"},
		{input: "", wantErr: true},
		{input: "e", wantErr: true},
		{input: "en-us-x", wantErr: true},
		{input: "e1", wantErr: true},
		{input: "en-1", wantErr: true},
	}

	for _, tc := range cases {
		got, err := Normalize(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error, got %q", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.input, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("%q: expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestEnsureDefault(t *testing.T) {
	def, supported, err := EnsureDefault("ja", []string{"en", "JA", "en"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def != Japanese {
		t.Fatalf("expected ja default, got %q", def)
	}
	if !reflect.DeepEqual(supported, []Locale{Japanese, English}) {
		t.Fatalf("unexpected supported list %v", supported)
	}

	if _, _, err := EnsureDefault("fr", []string{"en", "ja"}); err == nil {
		t.Fatalf("expected error for default outside supported set")
	}

	def, supported, err = EnsureDefault("en", nil)
	if err != nil || def != English || !reflect.DeepEqual(supported, []Locale{English}) {
		t.Fatalf("expected lone default, got %q %v %v", def, supported, err)
	}
}

func TestDecodeList(t *testing.T) {
	jsonList, err := DecodeList(`["en","ja"]`)
	if err != nil || !reflect.DeepEqual(jsonList, []string{"en", "ja"}) {
		t.Fatalf("unexpected JSON decode result %v %v", jsonList, err)
	}

	csv, err := DecodeList(" en , ja ,")
	if err != nil || !reflect.DeepEqual(csv, []string{"en", "ja"}) {
		t.Fatalf("unexpected CSV decode result %v %v", csv, err)
	}

	if _, err := DecodeList(" , "); err == nil {
		t.Fatalf("expected error for list without codes")
	}
}

func TestNegotiate(t *testing.T) {
	cases := []struct {
		header   string
		expected Locale
	}{
		{header: "", expected: English},
		{header: "ja-JP,ja;q=0.9,en;q=0.8", expected: Japanese},
		{header: "en-GB,en;q=0.9", expected: English},
		{header: "fr-FR,fr;q=0.9", expected: English},
		{header: "fr;q=0.9,ja;q=0.5", expected: Japanese},
	}

	for _, tc := range cases {
		if got := Negotiate(tc.header, siteLocales, English); got != tc.expected {
			t.Errorf("%q: expected %q, got %q", tc.header, tc.expected, got)
		}
	}
}

func TestTranslatedStringFallback(t *testing.T) {
	text := TranslatedString{English: "News", Japanese: "ニュース"}
	if got := text.In(Japanese, English); got != "ニュース" {
		t.Fatalf("expected Japanese copy, got %q", got)
	}

	partial := TranslatedString{English: "Partners", Japanese: "  "}
	if got := partial.In(Japanese, English); got != "Partners" {
		t.Fatalf("expected English fallback, got %q", got)
	}
	if missing := partial.Missing(siteLocales); !reflect.DeepEqual(missing, []Locale{Japanese}) {
		t.Fatalf("expected ja to be missing, got %v", missing)
	}

	if got := (TranslatedString{}).In(Japanese, English); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
