package language

import "testing"

func TestToISO2(t *testing.T) {
	cases := map[string]string{
		"en":      "en",
		"eng":     "en",
		"FRE":     "fr",
		"deu":     "de",
		"xx":      "xx",
		"bogus":   "",
		"":        "",
		"  spa  ": "es",
	}
	for in, want := range cases {
		if got := ToISO2(in); got != want {
			t.Fatalf("ToISO2(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToISO3(t *testing.T) {
	cases := map[string]string{
		"en":  "eng",
		"fr":  "fra",
		"zzz": "zzz",
		"q":   "und",
		"":    "und",
	}
	for in, want := range cases {
		if got := ToISO3(in); got != want {
			t.Fatalf("ToISO3(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("en"); got != "English" {
		t.Fatalf("got %q", got)
	}
	if got := DisplayName(""); got != "Unknown" {
		t.Fatalf("got %q", got)
	}
	if got := DisplayName("xq"); got != "XQ" {
		t.Fatalf("got %q", got)
	}
}

func TestMatchesTag(t *testing.T) {
	cases := []struct {
		tag, code string
		want      bool
	}{
		{"en", "en", true},
		{"en-US", "en", true},
		{"en-orig", "eng", true},
		{"es", "en", false},
		{"", "en", false},
		{"en", "", false},
	}
	for _, tc := range cases {
		if got := MatchesTag(tc.tag, tc.code); got != tc.want {
			t.Fatalf("MatchesTag(%q, %q) = %v, want %v", tc.tag, tc.code, got, tc.want)
		}
	}
}
