package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"passthrough", "My Video", "My Video"},
		{"slashes", "a/b\\c", "a-b-c"},
		{"colon and star", "Title: Part *2*", "Title- Part -2-"},
		{"removed characters", `What? "Quoted" <Tag> |Pipe|`, "What Quoted Tag Pipe"},
		{"trailing dot", "Episode 1.", "Episode 1"},
		{"empty", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeFileName(tc.in); got != tc.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeToken(t *testing.T) {
	if got := SanitizeToken("Hello World!"); got != "hello_world" {
		t.Fatalf("got %q", got)
	}
	if got := SanitizeToken(""); got != "unknown" {
		t.Fatalf("got %q", got)
	}
	if got := SanitizeToken("---"); got != "unknown" {
		t.Fatalf("got %q", got)
	}
}
