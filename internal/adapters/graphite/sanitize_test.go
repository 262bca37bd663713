package graphite

import "testing"

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hello", "hello"},
		{"hello.maty", "hello-maty"},
		{"foo@bar.com", "foo@bar-com"},
		{"  test \n ", "--test---"},
		{"", ""},
		{"tab\there", "tab-here"},
		{"ctrl\x01char", "ctrl-char"},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Fatalf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeCleanInputNotCopied(t *testing.T) {
	in := "already-clean"
	if got := Sanitize(in); got != in {
		t.Fatalf("clean input changed: %q", got)
	}
}
