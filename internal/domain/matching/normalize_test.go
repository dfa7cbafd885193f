package matching

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"crlf", "line one\r\nline two", "line one\nline two"},
		{"bare cr", "a\rb", "a\nb"},
		{"collapse spaces", "a  \t  b", "a b"},
		{"trim line edges", "  a line  \n   next  ", "a line\nnext"},
		{"blank run capped", "a\n\n\n\n\nb", "a\n\nb"},
		{"paragraph break kept", "a\n\nb", "a\n\nb"},
		{"leading blank lines", "\n\n\na", "a"},
		{"trailing blank lines", "a\n\n\n", "a"},
		{"whitespace only", " \t \r\n ", ""},
		{"nbsp", "a b", "a b"},
		{"tab only line is blank", "a\n\t\nb", "a\n\nb"},
		{"crlf runs", "a\r\n\r\n\r\nb", "a\n\nb"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeText(tc.in); got != tc.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"  Senior   Engineer \r\n\r\n\r\n Resume ",
		"a\n\nb\n\nc",
		"one\ttwo\t\tthree",
	}
	for _, in := range inputs {
		once := NormalizeText(in)
		if twice := NormalizeText(once); twice != once {
			t.Errorf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
