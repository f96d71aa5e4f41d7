package postgres

import "testing"

func TestContainsEscapesWildcards(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc", "%abc%"},
		{"50%", `%50\%%`},
		{"sap_erp", `%sap\_erp%`},
		{`c:\tmp`, `%c:\\tmp%`},
		{"", "%%"},
	}
	for _, tt := range tests {
		if got := Contains(tt.in); got != tt.want {
			t.Errorf("Contains(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := EscapeLike("a_%b"); got != `a\_\%b` {
		t.Errorf("EscapeLike() = %q", got)
	}
}
