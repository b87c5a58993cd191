package roman

import "testing"

func TestFormatAndParse(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "I"},
		{2, "II"},
		{4, "IV"},
		{5, "V"},
		{9, "IX"},
		{14, "XIV"},
		{40, "XL"},
		{1994, "MCMXCIV"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Format(tt.n); got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.n, got, tt.want)
			}
			got, ok := Parse(tt.want)
			if !ok || got != tt.n {
				t.Errorf("Parse(%q) = %d, %v, want %d, true", tt.want, got, ok, tt.n)
			}
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, s := range []string{"", "IIII", "IC", "ABC", "VX", "0"} {
		if n, ok := Parse(s); ok {
			t.Errorf("Parse(%q) = %d, true, want rejection", s, n)
		}
	}
}

func TestParse_CaseInsensitive(t *testing.T) {
	if n, ok := Parse(" iii "); !ok || n != 3 {
		t.Errorf("Parse(\" iii \") = %d, %v", n, ok)
	}
}

func TestFormat_NonPositive(t *testing.T) {
	if got := Format(0); got != "" {
		t.Errorf("Format(0) = %q, want empty", got)
	}
}
