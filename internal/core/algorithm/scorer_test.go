package algorithm

import (
	"testing"

	"enigmaCrackerBackend/internal/core/domain"
)

func TestScorer_Accept(t *testing.T) {
	d, err := NewDictionary([]string{"THE", "CAT", "SAT", "ON", "MAT", "A", "WEATHER"}, "")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		level domain.TaskLevel
		text  string
		want  bool
	}{
		{"Easy fragment inside token", domain.LevelEasy, "XXCATXX", true},
		{"Easy whole short word", domain.LevelEasy, "QQ ON", true},
		{"Easy short fragment ignored", domain.LevelEasy, "QONQ", false},
		{"Easy no match", domain.LevelEasy, "QWERTY ZXCV", false},
		{"Easy lowercase text", domain.LevelEasy, "zzweatherzz", true},
		{"Medium half tokens", domain.LevelMedium, "THE QQQ", true},
		{"Medium minority", domain.LevelMedium, "THE QQQ ZZZ", false},
		{"Medium fragments do not count", domain.LevelMedium, "XCATX YTHEY", false},
		{"Medium all words", domain.LevelMedium, "THE CAT SAT", true},
		{"Hard segmented", domain.LevelHard, "THECATSAT ONAMAT", true},
		{"Hard one bad token", domain.LevelHard, "THECAT SATX", false},
		{"Hard single word", domain.LevelHard, "WEATHER", true},
		{"Empty text", domain.LevelEasy, "   ", false},
		{"Empty text hard", domain.LevelHard, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScorer(tt.level, d)
			if got := s.Accept(tt.text); got != tt.want {
				t.Errorf("Accept(%q) at %s = %v, want %v", tt.text, tt.level, got, tt.want)
			}
		})
	}
}
