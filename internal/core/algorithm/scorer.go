package algorithm

import "enigmaCrackerBackend/internal/core/domain"

// MinFragment is the shortest dictionary word an easy task accepts inside a
// longer token. Shorter words only count when they make up a whole token.
const MinFragment = 3

// Scorer decides whether a trial decryption is dictionary plausible. How
// strict it is depends on the task level.
type Scorer struct {
	level domain.TaskLevel
	dict  *Dictionary
}

func NewScorer(level domain.TaskLevel, dict *Dictionary) *Scorer {
	return &Scorer{level: level, dict: dict}
}

// Accept applies the level rule:
//   - easy: some token contains a dictionary word;
//   - medium: at least half of the tokens are dictionary words;
//   - hard: every token splits into dictionary words.
func (s *Scorer) Accept(text string) bool {
	tokens := s.dict.Tokens(text)
	if len(tokens) == 0 {
		return false
	}

	switch s.level {
	case domain.LevelEasy:
		for _, tok := range tokens {
			if s.containsWord([]rune(tok)) {
				return true
			}
		}
		return false
	case domain.LevelMedium:
		hits := 0
		for _, tok := range tokens {
			if s.dict.has(tok) {
				hits++
			}
		}
		return hits > 0 && 2*hits >= len(tokens)
	default:
		for _, tok := range tokens {
			if !s.segments([]rune(tok)) {
				return false
			}
		}
		return true
	}
}

func (s *Scorer) containsWord(tok []rune) bool {
	if s.dict.has(string(tok)) {
		return true
	}
	maxLen := s.dict.MaxWordLength()
	for i := range tok {
		for n := MinFragment; n <= maxLen && i+n <= len(tok); n++ {
			if s.dict.has(string(tok[i : i+n])) {
				return true
			}
		}
	}
	return false
}

// segments reports whether tok is a concatenation of dictionary words.
func (s *Scorer) segments(tok []rune) bool {
	maxLen := s.dict.MaxWordLength()
	ok := make([]bool, len(tok)+1)
	ok[0] = true
	for end := 1; end <= len(tok); end++ {
		for n := 1; n <= maxLen && n <= end; n++ {
			if ok[end-n] && s.dict.has(string(tok[end-n:end])) {
				ok[end] = true
				break
			}
		}
	}
	return ok[len(tok)]
}
