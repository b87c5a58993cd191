package machine

import "enigmaCrackerBackend/internal/core/domain"

// Alphabet maps machine symbols to dense indices and back. It is immutable
// and safe to share between sessions.
type Alphabet struct {
	symbols []rune
	lookup  map[rune]int
}

func newAlphabet(symbols string) *Alphabet {
	a := &Alphabet{symbols: []rune(symbols)}
	a.lookup = make(map[rune]int, len(a.symbols))
	for i, r := range a.symbols {
		a.lookup[r] = i
	}
	return a
}

func (a *Alphabet) Size() int {
	return len(a.symbols)
}

func (a *Alphabet) Symbol(i int) rune {
	return a.symbols[i]
}

func (a *Alphabet) IndexOf(r rune) (int, bool) {
	i, ok := a.lookup[r]
	return i, ok
}

func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.lookup[r]
	return ok
}

func (a *Alphabet) String() string {
	return string(a.symbols)
}

// Indices converts text to alphabet indices. The first symbol outside the
// alphabet is reported as a *domain.SymbolError.
func (a *Alphabet) Indices(text string) ([]int, error) {
	runes := []rune(text)
	out := make([]int, len(runes))
	for i, r := range runes {
		idx, ok := a.lookup[r]
		if !ok {
			return nil, &domain.SymbolError{Symbol: r, Position: i}
		}
		out[i] = idx
	}
	return out, nil
}

func (a *Alphabet) Text(indices []int) string {
	out := make([]rune, len(indices))
	for i, idx := range indices {
		out[i] = a.symbols[idx]
	}
	return string(out)
}
