package algorithm

import (
	"bufio"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"enigmaCrackerBackend/internal/core/domain"
)

// DefaultSeparators split decrypted text into tokens.
const DefaultSeparators = " "

// Dictionary is the set of known plaintext words. Words are stored upper-cased
// unless case folding is off, with excluded characters removed; text is
// normalized the same way before lookup. A Dictionary is read-only after
// construction and safe to share.
type Dictionary struct {
	words      map[string]struct{}
	maxLen     int
	excluded   string
	separators string
	foldCase   bool
}

type DictionaryOption func(*Dictionary)

// WithSeparators replaces the token separators.
func WithSeparators(separators string) DictionaryOption {
	return func(d *Dictionary) {
		d.separators = separators
	}
}

// NewDictionary builds a dictionary from words, removing any character listed
// in excluded. It fails with domain.ErrEmptyDictionary when nothing remains.
// WithCaseFolding turns upper-casing of words and text on or off. Machines
// whose alphabet holds both cases of a letter need it off, see FoldsCase.
func WithCaseFolding(fold bool) DictionaryOption {
	return func(d *Dictionary) {
		d.foldCase = fold
	}
}

// FoldsCase reports whether upper-casing keeps every symbol of alphabet
// distinct, so that case can be ignored when matching decrypted text.
func FoldsCase(alphabet string) bool {
	seen := make(map[string]struct{}, len(alphabet))
	for _, r := range alphabet {
		u := strings.ToUpper(string(r))
		if _, dup := seen[u]; dup {
			return false
		}
		seen[u] = struct{}{}
	}
	return true
}

func NewDictionary(words []string, excluded string, opts ...DictionaryOption) (*Dictionary, error) {
	d := &Dictionary{
		words:      make(map[string]struct{}, len(words)),
		excluded:   excluded,
		separators: DefaultSeparators,
		foldCase:   true,
	}
	for _, opt := range opts {
		opt(d)
	}
	for _, w := range words {
		d.add(w)
	}
	if len(d.words) == 0 {
		return nil, domain.ErrEmptyDictionary
	}
	return d, nil
}

// ParseDictionary splits a whitespace separated word list, as found in a
// machine file.
func ParseDictionary(words, excluded string, opts ...DictionaryOption) (*Dictionary, error) {
	return NewDictionary(strings.Fields(words), excluded, opts...)
}

// LoadWordlist reads words from r, any number per line.
func LoadWordlist(r io.Reader, excluded string, opts ...DictionaryOption) (*Dictionary, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewDictionary(words, excluded, opts...)
}

func (d *Dictionary) add(word string) {
	w := d.Normalize(word)
	if w == "" {
		return
	}
	d.words[w] = struct{}{}
	if n := utf8.RuneCountInString(w); n > d.maxLen {
		d.maxLen = n
	}
}

// Normalize upper-cases text, when folding case, and strips excluded
// characters.
func (d *Dictionary) Normalize(text string) string {
	if d.foldCase {
		text = strings.ToUpper(text)
	}
	if d.excluded == "" {
		return text
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(d.excluded, r) {
			return -1
		}
		return r
	}, text)
}

// Tokens normalizes text and splits it on the separators. Empty tokens are
// dropped.
func (d *Dictionary) Tokens(text string) []string {
	return strings.FieldsFunc(d.Normalize(text), func(r rune) bool {
		return strings.ContainsRune(d.separators, r)
	})
}

// Contains reports whether word, once normalized, is a dictionary word.
func (d *Dictionary) Contains(word string) bool {
	return d.has(d.Normalize(word))
}

func (d *Dictionary) has(normalized string) bool {
	_, ok := d.words[normalized]
	return ok
}

func (d *Dictionary) Len() int {
	return len(d.words)
}

// MaxWordLength is the length in symbols of the longest word.
func (d *Dictionary) MaxWordLength() int {
	return d.maxLen
}

// Words returns the normalized words in sorted order.
func (d *Dictionary) Words() []string {
	out := make([]string, 0, len(d.words))
	for w := range d.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
