package algorithm

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"enigmaCrackerBackend/internal/core/domain"
)

func TestNewDictionary(t *testing.T) {
	tests := []struct {
		name     string
		words    []string
		excluded string
		want     []string
		wantErr  error
	}{
		{
			name:  "Upper-cases words",
			words: []string{"hello", "World", "HELLO"},
			want:  []string{"HELLO", "WORLD"},
		},
		{
			name:     "Strips excluded characters",
			words:    []string{"don't", "stop!", "!?"},
			excluded: "'!?",
			want:     []string{"DONT", "STOP"},
		},
		{
			name:    "Empty list",
			words:   nil,
			wantErr: domain.ErrEmptyDictionary,
		},
		{
			name:     "Only excluded characters",
			words:    []string{"..", "."},
			excluded: ".",
			wantErr:  domain.ErrEmptyDictionary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDictionary(tt.words, tt.excluded)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewDictionary() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := d.Words(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Words() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDictionary_ContainsAndTokens(t *testing.T) {
	d, err := ParseDictionary("apple banana\ncherry", ".,")
	if err != nil {
		t.Fatal(err)
	}

	for _, w := range []string{"apple", "BANANA", "Cherry", "app.le"} {
		if !d.Contains(w) {
			t.Errorf("Contains(%q) = false, want true", w)
		}
	}
	if d.Contains("grape") {
		t.Error("Contains(grape) = true, want false")
	}
	if d.MaxWordLength() != 6 {
		t.Errorf("MaxWordLength() = %d, want 6", d.MaxWordLength())
	}

	got := d.Tokens("  apple, banana  cherry.")
	want := []string{"APPLE", "BANANA", "CHERRY"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestDictionary_CustomSeparators(t *testing.T) {
	d, err := NewDictionary([]string{"ONE", "TWO"}, "", WithSeparators("X"))
	if err != nil {
		t.Fatal(err)
	}
	got := d.Tokens("ONEXTWOXX")
	if want := []string{"ONE", "TWO"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestLoadWordlist(t *testing.T) {
	tempDir := t.TempDir()
	path := createTempWordlist(t, tempDir, "words.txt", []string{"# comment", "alpha beta", "", "gamma"})

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	d, err := LoadWordlist(file, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"ALPHA", "BETA", "GAMMA"}; !reflect.DeepEqual(d.Words(), want) {
		t.Errorf("Words() = %v, want %v", d.Words(), want)
	}

	if _, err := LoadWordlist(strings.NewReader("\n# nothing\n"), ""); !errors.Is(err, domain.ErrEmptyDictionary) {
		t.Errorf("LoadWordlist(empty) error = %v, want %v", err, domain.ErrEmptyDictionary)
	}
}

func createTempWordlist(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	for _, line := range lines {
		if _, err := file.WriteString(line + "\n"); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func TestFoldsCase(t *testing.T) {
	tests := []struct {
		alphabet string
		want     bool
	}{
		{"ABCDEFGHIJKLMNOPQRSTUVWXYZ", true},
		{"AB12 .", true},
		{"abcd", true},
		{"ABab", false},
		{"XYZx", false},
	}
	for _, tt := range tests {
		if got := FoldsCase(tt.alphabet); got != tt.want {
			t.Errorf("FoldsCase(%q) = %v, want %v", tt.alphabet, got, tt.want)
		}
	}
}

func TestDictionary_WithoutCaseFolding(t *testing.T) {
	d, err := NewDictionary([]string{"Ab", "cd"}, "", WithCaseFolding(false))
	if err != nil {
		t.Fatal(err)
	}
	if !d.Contains("Ab") || !d.Contains("cd") {
		t.Errorf("exact words not found in %v", d.Words())
	}
	if d.Contains("AB") || d.Contains("ab") || d.Contains("CD") {
		t.Errorf("case variants matched in %v", d.Words())
	}

	s := NewScorer(domain.LevelHard, d)
	if !s.Accept("Abcd cdAb") {
		t.Errorf("Accept of exact-case text = false, want true")
	}
	if s.Accept("ABCD") {
		t.Errorf("Accept of distinct symbols merged by case = true, want false")
	}
}
