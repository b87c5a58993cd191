package machine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/testutil"
)

func classicCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(testutil.ClassicDefinition())
	require.NoError(t, err)
	return c
}

func encryptText(t *testing.T, cfg *Configuration, text string) string {
	t.Helper()
	in, err := cfg.Alphabet().Indices(text)
	require.NoError(t, err)
	return cfg.Alphabet().Text(cfg.Encrypt(in))
}

func TestConfiguration_RoundTrip(t *testing.T) {
	c := classicCatalog(t)
	rng := rand.New(rand.NewSource(7))

	codes := []domain.CodeSettings{
		testutil.Code([]int{1, 2, 3}, "AAA", "I"),
		testutil.Code([]int{5, 2, 4}, "QEV", "II"),
		testutil.Code([]int{3, 1, 5}, "ZZZ", "III"),
	}
	for _, code := range codes {
		cfg, err := c.Configure(code)
		require.NoError(t, err)

		for n := 0; n < 20; n++ {
			plain := make([]rune, 1+rng.Intn(200))
			for i := range plain {
				plain[i] = rune('A' + rng.Intn(26))
			}
			cipher := encryptText(t, cfg, string(plain))
			cfg.Reset()
			assert.Equal(t, string(plain), encryptText(t, cfg, cipher), cfg.StartCode())
			cfg.Reset()
		}
	}
}

func TestConfiguration_NeverMapsSymbolToItself(t *testing.T) {
	c := classicCatalog(t)
	cfg, err := c.Configure(testutil.Code([]int{1, 2, 3}, "AAA", "II"))
	require.NoError(t, err)

	in := make([]int, 500)
	out := cfg.Encrypt(in)
	for i, x := range out {
		assert.NotEqual(t, 0, x, "symbol %d encrypted to itself", i)
	}
}

func TestConfiguration_Stepping(t *testing.T) {
	c := classicCatalog(t)
	// Rightmost rotor 3 has its notch on V, middle rotor 2 on E.
	tests := []struct {
		symbols int
		want    string
	}{
		{1, "<1,2,3><A,A,B><I>"},
		{21, "<1,2,3><A,A,V><I>"},
		{22, "<1,2,3><A,B,W><I>"},
		{26, "<1,2,3><A,B,A><I>"},
		{47, "<1,2,3><A,B,V><I>"},
		{48, "<1,2,3><A,C,W><I>"},
		{100, "<1,2,3><A,E,W><I>"},
		{101, "<1,2,3><B,E,X><I>"},
	}

	for _, tt := range tests {
		cfg, err := c.Configure(testutil.Code([]int{1, 2, 3}, "AAA", "I"))
		require.NoError(t, err)
		cfg.Encrypt(make([]int, tt.symbols))
		assert.Equal(t, tt.want, cfg.Code(), "after %d symbols", tt.symbols)
	}
}

func TestConfiguration_SingleCarryPerRevolution(t *testing.T) {
	c := classicCatalog(t)
	cfg, err := c.Configure(testutil.Code([]int{1, 2, 3}, "AAC", "I"))
	require.NoError(t, err)

	advances, prev := 0, 0
	for i := 0; i < 26; i++ {
		cfg.Encrypt([]int{0})
		if p := cfg.Positions()[1]; p != prev {
			advances++
			prev = p
		}
	}
	assert.Equal(t, 1, advances)
	assert.Equal(t, []int{0, 1, 2}, cfg.Positions())
}

func TestConfiguration_CloneIsIndependent(t *testing.T) {
	c := classicCatalog(t)
	cfg, err := c.Configure(testutil.Code([]int{2, 4, 5}, "BCD", "I"))
	require.NoError(t, err)
	cfg.Encrypt(make([]int, 10))
	before := cfg.Code()

	clone := cfg.Clone()
	assert.Equal(t, before, clone.Code())
	clone.Encrypt(make([]int, 40))

	assert.Equal(t, before, cfg.Code())
	assert.NotEqual(t, before, clone.Code())

	// Both continue identically from the same state.
	clone = cfg.Clone()
	assert.Equal(t, cfg.Encrypt([]int{1, 2, 3, 4}), clone.Encrypt([]int{1, 2, 3, 4}))
}

func TestConfiguration_ResetRestoresStart(t *testing.T) {
	c := classicCatalog(t)
	cfg, err := c.Configure(testutil.Code([]int{1, 2, 3}, "KDV", "III"))
	require.NoError(t, err)
	cfg.Encrypt(make([]int, 77))
	cfg.Reset()
	assert.Equal(t, "<1,2,3><K,D,V><III>", cfg.Code())
	assert.Equal(t, cfg.StartCode(), cfg.Code())
}

func TestConfiguration_SetPositions(t *testing.T) {
	c := classicCatalog(t)
	cfg, err := c.Configure(testutil.Code([]int{1, 2, 3}, "AAA", "I"))
	require.NoError(t, err)
	cfg.Encrypt(make([]int, 30))

	require.NoError(t, cfg.SetPositions([]int{2, 1, 25}))
	assert.Equal(t, "<1,2,3><C,B,Z><I>", cfg.Code())
	cfg.Encrypt(make([]int, 5))
	cfg.Reset()
	assert.Equal(t, "<1,2,3><C,B,Z><I>", cfg.Code())

	assert.ErrorIs(t, cfg.SetPositions([]int{0, 0}), domain.ErrInvalidSettings)
	assert.ErrorIs(t, cfg.SetPositions([]int{0, 0, 26}), domain.ErrInvalidSettings)
	assert.Equal(t, "<1,2,3><C,B,Z><I>", cfg.Code())
}

func TestCatalog_Configure_Rejects(t *testing.T) {
	c := classicCatalog(t)
	tests := []struct {
		name string
		code domain.CodeSettings
	}{
		{"too few rotors", testutil.Code([]int{1, 2}, "AA", "I")},
		{"too many rotors", testutil.Code([]int{1, 2, 3, 4}, "AAAA", "I")},
		{"unknown rotor", testutil.Code([]int{1, 2, 9}, "AAA", "I")},
		{"repeated rotor", testutil.Code([]int{1, 2, 1}, "AAA", "I")},
		{"position outside alphabet", testutil.Code([]int{1, 2, 3}, "AA?", "I")},
		{"unknown reflector", testutil.Code([]int{1, 2, 3}, "AAA", "IV")},
		{"malformed reflector", testutil.Code([]int{1, 2, 3}, "AAA", "B")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Configure(tt.code)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidSettings), err.Error())
		})
	}
}

func TestNewCatalog_PropagatesValidation(t *testing.T) {
	def := testutil.ClassicDefinition()
	def.Alphabet = "ABC"
	_, err := NewCatalog(def)
	assert.True(t, errors.Is(err, domain.ErrStructuralConfig))
}

func TestCatalog_Accessors(t *testing.T) {
	c := classicCatalog(t)
	assert.Equal(t, 26, c.Alphabet().Size())
	assert.Equal(t, 3, c.RotorCount())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, c.RotorIDs())
	assert.Equal(t, []int{1, 2, 3}, c.ReflectorIDs())
	assert.Equal(t, 16, c.Notch(1))
	assert.Equal(t, -1, c.Notch(42))
}

func TestAlphabet_Indices(t *testing.T) {
	a := newAlphabet("ABCD")
	idx, err := a.Indices("DCBA")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1, 0}, idx)
	assert.Equal(t, "DCBA", a.Text(idx))

	_, err = a.Indices("ABz")
	var symErr *domain.SymbolError
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, 'z', symErr.Symbol)
	assert.Equal(t, 2, symErr.Position)
	assert.True(t, errors.Is(err, domain.ErrInvalidSymbol))
}
