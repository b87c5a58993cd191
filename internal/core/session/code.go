package session

import (
	"math/rand"
	"strconv"
	"strings"

	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/core/machine"
	"enigmaCrackerBackend/internal/utils/random"
	"enigmaCrackerBackend/internal/utils/roman"
)

// ParseCode reads the <ids><positions><reflector> form produced by
// CurrentCode, for example "<1,2,3><A,B,C><I>". Positions are single symbols
// separated by commas, so a comma may itself be a position symbol.
func ParseCode(code string) (domain.CodeSettings, error) {
	bad := &domain.ParseError{Type: "code", Value: code}

	ids, rest, ok := group(code)
	if !ok {
		return domain.CodeSettings{}, bad
	}
	// The reflector group cannot contain '<', so the last one starts it.
	cut := strings.LastIndex(rest, "<")
	if cut < 0 {
		return domain.CodeSettings{}, bad
	}
	positions, reflector := rest[:cut], rest[cut:]
	if len(positions) < 2 || positions[0] != '<' || positions[len(positions)-1] != '>' {
		return domain.CodeSettings{}, bad
	}
	if len(reflector) < 3 || reflector[len(reflector)-1] != '>' {
		return domain.CodeSettings{}, bad
	}

	var settings domain.CodeSettings
	for _, f := range strings.Split(ids, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return domain.CodeSettings{}, bad
		}
		settings.Rotors = append(settings.Rotors, domain.RotorSetting{ID: id})
	}

	symbols := []rune(positions[1 : len(positions)-1])
	if len(symbols) != 2*len(settings.Rotors)-1 {
		return domain.CodeSettings{}, bad
	}
	for i := range settings.Rotors {
		if i > 0 && symbols[2*i-1] != ',' {
			return domain.CodeSettings{}, bad
		}
		settings.Rotors[i].Position = symbols[2*i]
	}

	settings.Reflector = reflector[1 : len(reflector)-1]
	return settings, nil
}

func group(s string) (inner, rest string, ok bool) {
	if !strings.HasPrefix(s, "<") {
		return "", "", false
	}
	end := strings.IndexByte(s, '>')
	if end < 2 {
		return "", "", false
	}
	return s[1:end], s[end+1:], true
}

// RandomCode picks distinct rotors, start positions and a reflector from the
// catalog.
func RandomCode(catalog *machine.Catalog, rng *rand.Rand) domain.CodeSettings {
	ids := random.Sample(rng, catalog.RotorIDs(), catalog.RotorCount())
	positions := []rune(random.String(rng, catalog.Alphabet().String(), len(ids)))

	settings := domain.CodeSettings{}
	for i, id := range ids {
		settings.Rotors = append(settings.Rotors, domain.RotorSetting{ID: id, Position: positions[i]})
	}
	settings.Reflector = roman.Format(random.Pick(rng, catalog.ReflectorIDs()))
	return settings
}

// FromCode returns a new session over catalog already set to code.
func FromCode(catalog *machine.Catalog, code string, opts ...Option) (*Session, error) {
	settings, err := ParseCode(code)
	if err != nil {
		return nil, err
	}
	s := New(catalog, opts...)
	if err := s.SetCode(settings); err != nil {
		return nil, err
	}
	return s, nil
}
