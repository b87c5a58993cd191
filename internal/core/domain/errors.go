package domain

import "strconv"

type CrackingError string

const (
	ErrNoMachineLoaded  CrackingError = "NO_MACHINE_LOADED"
	ErrInvalidSymbol    CrackingError = "INVALID_SYMBOL"
	ErrInvalidSettings  CrackingError = "INVALID_SETTINGS"
	ErrStructuralConfig CrackingError = "STRUCTURAL_CONFIG"
	ErrEmptyKeyspace    CrackingError = "EMPTY_KEYSPACE"
	ErrEmptyDictionary  CrackingError = "EMPTY_DICTIONARY"
	ErrJobNotFound      CrackingError = "JOB_NOT_FOUND"
)

func (e CrackingError) Error() string {
	return string(e)
}

// ConfigError reports the first structural violation found in a machine
// definition. It matches ErrStructuralConfig under errors.Is.
type ConfigError struct {
	Kind ViolationKind

	// Subject names the offending element, for example "rotor 3" or
	// "reflector II". Empty when the violation concerns the whole definition.
	Subject string

	Reason string
}

func (e *ConfigError) Error() string {
	msg := "enigma: invalid configuration (" + e.Kind.String() + ")"
	if e.Subject != "" {
		msg += " " + e.Subject
	}
	return msg + ": " + e.Reason
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrStructuralConfig
}

// SymbolError is returned when text contains a symbol outside the machine
// alphabet. Position is the rune index within the input.
type SymbolError struct {
	Symbol   rune
	Position int
}

func (e *SymbolError) Error() string {
	return "enigma: symbol " + strconv.QuoteRune(e.Symbol) + " at position " +
		strconv.Itoa(e.Position) + " is not in the machine alphabet"
}

func (e *SymbolError) Is(target error) bool {
	return target == ErrInvalidSymbol
}

// SettingsError is returned when code settings do not fit the loaded machine.
type SettingsError struct {
	Field  string
	Reason string
}

func (e *SettingsError) Error() string {
	return "enigma: invalid code settings." + e.Field + ": " + e.Reason
}

func (e *SettingsError) Is(target error) bool {
	return target == ErrInvalidSettings
}

// ParseError is returned when text cannot be interpreted as an enum-like value.
type ParseError struct {
	Type  string
	Value string
}

func (e *ParseError) Error() string {
	return "enigma: invalid " + e.Type + " value: " + e.Value
}
