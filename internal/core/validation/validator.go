// Package validation runs the structural acceptance checks on a raw machine
// definition. Checks run in a fixed order and the first violation is returned;
// cheap counting checks precede bijection and involution checks.
package validation

import (
	"fmt"
	"strconv"

	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/utils/roman"
)

type check func(def *domain.MachineDefinition, abc map[rune]int) *domain.ConfigError

var checks = []check{
	checkRotorCount,
	checkEnoughRotors,
	checkRotors,
	checkDuplicateRotors,
	checkNotches,
	checkReflectors,
}

// Validate returns nil when def can be turned into a machine, or the first
// *domain.ConfigError found. It does not modify def and is safe to call
// concurrently on distinct inputs.
func Validate(def *domain.MachineDefinition) error {
	if def == nil {
		return violation(domain.ViolationOddAlphabet, "", "no machine definition")
	}
	abc, err := checkAlphabet(def.Alphabet)
	if err != nil {
		return err
	}
	for _, c := range checks {
		if err := c(def, abc); err != nil {
			return err
		}
	}
	return nil
}

func checkAlphabet(alphabet string) (map[rune]int, *domain.ConfigError) {
	symbols := []rune(alphabet)
	if len(symbols) == 0 {
		return nil, violation(domain.ViolationOddAlphabet, "alphabet", "alphabet is empty")
	}
	if len(symbols)%2 != 0 {
		return nil, violation(domain.ViolationOddAlphabet, "alphabet",
			fmt.Sprintf("alphabet has %d symbols, an even size is required", len(symbols)))
	}
	abc := make(map[rune]int, len(symbols))
	for i, r := range symbols {
		if _, dup := abc[r]; dup {
			return nil, violation(domain.ViolationDuplicateSymbol, "alphabet",
				fmt.Sprintf("symbol %q appears more than once", r))
		}
		abc[r] = i
	}
	return abc, nil
}

func checkRotorCount(def *domain.MachineDefinition, _ map[rune]int) *domain.ConfigError {
	if def.RotorCount <= 0 || def.RotorCount > len(def.Rotors) {
		return violation(domain.ViolationRotorCount, "",
			fmt.Sprintf("rotor count %d must be between 1 and the %d available rotors", def.RotorCount, len(def.Rotors)))
	}
	return nil
}

func checkEnoughRotors(def *domain.MachineDefinition, _ map[rune]int) *domain.ConfigError {
	if len(def.Rotors) < 2 || def.RotorCount < 2 {
		return violation(domain.ViolationTooFewRotors, "",
			"a machine needs at least two rotors in use")
	}
	return nil
}

func checkRotors(def *domain.MachineDefinition, abc map[rune]int) *domain.ConfigError {
	seen := make(map[int]bool, len(def.Rotors))
	for _, r := range def.Rotors {
		if r.ID < 1 || r.ID > len(def.Rotors) {
			return violation(domain.ViolationRotorID, rotorSubject(r.ID),
				fmt.Sprintf("rotor ids must run from 1 to %d", len(def.Rotors)))
		}
		if seen[r.ID] {
			return violation(domain.ViolationRotorID, rotorSubject(r.ID), "duplicate rotor id")
		}
		seen[r.ID] = true
	}
	for _, r := range def.Rotors {
		if reason := bijection(r.Wiring, abc); reason != "" {
			return violation(domain.ViolationRotorWiring, rotorSubject(r.ID), reason)
		}
	}
	return nil
}

func checkDuplicateRotors(def *domain.MachineDefinition, _ map[rune]int) *domain.ConfigError {
	type key struct {
		wiring string
		notch  int
	}
	owners := make(map[key]int, len(def.Rotors))
	for _, r := range def.Rotors {
		k := key{r.Wiring, r.Notch}
		if other, dup := owners[k]; dup {
			return violation(domain.ViolationDuplicateRotor, rotorSubject(r.ID),
				fmt.Sprintf("same wiring and notch as rotor %d", other))
		}
		owners[k] = r.ID
	}
	return nil
}

func checkNotches(def *domain.MachineDefinition, abc map[rune]int) *domain.ConfigError {
	for _, r := range def.Rotors {
		if r.Notch < 1 || r.Notch > len(abc) {
			return violation(domain.ViolationNotch, rotorSubject(r.ID),
				fmt.Sprintf("notch %d is outside 1..%d", r.Notch, len(abc)))
		}
	}
	return nil
}

func checkReflectors(def *domain.MachineDefinition, abc map[rune]int) *domain.ConfigError {
	if len(def.Reflectors) == 0 {
		return violation(domain.ViolationReflectorID, "", "no reflectors defined")
	}
	seen := make(map[int]bool, len(def.Reflectors))
	for _, ref := range def.Reflectors {
		n, ok := roman.Parse(ref.ID)
		if !ok || n > len(def.Reflectors) {
			return violation(domain.ViolationReflectorID, "reflector "+ref.ID,
				fmt.Sprintf("reflector ids must run from I to %s", roman.Format(len(def.Reflectors))))
		}
		if seen[n] {
			return violation(domain.ViolationReflectorID, "reflector "+ref.ID, "duplicate reflector id")
		}
		seen[n] = true
	}
	for _, ref := range def.Reflectors {
		if reason := involution(ref.Wiring, abc); reason != "" {
			return violation(domain.ViolationReflectorWiring, "reflector "+ref.ID, reason)
		}
	}
	return nil
}

// bijection reports why wiring is not a permutation of the alphabet, or "".
func bijection(wiring string, abc map[rune]int) string {
	targets := []rune(wiring)
	if len(targets) != len(abc) {
		return fmt.Sprintf("wiring has %d entries, want %d", len(targets), len(abc))
	}
	used := make([]bool, len(abc))
	for _, r := range targets {
		idx, ok := abc[r]
		if !ok {
			return fmt.Sprintf("wiring symbol %q is not in the alphabet", r)
		}
		if used[idx] {
			return fmt.Sprintf("wiring maps to %q more than once", r)
		}
		used[idx] = true
	}
	return ""
}

// involution reports why wiring is not a fixed-point-free involution, or "".
func involution(wiring string, abc map[rune]int) string {
	if reason := bijection(wiring, abc); reason != "" {
		return reason
	}
	targets := []rune(wiring)
	for i, r := range targets {
		j := abc[r]
		if j == i {
			return fmt.Sprintf("symbol %q reflects to itself", r)
		}
		if abc[targets[j]] != i {
			return fmt.Sprintf("pairing of %q is not symmetric", r)
		}
	}
	return ""
}

func rotorSubject(id int) string {
	return "rotor " + strconv.Itoa(id)
}

func violation(kind domain.ViolationKind, subject, reason string) *domain.ConfigError {
	return &domain.ConfigError{Kind: kind, Subject: subject, Reason: reason}
}
