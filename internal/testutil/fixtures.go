// Package testutil holds machine definitions shared by tests.
package testutil

import "enigmaCrackerBackend/internal/core/domain"

const Latin = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ClassicDefinition returns the historical rotors I-V and reflectors A, B, C
// (as I, II, III) over the Latin alphabet with three rotors in use.
func ClassicDefinition() *domain.MachineDefinition {
	return &domain.MachineDefinition{
		Alphabet:   Latin,
		RotorCount: 3,
		Rotors: []domain.RotorDefinition{
			{ID: 1, Notch: 17, Wiring: "EKMFLGDQVZNTOWYHXUSPAIBRCJ"},
			{ID: 2, Notch: 5, Wiring: "AJDKSIRUXBLHWTMCQGZNPYFVOE"},
			{ID: 3, Notch: 22, Wiring: "BDFHJLCPRTXVZNYEIWGAKMUSQO"},
			{ID: 4, Notch: 10, Wiring: "ESOVPZJAYQUIRHXLNFTGKDCMWB"},
			{ID: 5, Notch: 26, Wiring: "VZBRGITYUPSDNHLXAWMJQOFECK"},
		},
		Reflectors: []domain.ReflectorDefinition{
			{ID: "I", Wiring: "EJMZALYXVBWFCRQUONTSPIKHGD"},
			{ID: "II", Wiring: "YRUHQSLDPXNGOKMIEBFZCWVJAT"},
			{ID: "III", Wiring: "FVPJIAOYEDRZXWGCTKUQSBNMHL"},
		},
	}
}

// SmallDefinition returns a six-symbol machine with two rotors in use, small
// enough to exhaust quickly.
func SmallDefinition() *domain.MachineDefinition {
	return &domain.MachineDefinition{
		Alphabet:   "ABCDEF",
		RotorCount: 2,
		Rotors: []domain.RotorDefinition{
			{ID: 1, Notch: 4, Wiring: "FEDCBA"},
			{ID: 2, Notch: 1, Wiring: "EBDFCA"},
			{ID: 3, Notch: 6, Wiring: "CADFBE"},
		},
		Reflectors: []domain.ReflectorDefinition{
			{ID: "I", Wiring: "FEDCBA"},
			{ID: "II", Wiring: "BADCFE"},
		},
	}
}

// Code builds code settings from rotor ids, start symbols and a reflector id.
func Code(ids []int, positions string, reflector string) domain.CodeSettings {
	pos := []rune(positions)
	settings := domain.CodeSettings{Reflector: reflector}
	for i, id := range ids {
		settings.Rotors = append(settings.Rotors, domain.RotorSetting{ID: id, Position: pos[i]})
	}
	return settings
}
