// Package machine implements the rotor cipher: the validated pool of rotors
// and reflectors (Catalog) and the assembled, steppable Configuration.
package machine

import (
	"fmt"
	"sort"

	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/core/validation"
	"enigmaCrackerBackend/internal/utils/roman"
)

// Catalog is the validated machine definition: the alphabet, every available
// rotor and reflector, and how many rotors a configuration uses. It is
// immutable after NewCatalog and safe for concurrent use.
type Catalog struct {
	alphabet     *Alphabet
	wheels       map[int]*wheel
	rotorIDs     []int
	reflectors   map[int]*Reflector
	reflectorIDs []int
	rotorCount   int
}

// NewCatalog validates def and builds the catalog. Validation failures are
// returned unchanged as *domain.ConfigError.
func NewCatalog(def *domain.MachineDefinition) (*Catalog, error) {
	if err := validation.Validate(def); err != nil {
		return nil, err
	}

	c := &Catalog{
		alphabet:   newAlphabet(def.Alphabet),
		wheels:     make(map[int]*wheel, len(def.Rotors)),
		reflectors: make(map[int]*Reflector, len(def.Reflectors)),
		rotorCount: def.RotorCount,
	}
	for _, rd := range def.Rotors {
		wiring, _ := c.alphabet.Indices(rd.Wiring)
		c.wheels[rd.ID] = newWheel(rd.ID, wiring, rd.Notch-1)
		c.rotorIDs = append(c.rotorIDs, rd.ID)
	}
	for _, ref := range def.Reflectors {
		id, _ := roman.Parse(ref.ID)
		pairing, _ := c.alphabet.Indices(ref.Wiring)
		c.reflectors[id] = &Reflector{id: id, pairing: pairing}
		c.reflectorIDs = append(c.reflectorIDs, id)
	}
	sort.Ints(c.rotorIDs)
	sort.Ints(c.reflectorIDs)
	return c, nil
}

func (c *Catalog) Alphabet() *Alphabet {
	return c.alphabet
}

func (c *Catalog) RotorCount() int {
	return c.rotorCount
}

// RotorIDs lists the available rotor ids in ascending order.
func (c *Catalog) RotorIDs() []int {
	return append([]int(nil), c.rotorIDs...)
}

// ReflectorIDs lists the available reflector ids in ascending order.
func (c *Catalog) ReflectorIDs() []int {
	return append([]int(nil), c.reflectorIDs...)
}

// Notch returns the notch position of a rotor, or -1 for an unknown id.
func (c *Catalog) Notch(rotorID int) int {
	if w, ok := c.wheels[rotorID]; ok {
		return w.notch
	}
	return -1
}

// Configure assembles a configuration from symbolic code settings.
func (c *Catalog) Configure(settings domain.CodeSettings) (*Configuration, error) {
	ids := make([]int, len(settings.Rotors))
	positions := make([]int, len(settings.Rotors))
	for i, rs := range settings.Rotors {
		pos, ok := c.alphabet.IndexOf(rs.Position)
		if !ok {
			return nil, &domain.SettingsError{
				Field:  "Rotors",
				Reason: fmt.Sprintf("start position %q of rotor %d is not in the alphabet", rs.Position, rs.ID),
			}
		}
		ids[i] = rs.ID
		positions[i] = pos
	}
	reflector, ok := roman.Parse(settings.Reflector)
	if !ok {
		return nil, &domain.SettingsError{
			Field:  "Reflector",
			Reason: fmt.Sprintf("%q is not a reflector id", settings.Reflector),
		}
	}
	return c.Assemble(ids, positions, reflector)
}

// Assemble builds a configuration from rotor ids (left to right), their start
// position indices and a numeric reflector id.
func (c *Catalog) Assemble(rotorIDs, positions []int, reflectorID int) (*Configuration, error) {
	if len(rotorIDs) != c.rotorCount {
		return nil, &domain.SettingsError{
			Field:  "Rotors",
			Reason: fmt.Sprintf("%d rotors chosen, the machine uses %d", len(rotorIDs), c.rotorCount),
		}
	}
	if len(positions) != len(rotorIDs) {
		return nil, &domain.SettingsError{
			Field:  "Rotors",
			Reason: fmt.Sprintf("%d start positions for %d rotors", len(positions), len(rotorIDs)),
		}
	}
	reflector, ok := c.reflectors[reflectorID]
	if !ok {
		return nil, &domain.SettingsError{
			Field:  "Reflector",
			Reason: fmt.Sprintf("reflector %s does not exist", roman.Format(reflectorID)),
		}
	}

	rotors := make([]Rotor, len(rotorIDs))
	used := make(map[int]bool, len(rotorIDs))
	for i, id := range rotorIDs {
		w, ok := c.wheels[id]
		if !ok {
			return nil, &domain.SettingsError{Field: "Rotors", Reason: fmt.Sprintf("rotor %d does not exist", id)}
		}
		if used[id] {
			return nil, &domain.SettingsError{Field: "Rotors", Reason: fmt.Sprintf("rotor %d chosen twice", id)}
		}
		used[id] = true
		if positions[i] < 0 || positions[i] >= c.alphabet.Size() {
			return nil, &domain.SettingsError{
				Field:  "Rotors",
				Reason: fmt.Sprintf("start position %d of rotor %d is out of range", positions[i], id),
			}
		}
		rotors[i] = Rotor{wheel: w, start: positions[i], position: positions[i]}
	}

	return &Configuration{alphabet: c.alphabet, rotors: rotors, reflector: reflector}, nil
}
