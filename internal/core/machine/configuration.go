package machine

import (
	"fmt"
	"strconv"
	"strings"

	"enigmaCrackerBackend/internal/core/domain"
)

// Configuration is an ordered stack of chosen rotors, left to right, plus one
// reflector. It owns the stepping and substitution; a Configuration must not
// be shared between goroutines, use Clone instead.
type Configuration struct {
	alphabet  *Alphabet
	rotors    []Rotor
	reflector *Reflector
}

// Encrypt transforms a sequence of alphabet indices, stepping the rotors once
// per symbol. Indices must already be within the alphabet.
func (c *Configuration) Encrypt(in []int) []int {
	out := make([]int, len(in))
	for i, x := range in {
		c.step()
		out[i] = c.transform(x)
	}
	return out
}

// step advances the rightmost rotor and any rotor whose right neighbour
// landed on its notch on the previous symbol. Rotors are visited left to
// right so a carry raised now is only honoured on the next symbol.
func (c *Configuration) step() {
	last := len(c.rotors) - 1
	for i := range c.rotors {
		r := &c.rotors[i]
		move := i == last || r.carry
		r.carry = false
		if move && r.advance() && i > 0 {
			c.rotors[i-1].carry = true
		}
	}
}

func (c *Configuration) transform(x int) int {
	for i := len(c.rotors) - 1; i >= 0; i-- {
		x = c.rotors[i].mapForward(x)
	}
	x = c.reflector.reflect(x)
	for i := range c.rotors {
		x = c.rotors[i].mapBackward(x)
	}
	return x
}

// Reset restores every rotor to its start position and drops pending carries.
func (c *Configuration) Reset() {
	for i := range c.rotors {
		c.rotors[i].reset()
	}
}

// SetPositions moves every rotor to the given start positions and makes them
// the positions Reset returns to. Pending carries are dropped.
func (c *Configuration) SetPositions(positions []int) error {
	if len(positions) != len(c.rotors) {
		return &domain.SettingsError{
			Field:  "Rotors",
			Reason: fmt.Sprintf("%d start positions for %d rotors", len(positions), len(c.rotors)),
		}
	}
	for i, p := range positions {
		if p < 0 || p >= c.alphabet.Size() {
			return &domain.SettingsError{
				Field:  "Rotors",
				Reason: fmt.Sprintf("start position %d of rotor %d is out of range", p, c.rotors[i].id),
			}
		}
	}
	for i, p := range positions {
		c.rotors[i].start = p
		c.rotors[i].reset()
	}
	return nil
}

// Clone returns an independent copy including current positions and carries.
// Wiring tables are immutable and stay shared.
func (c *Configuration) Clone() *Configuration {
	clone := *c
	clone.rotors = make([]Rotor, len(c.rotors))
	copy(clone.rotors, c.rotors)
	return &clone
}

func (c *Configuration) Alphabet() *Alphabet {
	return c.alphabet
}

func (c *Configuration) Reflector() *Reflector {
	return c.reflector
}

func (c *Configuration) RotorIDs() []int {
	ids := make([]int, len(c.rotors))
	for i := range c.rotors {
		ids[i] = c.rotors[i].id
	}
	return ids
}

func (c *Configuration) Positions() []int {
	pos := make([]int, len(c.rotors))
	for i := range c.rotors {
		pos[i] = c.rotors[i].position
	}
	return pos
}

func (c *Configuration) StartPositions() []int {
	pos := make([]int, len(c.rotors))
	for i := range c.rotors {
		pos[i] = c.rotors[i].start
	}
	return pos
}

// Code renders the current settings as <ids><positions><reflector>.
func (c *Configuration) Code() string {
	return c.format(c.Positions())
}

// StartCode renders the settings the configuration was assembled with.
func (c *Configuration) StartCode() string {
	return c.format(c.StartPositions())
}

func (c *Configuration) format(positions []int) string {
	var sb strings.Builder
	sb.WriteByte('<')
	for i := range c.rotors {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(c.rotors[i].id))
	}
	sb.WriteString("><")
	for i, p := range positions {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(c.alphabet.Symbol(p))
	}
	sb.WriteString("><")
	sb.WriteString(c.reflector.Name())
	sb.WriteByte('>')
	return sb.String()
}
