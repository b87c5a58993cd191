// Package session holds the stateful, clonable cipher session: one machine
// configuration plus its message count and encryption statistics.
package session

import (
	"time"

	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/core/machine"
)

// Session owns one Configuration. A Session is not safe for concurrent use;
// hand each goroutine its own Clone.
type Session struct {
	catalog     *machine.Catalog
	config      *machine.Configuration
	initialCode string
	messages    int
	stats       *Statistics
	noStats     bool
}

type Option func(*Session)

// WithoutStatistics disables statistics recording. Search workers use it so
// that millions of trial decryptions do not accumulate history.
func WithoutStatistics() Option {
	return func(s *Session) {
		s.noStats = true
	}
}

// New creates a session over catalog. No code is set yet, so Encrypt fails
// with domain.ErrNoMachineLoaded until SetCode succeeds.
func New(catalog *machine.Catalog, opts ...Option) *Session {
	s := &Session{catalog: catalog}
	for _, opt := range opts {
		opt(s)
	}
	if !s.noStats {
		s.stats = newStatistics()
	}
	return s
}

func (s *Session) Catalog() *machine.Catalog {
	return s.catalog
}

// Ready reports whether a code has been set.
func (s *Session) Ready() bool {
	return s.config != nil
}

// SetCode assembles a configuration from settings and makes it the session's
// machine. On error the previous configuration stays in place.
func (s *Session) SetCode(settings domain.CodeSettings) error {
	if s.catalog == nil {
		return domain.ErrNoMachineLoaded
	}
	cfg, err := s.catalog.Configure(settings)
	if err != nil {
		return err
	}
	s.mount(cfg)
	return nil
}

// SetRotors is SetCode over numeric ids and position indices.
func (s *Session) SetRotors(rotorIDs, positions []int, reflectorID int) error {
	if s.catalog == nil {
		return domain.ErrNoMachineLoaded
	}
	cfg, err := s.catalog.Assemble(rotorIDs, positions, reflectorID)
	if err != nil {
		return err
	}
	s.mount(cfg)
	return nil
}

// SetPositions keeps the chosen rotors and reflector and moves to new start
// positions, which become the new initial code.
func (s *Session) SetPositions(positions []int) error {
	if s.config == nil {
		return domain.ErrNoMachineLoaded
	}
	if err := s.config.SetPositions(positions); err != nil {
		return err
	}
	s.initialCode = s.config.StartCode()
	return nil
}

func (s *Session) mount(cfg *machine.Configuration) {
	s.config = cfg
	s.initialCode = cfg.StartCode()
}

// Encrypt runs text through the machine. Encryption and decryption are the
// same operation. Text with a symbol outside the alphabet is rejected before
// any rotor moves.
func (s *Session) Encrypt(text string) (string, error) {
	if s.config == nil {
		return "", domain.ErrNoMachineLoaded
	}
	alphabet := s.config.Alphabet()
	in, err := alphabet.Indices(text)
	if err != nil {
		return "", err
	}

	if s.stats == nil {
		out := alphabet.Text(s.config.Encrypt(in))
		s.messages++
		return out, nil
	}

	start := time.Now()
	out := alphabet.Text(s.config.Encrypt(in))
	s.stats.record(s.initialCode, text, out, time.Since(start))
	s.messages++
	return out, nil
}

// Reset returns the rotors to the positions of the initial code.
func (s *Session) Reset() {
	if s.config != nil {
		s.config.Reset()
	}
}

// Clone returns an independent session with the same catalog and a deep copy
// of the configuration at its current positions. The clone starts with no
// statistics and a zero message count.
func (s *Session) Clone(opts ...Option) *Session {
	c := &Session{catalog: s.catalog, initialCode: s.initialCode, noStats: s.noStats}
	if s.config != nil {
		c.config = s.config.Clone()
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.noStats {
		c.stats = newStatistics()
	}
	return c
}

// RotorIDs lists the chosen rotors left to right, or nil when no code is set.
func (s *Session) RotorIDs() []int {
	if s.config == nil {
		return nil
	}
	return s.config.RotorIDs()
}

// ReflectorID is the chosen reflector, or 0 when no code is set.
func (s *Session) ReflectorID() int {
	if s.config == nil {
		return 0
	}
	return s.config.Reflector().ID()
}

// CurrentCode renders the current settings, or "" when no code is set.
func (s *Session) CurrentCode() string {
	if s.config == nil {
		return ""
	}
	return s.config.Code()
}

// InitialCode renders the settings the current code was set with.
func (s *Session) InitialCode() string {
	return s.initialCode
}

func (s *Session) MessageCount() int {
	return s.messages
}

// Statistics returns a copy of the recorded history, or nil when disabled.
func (s *Session) Statistics() []Record {
	if s.stats == nil {
		return nil
	}
	return s.stats.snapshot()
}

// Specification describes the loaded machine and the session's state.
func (s *Session) Specification() (domain.MachineSpecification, error) {
	if s.catalog == nil {
		return domain.MachineSpecification{}, domain.ErrNoMachineLoaded
	}
	alphabet := s.catalog.Alphabet()
	ids := s.catalog.RotorIDs()
	spec := domain.MachineSpecification{
		AvailableRotors:   len(ids),
		RotorCount:        s.catalog.RotorCount(),
		Reflectors:        len(s.catalog.ReflectorIDs()),
		MessagesProcessed: s.messages,
		InitialCode:       s.initialCode,
		CurrentCode:       s.CurrentCode(),
	}
	for _, id := range ids {
		spec.Rotors = append(spec.Rotors, domain.RotorInfo{ID: id, Notch: alphabet.Symbol(s.catalog.Notch(id))})
	}
	return spec, nil
}
