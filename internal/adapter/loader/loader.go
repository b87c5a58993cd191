// Package loader reads machine files: YAML documents describing the
// alphabet, the rotor and reflector pools and, optionally, the decipher
// settings with their dictionary.
package loader

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"enigmaCrackerBackend/internal/core/algorithm"
	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/core/machine"
)

//go:embed classic.yaml
var classicYAML []byte

var ErrNoDecipher = errors.New("loader: machine file has no decipher section")

// Decode parses one machine document. Unknown keys are rejected so typos in a
// machine file do not go unnoticed.
func Decode(r io.Reader) (*domain.MachineDefinition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def domain.MachineDefinition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("loader: empty machine file")
		}
		return nil, fmt.Errorf("loader: decode machine file: %w", err)
	}
	return &def, nil
}

// LoadFile decodes the machine file at path.
func LoadFile(path string) (*domain.MachineDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Classic returns the built-in historical machine.
func Classic() *domain.MachineDefinition {
	def, err := Decode(bytes.NewReader(classicYAML))
	if err != nil {
		panic(err)
	}
	return def
}

// Encode writes def as YAML.
func Encode(w io.Writer, def *domain.MachineDefinition) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return fmt.Errorf("loader: encode machine file: %w", err)
	}
	return enc.Close()
}

// Machine is a loaded machine file: the validated catalog and, when the file
// has a decipher section, its dictionary and agent count.
type Machine struct {
	Definition *domain.MachineDefinition
	Catalog    *machine.Catalog
	Dictionary *algorithm.Dictionary
	Agents     int
}

// Build validates def and prepares its dictionary.
func Build(def *domain.MachineDefinition) (*Machine, error) {
	catalog, err := machine.NewCatalog(def)
	if err != nil {
		return nil, err
	}
	m := &Machine{Definition: def, Catalog: catalog}
	if def.Decipher != nil {
		dict, err := Dictionary(def)
		if err != nil {
			return nil, err
		}
		m.Dictionary = dict
		m.Agents = def.Decipher.Agents
	}
	return m, nil
}

// Open loads and builds a machine file. An empty path selects the built-in
// machine.
func Open(path string) (*Machine, error) {
	if path == "" {
		return Build(Classic())
	}
	def, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Build(def)
}

// Dictionary builds the dictionary of def's decipher section.
func Dictionary(def *domain.MachineDefinition) (*algorithm.Dictionary, error) {
	if def.Decipher == nil {
		return nil, ErrNoDecipher
	}
	return algorithm.ParseDictionary(def.Decipher.Dictionary.Words, def.Decipher.Dictionary.Excluded,
		algorithm.WithCaseFolding(algorithm.FoldsCase(def.Alphabet)))
}
