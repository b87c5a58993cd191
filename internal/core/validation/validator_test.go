package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/testutil"
)

func TestValidate_AcceptsValidDefinitions(t *testing.T) {
	assert.NoError(t, Validate(testutil.ClassicDefinition()))
	assert.NoError(t, Validate(testutil.SmallDefinition()))
}

func TestValidate_FirstViolation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(def *domain.MachineDefinition)
		want   domain.ViolationKind
	}{
		{
			name:   "odd alphabet",
			mutate: func(def *domain.MachineDefinition) { def.Alphabet = "ABCDEFG" },
			want:   domain.ViolationOddAlphabet,
		},
		{
			name: "odd alphabet wins over broken rotors",
			mutate: func(def *domain.MachineDefinition) {
				def.Alphabet = "ABCDEFG"
				def.Rotors = def.Rotors[:1]
				def.Rotors[0].Wiring = "AAAAAA"
			},
			want: domain.ViolationOddAlphabet,
		},
		{
			name:   "empty alphabet",
			mutate: func(def *domain.MachineDefinition) { def.Alphabet = "" },
			want:   domain.ViolationOddAlphabet,
		},
		{
			name:   "duplicate alphabet symbol",
			mutate: func(def *domain.MachineDefinition) { def.Alphabet = "ABCDEA" },
			want:   domain.ViolationDuplicateSymbol,
		},
		{
			name:   "rotor count above pool",
			mutate: func(def *domain.MachineDefinition) { def.RotorCount = 4 },
			want:   domain.ViolationRotorCount,
		},
		{
			name:   "rotor count zero",
			mutate: func(def *domain.MachineDefinition) { def.RotorCount = 0 },
			want:   domain.ViolationRotorCount,
		},
		{
			name: "single available rotor",
			mutate: func(def *domain.MachineDefinition) {
				def.Rotors = def.Rotors[:1]
				def.RotorCount = 1
			},
			want: domain.ViolationTooFewRotors,
		},
		{
			name:   "single rotor in use",
			mutate: func(def *domain.MachineDefinition) { def.RotorCount = 1 },
			want:   domain.ViolationTooFewRotors,
		},
		{
			name:   "rotor id out of range",
			mutate: func(def *domain.MachineDefinition) { def.Rotors[2].ID = 7 },
			want:   domain.ViolationRotorID,
		},
		{
			name:   "duplicate rotor id",
			mutate: func(def *domain.MachineDefinition) { def.Rotors[2].ID = 1 },
			want:   domain.ViolationRotorID,
		},
		{
			name:   "rotor wiring duplicate target",
			mutate: func(def *domain.MachineDefinition) { def.Rotors[1].Wiring = "EBDFCE" },
			want:   domain.ViolationRotorWiring,
		},
		{
			name:   "rotor wiring short",
			mutate: func(def *domain.MachineDefinition) { def.Rotors[1].Wiring = "EBDFC" },
			want:   domain.ViolationRotorWiring,
		},
		{
			name:   "rotor wiring foreign symbol",
			mutate: func(def *domain.MachineDefinition) { def.Rotors[1].Wiring = "EBDFCZ" },
			want:   domain.ViolationRotorWiring,
		},
		{
			name: "duplicate rotor mapping",
			mutate: func(def *domain.MachineDefinition) {
				def.Rotors[2].Wiring = def.Rotors[0].Wiring
				def.Rotors[2].Notch = def.Rotors[0].Notch
			},
			want: domain.ViolationDuplicateRotor,
		},
		{
			name:   "notch out of range",
			mutate: func(def *domain.MachineDefinition) { def.Rotors[0].Notch = 7 },
			want:   domain.ViolationNotch,
		},
		{
			name:   "notch zero",
			mutate: func(def *domain.MachineDefinition) { def.Rotors[0].Notch = 0 },
			want:   domain.ViolationNotch,
		},
		{
			name:   "no reflectors",
			mutate: func(def *domain.MachineDefinition) { def.Reflectors = nil },
			want:   domain.ViolationReflectorID,
		},
		{
			name:   "reflector id not roman",
			mutate: func(def *domain.MachineDefinition) { def.Reflectors[1].ID = "2" },
			want:   domain.ViolationReflectorID,
		},
		{
			name:   "reflector id beyond pool",
			mutate: func(def *domain.MachineDefinition) { def.Reflectors[1].ID = "III" },
			want:   domain.ViolationReflectorID,
		},
		{
			name:   "reflector fixed point",
			mutate: func(def *domain.MachineDefinition) { def.Reflectors[0].Wiring = "AEDCBF" },
			want:   domain.ViolationReflectorWiring,
		},
		{
			name:   "reflector not symmetric",
			mutate: func(def *domain.MachineDefinition) { def.Reflectors[0].Wiring = "BCAEFD" },
			want:   domain.ViolationReflectorWiring,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := testutil.SmallDefinition()
			tt.mutate(def)

			err := Validate(def)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrStructuralConfig))

			var cfgErr *domain.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.want, cfgErr.Kind, cfgErr.Error())
		})
	}
}

func TestConfigError_Message(t *testing.T) {
	err := Validate(&domain.MachineDefinition{Alphabet: "ABC"})
	require.Error(t, err)
	assert.Equal(t, "enigma: invalid configuration (odd-alphabet) alphabet: alphabet has 3 symbols, an even size is required", err.Error())
}
