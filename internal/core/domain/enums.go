package domain

import "strings"

type TaskLevel int
type JobStatus string
type Outcome string
type ViolationKind int

const (
	// Task levels
	LevelEasy TaskLevel = iota + 1
	LevelMedium
	LevelHard
)

const (
	// Job status
	StatusPending   JobStatus = "PENDING"
	StatusRunning   JobStatus = "RUNNING"
	StatusComplete  JobStatus = "COMPLETE"
	StatusExhausted JobStatus = "EXHAUSTED"
	StatusFailed    JobStatus = "FAILED"
	StatusStopped   JobStatus = "STOPPED"

	// Crack outcomes
	OutcomeFound     Outcome = "FOUND"
	OutcomeExhausted Outcome = "EXHAUSTED"
)

const (
	ViolationNone ViolationKind = iota
	ViolationOddAlphabet
	ViolationDuplicateSymbol
	ViolationRotorCount
	ViolationTooFewRotors
	ViolationRotorID
	ViolationRotorWiring
	ViolationDuplicateRotor
	ViolationNotch
	ViolationReflectorID
	ViolationReflectorWiring
)

var levelNames = map[TaskLevel]string{
	LevelEasy:   "easy",
	LevelMedium: "medium",
	LevelHard:   "hard",
}

func (l TaskLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

func (l TaskLevel) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

// ParseTaskLevel accepts the level names case-insensitively.
func ParseTaskLevel(s string) (TaskLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for level, n := range levelNames {
		if n == name {
			return level, nil
		}
	}
	return 0, &ParseError{Type: "TaskLevel", Value: s}
}

func (l TaskLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, &ParseError{Type: "TaskLevel", Value: l.String()}
	}
	return []byte(l.String()), nil
}

func (l *TaskLevel) UnmarshalText(data []byte) error {
	level, err := ParseTaskLevel(string(data))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

var violationNames = [...]string{
	ViolationNone:            "none",
	ViolationOddAlphabet:     "odd-alphabet",
	ViolationDuplicateSymbol: "duplicate-symbol",
	ViolationRotorCount:      "rotor-count",
	ViolationTooFewRotors:    "too-few-rotors",
	ViolationRotorID:         "rotor-id",
	ViolationRotorWiring:     "rotor-wiring",
	ViolationDuplicateRotor:  "duplicate-rotor",
	ViolationNotch:           "notch",
	ViolationReflectorID:     "reflector-id",
	ViolationReflectorWiring: "reflector-wiring",
}

func (k ViolationKind) String() string {
	if k < 0 || int(k) >= len(violationNames) {
		return "unknown"
	}
	return violationNames[k]
}
