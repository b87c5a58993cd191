package domain

import "time"

// MachineDefinition is the parsed, not yet validated, description of a machine
// as produced by a loader.
type MachineDefinition struct {
	Alphabet   string                `json:"alphabet" yaml:"alphabet"`
	RotorCount int                   `json:"rotorCount" yaml:"rotorCount"`
	Rotors     []RotorDefinition     `json:"rotors" yaml:"rotors"`
	Reflectors []ReflectorDefinition `json:"reflectors" yaml:"reflectors"`
	Decipher   *DecipherDefinition   `json:"decipher,omitempty" yaml:"decipher,omitempty"`
}

type RotorDefinition struct {
	ID     int    `json:"id" yaml:"id"`
	Notch  int    `json:"notch" yaml:"notch"`
	Wiring string `json:"wiring" yaml:"wiring"`
}

type ReflectorDefinition struct {
	ID     string `json:"id" yaml:"id"`
	Wiring string `json:"wiring" yaml:"wiring"`
}

type DecipherDefinition struct {
	Agents     int                  `json:"agents" yaml:"agents"`
	Dictionary DictionaryDefinition `json:"dictionary" yaml:"dictionary"`
}

type DictionaryDefinition struct {
	Words    string `json:"words" yaml:"words"`
	Excluded string `json:"excluded" yaml:"excluded"`
}

// CodeSettings selects rotors left to right with their start positions, and
// the reflector by its Roman numeral id.
type CodeSettings struct {
	Rotors    []RotorSetting `json:"rotors"`
	Reflector string         `json:"reflector"`
}

type RotorSetting struct {
	ID       int  `json:"id"`
	Position rune `json:"position"`
}

// CandidateSpace lists the rotor orderings and reflectors to try. Every start
// position of every rotor is always enumerated.
type CandidateSpace struct {
	RotorSets  [][]int `json:"rotorSets"`
	Reflectors []int   `json:"reflectors"`
}

// SearchTask is what a crack attempt is asked to solve. Space may be nil, in
// which case the task level picks the default space around the template code.
type SearchTask struct {
	Ciphertext string          `json:"ciphertext"`
	Level      TaskLevel       `json:"level"`
	Space      *CandidateSpace `json:"space,omitempty"`
	Deadline   time.Time       `json:"deadline,omitempty"`
}

type MachineSpecification struct {
	AvailableRotors   int         `json:"availableRotors"`
	RotorCount        int         `json:"rotorCount"`
	Rotors            []RotorInfo `json:"rotors"`
	Reflectors        int         `json:"reflectors"`
	MessagesProcessed int         `json:"messagesProcessed"`
	InitialCode       string      `json:"initialCode,omitempty"`
	CurrentCode       string      `json:"currentCode,omitempty"`
}

type RotorInfo struct {
	ID    int  `json:"id"`
	Notch rune `json:"notch"`
}

type CrackResult struct {
	JobID      string        `json:"jobId"`
	Outcome    Outcome       `json:"outcome"`
	Code       string        `json:"code,omitempty"`
	Plaintext  string        `json:"plaintext,omitempty"`
	Level      TaskLevel     `json:"level"`
	Candidates int64         `json:"candidates"`
	Attempts   int64         `json:"attempts"`
	TimeTaken  time.Duration `json:"timeTaken"`
}

func (r *CrackResult) Found() bool {
	return r != nil && r.Outcome == OutcomeFound
}

// FoundEvent is emitted at most once per task by the worker that won it.
type FoundEvent struct {
	JobID     string    `json:"jobId"`
	Found     bool      `json:"found"`
	Code      string    `json:"winningSettings"`
	Plaintext string    `json:"plaintext"`
	FoundAt   time.Time `json:"foundAt"`
}

type CrackingJob struct {
	ID              string          `json:"id"`
	Ciphertext      string          `json:"ciphertext"`
	Level           TaskLevel       `json:"level"`
	Status          JobStatus       `json:"status"`
	StartTime       time.Time       `json:"startTime"`
	EndTime         time.Time       `json:"endTime,omitempty"`
	FoundCode       string          `json:"foundCode,omitempty"`
	Plaintext       string          `json:"plaintext,omitempty"`
	Candidates      int64           `json:"candidates"`
	AttemptCount    int64           `json:"attemptCount"`
	Chunks          int             `json:"chunks"`
	Agents          int             `json:"agents"`
	ResourceMetrics ResourceMetrics `json:"resourceMetrics"`
	ErrorMessage    string          `json:"errorMessage,omitempty"`
}

type ResourceMetrics struct {
	CPUUsage       float64   `json:"cpuUsage"`
	MemoryUsageMB  int64     `json:"memoryUsageMb"`
	AttemptsPerSec int64     `json:"attemptsPerSec"`
	TotalAttempts  int64     `json:"totalAttempts"`
	ActiveThreads  int       `json:"activeThreads"`
	LastUpdated    time.Time `json:"lastUpdated"`
}
