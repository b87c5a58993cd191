package algorithm

import (
	"fmt"
	"math"

	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/core/machine"
)

// Candidate is one point of the keyspace: a rotor ordering, a reflector and
// start position indices.
type Candidate struct {
	RotorIDs  []int
	Reflector int
	Positions []int
}

// Chunk is the half-open index range [Start, End) of one mission.
type Chunk struct {
	Index int
	Start int64
	End   int64
}

func (c Chunk) Len() int64 {
	return c.End - c.Start
}

// Keyspace numbers every candidate of a CandidateSpace. Candidates are ordered
// by rotor set, then reflector, then start positions with the rightmost rotor
// varying fastest.
type Keyspace struct {
	sets       [][]int
	reflectors []int
	symbols    int
	width      int
	perSet     int64
	size       int64
}

// NewKeyspace checks that every rotor set has the same length and that the
// space is not empty.
func NewKeyspace(space domain.CandidateSpace, alphabetSize int) (*Keyspace, error) {
	if len(space.RotorSets) == 0 || len(space.Reflectors) == 0 || alphabetSize < 1 {
		return nil, domain.ErrEmptyKeyspace
	}
	width := len(space.RotorSets[0])
	for _, set := range space.RotorSets {
		if len(set) != width || width == 0 {
			return nil, &domain.SettingsError{
				Field:  "Space",
				Reason: fmt.Sprintf("rotor sets of different sizes (%d and %d)", width, len(set)),
			}
		}
	}

	k := &Keyspace{
		sets:       space.RotorSets,
		reflectors: space.Reflectors,
		symbols:    alphabetSize,
		width:      width,
		perSet:     1,
	}
	for i := 0; i < width; i++ {
		if k.perSet > math.MaxInt64/int64(alphabetSize) {
			return nil, &domain.SettingsError{Field: "Space", Reason: "keyspace too large"}
		}
		k.perSet *= int64(alphabetSize)
	}
	combos := int64(len(k.sets)) * int64(len(k.reflectors))
	if k.perSet > math.MaxInt64/combos {
		return nil, &domain.SettingsError{Field: "Space", Reason: "keyspace too large"}
	}
	k.size = combos * k.perSet
	return k, nil
}

func (k *Keyspace) Size() int64 {
	return k.size
}

// At decodes candidate i. It panics when i is out of range.
func (k *Keyspace) At(i int64) Candidate {
	if i < 0 || i >= k.size {
		panic(fmt.Sprintf("algorithm: candidate %d outside keyspace of %d", i, k.size))
	}
	pos := i % k.perSet
	combo := i / k.perSet
	c := Candidate{
		RotorIDs:  k.sets[combo/int64(len(k.reflectors))],
		Reflector: k.reflectors[combo%int64(len(k.reflectors))],
		Positions: make([]int, k.width),
	}
	for j := k.width - 1; j >= 0; j-- {
		c.Positions[j] = int(pos % int64(k.symbols))
		pos /= int64(k.symbols)
	}
	return c
}

// Walk calls fn for every candidate of chunk in order until fn returns false.
// The candidate passed to fn is reused between calls.
func (k *Keyspace) Walk(chunk Chunk, fn func(i int64, c *Candidate) bool) {
	if chunk.Start >= chunk.End {
		return
	}
	c := k.At(chunk.Start)
	combo := chunk.Start / k.perSet
	for i := chunk.Start; i < chunk.End; i++ {
		if !fn(i, &c) {
			return
		}
		if k.nextPositions(c.Positions) {
			continue
		}
		combo++
		if combo*k.perSet >= k.size {
			return
		}
		c.RotorIDs = k.sets[combo/int64(len(k.reflectors))]
		c.Reflector = k.reflectors[combo%int64(len(k.reflectors))]
	}
}

// nextPositions increments the odometer and reports false when it wrapped.
func (k *Keyspace) nextPositions(p []int) bool {
	for j := len(p) - 1; j >= 0; j-- {
		p[j]++
		if p[j] < k.symbols {
			return true
		}
		p[j] = 0
	}
	return false
}

// Partition splits the keyspace into consecutive chunks of at most
// missionSize candidates.
func (k *Keyspace) Partition(missionSize int64) []Chunk {
	if missionSize < 1 {
		missionSize = k.size
	}
	chunks := make([]Chunk, 0, (k.size+missionSize-1)/missionSize)
	for start := int64(0); start < k.size; start += missionSize {
		end := start + missionSize
		if end > k.size {
			end = k.size
		}
		chunks = append(chunks, Chunk{Index: len(chunks), Start: start, End: end})
	}
	return chunks
}

// SpaceForLevel is the default candidate space of a task level around a known
// rotor choice and reflector:
//   - easy: only the start positions are unknown;
//   - medium: the reflector is unknown too;
//   - hard: the order of the rotors is unknown as well.
func SpaceForLevel(level domain.TaskLevel, catalog *machine.Catalog, rotorIDs []int, reflector int) domain.CandidateSpace {
	ids := append([]int(nil), rotorIDs...)
	switch level {
	case domain.LevelEasy:
		return domain.CandidateSpace{RotorSets: [][]int{ids}, Reflectors: []int{reflector}}
	case domain.LevelMedium:
		return domain.CandidateSpace{RotorSets: [][]int{ids}, Reflectors: catalog.ReflectorIDs()}
	default:
		return domain.CandidateSpace{RotorSets: permutations(ids, len(ids)), Reflectors: catalog.ReflectorIDs()}
	}
}

// FullSpace covers every ordered choice of rotors from the pool with every
// reflector.
func FullSpace(catalog *machine.Catalog) domain.CandidateSpace {
	return domain.CandidateSpace{
		RotorSets:  permutations(catalog.RotorIDs(), catalog.RotorCount()),
		Reflectors: catalog.ReflectorIDs(),
	}
}

// permutations lists the k-permutations of pool in lexicographic order of
// pool indices.
func permutations(pool []int, k int) [][]int {
	if k < 1 || k > len(pool) {
		return nil
	}
	var out [][]int
	used := make([]bool, len(pool))
	current := make([]int, 0, k)
	var rec func()
	rec = func() {
		if len(current) == k {
			out = append(out, append([]int(nil), current...))
			return
		}
		for i, id := range pool {
			if used[i] {
				continue
			}
			used[i] = true
			current = append(current, id)
			rec()
			current = current[:len(current)-1]
			used[i] = false
		}
	}
	rec()
	return out
}
