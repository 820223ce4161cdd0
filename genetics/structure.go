// Package genetics implements the growable base sequence carried by every
// agent and the fitness score computed over it.
package genetics

import (
	"math/rand"
	"strings"
)

// Base is one symbol of the four-letter alphabet.
type Base uint8

// NumBases is the alphabet size.
const NumBases = 4

// MaxSequenceLength caps sequence growth.
const MaxSequenceLength = 50

var baseLetters = [NumBases]byte{'A', 'T', 'C', 'G'}

// Letter returns the display letter for b.
func (b Base) Letter() byte {
	return baseLetters[b%NumBases]
}

// Permutations lists the 24 orderings of the four bases in their canonical
// order. Agent variants and structure order types index into this table.
var Permutations = [24][NumBases]uint8{
	{0, 1, 2, 3}, {0, 1, 3, 2}, {0, 2, 1, 3}, {0, 2, 3, 1}, {0, 3, 1, 2}, {0, 3, 2, 1},
	{1, 0, 2, 3}, {1, 0, 3, 2}, {1, 2, 3, 0}, {1, 2, 0, 3}, {1, 3, 2, 0}, {1, 3, 0, 2},
	{2, 0, 1, 3}, {2, 0, 3, 1}, {2, 1, 3, 0}, {2, 1, 0, 3}, {2, 3, 1, 0}, {2, 3, 0, 1},
	{3, 0, 1, 2}, {3, 0, 2, 1}, {3, 1, 2, 0}, {3, 1, 0, 2}, {3, 2, 1, 0}, {3, 2, 0, 1},
}

// NumPermutations is the size of the permutation table.
const NumPermutations = len(Permutations)

// PermutationIndex returns the table index of p, or -1.
func PermutationIndex(p [NumBases]uint8) int {
	for i, q := range Permutations {
		if q == p {
			return i
		}
	}
	return -1
}

// Digits renders permutation idx as a digit string such as "0123".
// Out-of-range indices wrap.
func Digits(idx int) string {
	idx = ((idx % NumPermutations) + NumPermutations) % NumPermutations
	var sb strings.Builder
	for _, d := range Permutations[idx] {
		sb.WriteByte('0' + d)
	}
	return sb.String()
}

// Genes returns the display gene pair for a variant: the structural gene is
// the variant itself, the interaction gene is the following permutation.
func Genes(variant int) (structGene, interactGene string) {
	return Digits(variant), Digits(variant + 1)
}

var modulationSteps = [4]int{2, 4, 6, 8}

// Structure is a growable base sequence plus static scoring parameters.
// Mode, Modulation and Resistance are fixed at creation.
type Structure struct {
	Sequence   []Base
	OrderType  [NumBases]uint8
	Mode       int
	Modulation [4]int
	Resistance int
}

// RandomStructure creates a structure with an empty sequence and uniformly
// random order type, mode, modulation and resistance.
func RandomStructure(rng *rand.Rand) *Structure {
	s := &Structure{
		OrderType:  Permutations[rng.Intn(NumPermutations)],
		Mode:       rng.Intn(4),
		Resistance: 8,
	}
	for i := range s.Modulation {
		m := modulationSteps[rng.Intn(len(modulationSteps))]
		if rng.Intn(2) == 0 {
			m = -m
		}
		s.Modulation[i] = m
	}
	if rng.Intn(2) == 0 {
		s.Resistance = -8
	}
	return s
}

// Len returns the sequence length.
func (s *Structure) Len() int {
	return len(s.Sequence)
}

// Append adds b to the sequence. Returns false at the length cap.
func (s *Structure) Append(b Base) bool {
	if len(s.Sequence) >= MaxSequenceLength {
		return false
	}
	s.Sequence = append(s.Sequence, b%NumBases)
	return true
}

// Grow appends one random base. Returns false at the length cap.
func (s *Structure) Grow(rng *rand.Rand) bool {
	if len(s.Sequence) >= MaxSequenceLength {
		return false
	}
	return s.Append(Base(rng.Intn(NumBases)))
}

// Clone returns a deep copy.
func (s *Structure) Clone() *Structure {
	c := *s
	c.Sequence = append([]Base(nil), s.Sequence...)
	return &c
}

// String renders the sequence as letters.
func (s *Structure) String() string {
	var sb strings.Builder
	sb.Grow(len(s.Sequence))
	for _, b := range s.Sequence {
		sb.WriteByte(b.Letter())
	}
	return sb.String()
}

// InfoDensity scores how ordered, diverse and non-repetitive the sequence
// is. Sequences shorter than two bases score 0.5.
func InfoDensity(s *Structure) float64 {
	n := len(s.Sequence)
	if n < 2 {
		return 0.5
	}

	var rank [NumBases]int
	for pos, b := range s.OrderType {
		rank[b%NumBases] = pos
	}

	ordered, repeats := 0, 0
	var seen [NumBases]bool
	seen[s.Sequence[0]%NumBases] = true
	for i := 0; i+1 < n; i++ {
		a, b := s.Sequence[i]%NumBases, s.Sequence[i+1]%NumBases
		if rank[a] <= rank[b] {
			ordered++
		}
		if a == b {
			repeats++
		}
		seen[b] = true
	}

	distinct := 0
	for _, ok := range seen {
		if ok {
			distinct++
		}
	}

	g := float64(ordered) / float64(n-1)
	d := float64(distinct) / NumBases
	r := 1 / (1 + float64(repeats))
	return 0.35*g + 0.25*d + 0.2*r + 0.2
}

// Fitness scores a structure. It is pure.
func Fitness(s *Structure) float64 {
	dens := InfoDensity(s)
	n := float64(len(s.Sequence))

	bits := max(0.5*n, 2*n-0.8*dens*n)

	penalty := -0.6
	if s.Resistance < 0 {
		penalty = 1
	}
	cost := n + 0.5*penalty

	return 2.0*dens + 1.2/(1+bits) + 0.8/(1+cost)
}
