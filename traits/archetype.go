package traits

import "github.com/pthm-cable/gaia/environment"

// reserved letters have no archetype.
const reserved = "MW"

// letters lists the 24 archetype letters in alphabetical order.
var letters = buildLetters()

// registry maps each archetype letter to its founder traits. Built once at
// init and never written afterwards.
var registry = buildRegistry()

func buildLetters() []byte {
	out := make([]byte, 0, 24)
	for c := byte('A'); c <= 'Z'; c++ {
		if c == reserved[0] || c == reserved[1] {
			continue
		}
		out = append(out, c)
	}
	return out
}

func buildRegistry() map[byte]Traits {
	m := make(map[byte]Traits, len(letters))
	for _, l := range letters {
		m[l] = founderTraits(l)
	}
	return m
}

// founderTraits derives an archetype's traits from its code point.
func founderTraits(letter byte) Traits {
	seed := int(letter)
	return Traits{
		Aggression:   0.2 + float64(seed%9)*0.1,
		Defense:      0.2 + float64(seed%8)*0.1,
		Metabolism:   0.5 + float64(seed%6)*0.1,
		ReproRate:    0.01 + float64(seed%5)*0.01,
		Asexual:      seed%6 == 0,
		FavoredBiome: environment.BiomeID(seed % environment.NumBiomes),
	}
}

// Lookup returns the founder traits for an archetype letter.
func Lookup(letter byte) (Traits, bool) {
	t, ok := registry[letter]
	return t, ok
}

// IsArchetype reports whether letter has a registry entry.
func IsArchetype(letter byte) bool {
	_, ok := registry[letter]
	return ok
}

// Letters returns the archetype letters in alphabetical order.
func Letters() []byte {
	out := make([]byte, len(letters))
	copy(out, letters)
	return out
}

// NumArchetypes returns the number of archetype letters.
func NumArchetypes() int {
	return len(letters)
}

// LetterAt returns the i-th archetype letter.
func LetterAt(i int) byte {
	return letters[i]
}
