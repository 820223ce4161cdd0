// Package neural provides the fixed-topology feedforward controller that
// drives each agent.
package neural

import (
	"math"
	"math/rand"
)

// Network dimensions (compile-time constants for array sizing).
const (
	NumInputs  = 5 // energy, age, prey distance, mate distance, rival distance
	NumHidden  = 4
	NumOutputs = 4 // move x, move z, aggression gate, mating desire
)

// Output indices.
const (
	OutMoveX = iota
	OutMoveZ
	OutAggression
	OutMating
)

// WeightLimit bounds every parameter after mutation.
const WeightLimit = 4.0

// NumParams is the total number of weights and biases.
const NumParams = NumHidden*NumInputs + NumHidden + NumOutputs*NumHidden + NumOutputs

// FFNN is a two-layer feedforward network with tanh hidden units and
// sigmoid outputs. It holds no state between activations.
type FFNN struct {
	W1 [NumHidden][NumInputs]float64  // input -> hidden weights
	B1 [NumHidden]float64             // hidden biases
	W2 [NumOutputs][NumHidden]float64 // hidden -> output weights
	B2 [NumOutputs]float64            // output biases
}

// NewFFNN creates a network with every parameter drawn uniformly in [-1,1].
func NewFFNN(rng *rand.Rand) *FFNN {
	nn := &FFNN{}
	nn.Randomize(rng)
	return nn
}

// Randomize overwrites every weight and bias with an independent uniform
// draw in [-1,1].
func (nn *FFNN) Randomize(rng *rand.Rand) {
	nn.each(func(p *float64) {
		*p = rng.Float64()*2 - 1
	})
}

// Activate computes the network output. Each output lies in (0,1).
// A mismatched input length yields the zero vector.
func (nn *FFNN) Activate(inputs []float64) [NumOutputs]float64 {
	var out [NumOutputs]float64
	if len(inputs) != NumInputs {
		return out
	}

	var hidden [NumHidden]float64
	for h := 0; h < NumHidden; h++ {
		sum := nn.B1[h]
		for i := 0; i < NumInputs; i++ {
			sum += inputs[i] * nn.W1[h][i]
		}
		hidden[h] = math.Tanh(sum)
	}

	for o := 0; o < NumOutputs; o++ {
		sum := nn.B2[o]
		for h := 0; h < NumHidden; h++ {
			sum += hidden[h] * nn.W2[o][h]
		}
		out[o] = sigmoid(sum)
	}
	return out
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Mutate perturbs each parameter with probability rate by a uniform draw in
// [-1,1] scaled by strength, clamping the result to [-WeightLimit, WeightLimit].
func (nn *FFNN) Mutate(rng *rand.Rand, rate, strength float64) {
	nn.each(func(p *float64) {
		if rng.Float64() < rate {
			*p = clamp(*p+(rng.Float64()*2-1)*strength, -WeightLimit, WeightLimit)
		}
	})
}

// Crossover builds a child by picking each parameter from a or b with equal
// probability. Values are never blended.
func Crossover(rng *rand.Rand, a, b *FFNN) *FFNN {
	child := a.Clone()
	pa := child.params()
	pb := b.params()
	for i := range pa {
		if rng.Float64() >= 0.5 {
			*pa[i] = *pb[i]
		}
	}
	return child
}

// Clone creates a deep copy of the network.
func (nn *FFNN) Clone() *FFNN {
	clone := *nn
	return &clone
}

// Params returns a flat copy of every parameter in W1, B1, W2, B2 order.
func (nn *FFNN) Params() []float64 {
	out := make([]float64, 0, NumParams)
	nn.each(func(p *float64) {
		out = append(out, *p)
	})
	return out
}

func (nn *FFNN) params() []*float64 {
	out := make([]*float64, 0, NumParams)
	nn.each(func(p *float64) {
		out = append(out, p)
	})
	return out
}

// each visits every parameter in a fixed order.
func (nn *FFNN) each(fn func(p *float64)) {
	for h := range nn.W1 {
		for i := range nn.W1[h] {
			fn(&nn.W1[h][i])
		}
	}
	for h := range nn.B1 {
		fn(&nn.B1[h])
	}
	for o := range nn.W2 {
		for h := range nn.W2[o] {
			fn(&nn.W2[o][h])
		}
	}
	for o := range nn.B2 {
		fn(&nn.B2[o])
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// BrainWeights holds flattened network weights for serialization.
type BrainWeights struct {
	W1 []float64 `json:"w1"` // [NumHidden * NumInputs]
	B1 []float64 `json:"b1"` // [NumHidden]
	W2 []float64 `json:"w2"` // [NumOutputs * NumHidden]
	B2 []float64 `json:"b2"` // [NumOutputs]
}

// MarshalWeights flattens the network weights for JSON serialization.
func (nn *FFNN) MarshalWeights() BrainWeights {
	bw := BrainWeights{
		W1: make([]float64, 0, NumHidden*NumInputs),
		B1: append([]float64(nil), nn.B1[:]...),
		W2: make([]float64, 0, NumOutputs*NumHidden),
		B2: append([]float64(nil), nn.B2[:]...),
	}
	for h := range nn.W1 {
		bw.W1 = append(bw.W1, nn.W1[h][:]...)
	}
	for o := range nn.W2 {
		bw.W2 = append(bw.W2, nn.W2[o][:]...)
	}
	return bw
}

// UnmarshalWeights restores network weights from flattened form. Missing
// trailing values leave the existing parameters in place.
func (nn *FFNN) UnmarshalWeights(bw BrainWeights) {
	for h := 0; h < NumHidden; h++ {
		for i := 0; i < NumInputs; i++ {
			if k := h*NumInputs + i; k < len(bw.W1) {
				nn.W1[h][i] = bw.W1[k]
			}
		}
	}
	copy(nn.B1[:], bw.B1)
	for o := 0; o < NumOutputs; o++ {
		for h := 0; h < NumHidden; h++ {
			if k := o*NumHidden + h; k < len(bw.W2) {
				nn.W2[o][h] = bw.W2[k]
			}
		}
	}
	copy(nn.B2[:], bw.B2)
}
