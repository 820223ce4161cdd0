package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gaia/config"
	"github.com/pthm-cable/gaia/environment"
	"github.com/pthm-cable/gaia/neural"
	"github.com/pthm-cable/gaia/traits"
)

// Drive is the decoded intent of one brain activation.
type Drive struct {
	Force      r3.Vec // horizontal movement force
	Aggression float64
	Desire     float64
}

// DecodeOutputs turns brain outputs into a movement force, an effective
// aggression and a mating desire. Hunters move faster and hit harder;
// gatherers move slower.
func DecodeOutputs(out [neural.NumOutputs]float64, aggressionTrait float64, effects environment.Effects, job traits.JobClass, mv config.MovementConfig) Drive {
	moveX := out[neural.OutMoveX]*2 - 1
	moveZ := out[neural.OutMoveZ]*2 - 1

	d := Drive{
		Force:      r3.Vec{X: moveX * mv.MoveScale, Z: moveZ * mv.MoveScale},
		Aggression: out[neural.OutAggression] * aggressionTrait * effects.AggroMod,
		Desire:     out[neural.OutMating],
	}

	switch job {
	case traits.Hunter:
		d.Force = r3.Scale(mv.HunterSpeed, d.Force)
		d.Aggression *= mv.HunterAggression
	case traits.Gatherer:
		d.Force = r3.Scale(mv.GathererSpeed, d.Force)
	}
	return d
}
