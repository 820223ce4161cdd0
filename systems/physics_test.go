package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gaia/components"
)

func TestIntegrate(t *testing.T) {
	tests := []struct {
		name    string
		pos     components.Position
		vel     components.Velocity
		force   r3.Vec
		wantPos r3.Vec
		wantVel r3.Vec
	}{
		{
			name:    "damped drift",
			pos:     components.Position{X: 0, Y: 5, Z: 0},
			vel:     components.Velocity{X: 1},
			force:   r3.Vec{Z: 1},
			wantPos: r3.Vec{X: 0.9, Y: 5, Z: 0.9},
			wantVel: r3.Vec{X: 0.9, Z: 0.9},
		},
		{
			name:    "floor bounce",
			pos:     components.Position{Y: -11},
			vel:     components.Velocity{Y: -2},
			wantPos: r3.Vec{Y: -12},
			wantVel: r3.Vec{Y: 0.9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, vel := tt.pos, tt.vel
			Integrate(&pos, &vel, tt.force, 0.9, -12, -0.5)

			if d := r3.Norm(r3.Sub(pos.Vec(), tt.wantPos)); d > 1e-9 {
				t.Errorf("pos = %v, want %v", pos.Vec(), tt.wantPos)
			}
			if d := r3.Norm(r3.Sub(vel.Vec(), tt.wantVel)); d > 1e-9 {
				t.Errorf("vel = %v, want %v", vel.Vec(), tt.wantVel)
			}
		})
	}
}

func TestCenterPull(t *testing.T) {
	center := r3.Vec{Y: -612}

	f := CenterPull(r3.Vec{Y: 0}, center, 0.02)
	if math.Abs(f.Y+0.02) > 1e-12 || f.X != 0 || f.Z != 0 {
		t.Errorf("pull from above = %v, want (0, -0.02, 0)", f)
	}

	f = CenterPull(r3.Vec{X: 3, Y: -612, Z: 4}, center, 1)
	if math.Abs(r3.Norm(f)-1) > 1e-12 || f.X >= 0 || f.Z >= 0 {
		t.Errorf("pull = %v, want unit vector towards centre", f)
	}

	if f := CenterPull(center, center, 1); f != (r3.Vec{}) {
		t.Errorf("pull at centre = %v, want zero", f)
	}
}

func TestSteer(t *testing.T) {
	force, dist := Steer(r3.Vec{X: 1}, r3.Vec{X: 4, Z: 4}, 0.5)
	if dist != 5 {
		t.Errorf("dist = %v, want 5", dist)
	}
	if force != (r3.Vec{X: 1.5, Z: 2}) {
		t.Errorf("force = %v, want (1.5, 0, 2)", force)
	}
}
