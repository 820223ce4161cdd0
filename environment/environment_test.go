package environment

import "testing"

func TestBiomeAt(t *testing.T) {
	tests := []struct {
		name string
		x, z float64
		want BiomeID
	}{
		// sin(0.2)+cos(0.2)+sin(1.0) ≈ 2.02
		{"volcanic", 10, 10, Volcanic},
		// sin(0)+cos(0)+sin(0) = 1.0, not strictly above 1
		{"origin radiant", 0, 0, Radiant},
		// cos(2)+sin(5) ≈ -1.375
		{"abyssal", 0, 100, Abyssal},
		// sin(-1)+cos(0)+sin(-2.5) ≈ -0.44
		{"crystalline", -50, 0, Crystalline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BiomeAt(tt.x, tt.z); got != tt.want {
				t.Errorf("BiomeAt(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
			}
		})
	}
}

func TestBiomeEffects(t *testing.T) {
	if e := Volcanic.Effects(); e.MetaCost != 1.5 || e.ReproSpeed != 1.5 || e.AggroMod != 1.2 {
		t.Errorf("volcanic effects = %+v", e)
	}
	if e := Radiant.Effects(); e.AggroMod != 0.5 {
		t.Errorf("radiant aggro = %v, want 0.5", e.AggroMod)
	}
	if e := BiomeID(9).Effects(); e != neutralEffects {
		t.Errorf("unknown biome effects = %+v, want neutral", e)
	}
	if !Abyssal.Favors(6) || Abyssal.Favors(1) {
		t.Error("abyssal favoured colours wrong")
	}
}

func TestLayerAt(t *testing.T) {
	tests := []struct {
		y    float64
		want int
	}{
		{-20, 0},
		{-10, 1}, // half-open: -10 belongs to Substrate
		{-0.5, 1},
		{0, 2},
		{15, 3},
		{119.9, 8},
		{500, 9},
		{-100, 0}, // below every layer
		{5000, 0}, // above every layer
	}

	for _, tt := range tests {
		if got := LayerAt(tt.y); got != tt.want {
			t.Errorf("LayerAt(%v) = %d, want %d", tt.y, got, tt.want)
		}
	}
}

func TestLayerInfo(t *testing.T) {
	if l := LayerInfo(LayerAt(15)); l.Name != "Canopy" || l.YMin != 10 {
		t.Errorf("layer at 15 = %+v, want Canopy", l)
	}
	for _, i := range []int{-1, NumLayers} {
		if l := LayerInfo(i); l.Name != "Bedrock" {
			t.Errorf("LayerInfo(%d) = %q, want Bedrock", i, l.Name)
		}
	}
}

func TestTierProps(t *testing.T) {
	if Gaia.Props().Scale != 200 {
		t.Errorf("gaia scale = %v, want 200", Gaia.Props().Scale)
	}
	if Tier(42).Props() != Raw.Props() {
		t.Error("invalid tier should read as raw")
	}
	if Raw.String() != "Raw DNA" || SuperOrganism.String() != "Super Organism" {
		t.Error("tier names wrong")
	}
}

func TestEventCycleIdleWithoutAutoCycle(t *testing.T) {
	c := NewEventCycle(1500, 0.005, false)
	for i := 0; i < 5000; i++ {
		if c.Advance() {
			t.Fatal("cycle advanced with auto-cycle disabled")
		}
	}
	if c.Current() != EventNone || c.Next() != EventNone || c.Progress() != 0 {
		t.Errorf("state changed: current=%v next=%v progress=%v", c.Current(), c.Next(), c.Progress())
	}
}

func TestEventCycleRotates(t *testing.T) {
	c := NewEventCycle(1500, 0.005, true)

	triggers := 0
	for i := 0; i < 1500; i++ {
		if c.Advance() {
			triggers++
		}
	}
	if triggers != 0 || c.Next() != EventNone {
		t.Fatalf("triggered before era elapsed: next=%v", c.Next())
	}

	// Timer must exceed the era duration
	if !c.Advance() {
		t.Fatal("expected trigger on tick 1501")
	}
	if c.Next() != SolarMax {
		t.Fatalf("next = %v, want %v", c.Next(), SolarMax)
	}
	if c.Era() != SolarMax {
		t.Errorf("era = %v, want %v", c.Era(), SolarMax)
	}

	// Blend completes after ~200 ticks
	for i := 0; i < 210; i++ {
		c.Advance()
	}
	if c.Current() != SolarMax || c.Progress() != 1 {
		t.Fatalf("blend incomplete: current=%v progress=%v", c.Current(), c.Progress())
	}

	// Next era follows in order
	for !c.Advance() {
	}
	if c.Next() != IceAge {
		t.Errorf("next = %v, want %v", c.Next(), IceAge)
	}
}

func TestEventCycleTrigger(t *testing.T) {
	c := NewEventCycle(1500, 0.005, true)
	for i := 0; i < 300; i++ {
		c.Advance()
	}

	c.Trigger(VoidStorm)
	if c.Next() != VoidStorm || c.Progress() != 0 {
		t.Errorf("trigger did not reset blend: next=%v progress=%v", c.Next(), c.Progress())
	}
	if VoidStorm.String() != "Void Storm" || EventNone.String() != StableEra {
		t.Error("event names wrong")
	}
}
