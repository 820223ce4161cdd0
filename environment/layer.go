package environment

// Layer is a horizontal slab of the world covering [YMin, YMax).
type Layer struct {
	Name string
	YMin float64
	YMax float64
	Cost float64 // traversal cost multiplier, reserved for layer-aware pathing
}

// NumLayers is the number of vertical layers.
const NumLayers = 10

var layers = [NumLayers]Layer{
	{Name: "Bedrock", YMin: -20, YMax: -10, Cost: 2.0},
	{Name: "Substrate", YMin: -10, YMax: 0, Cost: 1.0},
	{Name: "Understory", YMin: 0, YMax: 10, Cost: 1.0},
	{Name: "Canopy", YMin: 10, YMax: 20, Cost: 1.2},
	{Name: "Emergent", YMin: 20, YMax: 30, Cost: 1.5},
	{Name: "Troposphere", YMin: 30, YMax: 50, Cost: 2.0},
	{Name: "Stratosphere", YMin: 50, YMax: 70, Cost: 3.0},
	{Name: "Mesosphere", YMin: 70, YMax: 90, Cost: 4.0},
	{Name: "Thermosphere", YMin: 90, YMax: 120, Cost: 6.0},
	{Name: "Exosphere", YMin: 120, YMax: 999, Cost: 10.0},
}

// LayerAt returns the index of the first layer containing y, or 0 when y
// lies outside every layer.
func LayerAt(y float64) int {
	for i := range layers {
		if y >= layers[i].YMin && y < layers[i].YMax {
			return i
		}
	}
	return 0
}

// LayerInfo returns the layer definition for an index. Out-of-range indices
// return layer 0.
func LayerInfo(i int) Layer {
	if i < 0 || i >= NumLayers {
		return layers[0]
	}
	return layers[i]
}
