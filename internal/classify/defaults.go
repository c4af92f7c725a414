package classify

// FallbackLatencyCycles is used when nothing else resolves a latency.
const FallbackLatencyCycles = 10.0

// DefaultWidth returns the data width (bits) assumed for a category.
func DefaultWidth(c Category) float64 {
	switch c.Class {
	case ClassCPU:
		return 64
	case ClassMemory:
		if c.Has("hbm", "sram") {
			return 128
		}
		return 64
	case ClassInterconnect:
		return 128
	case ClassBridge, ClassDMA:
		return 64
	case ClassAccelerator:
		if c.Has("gpu", "npu", "tpu") {
			return 256
		}
		return 128
	default:
		return 32
	}
}

// DefaultLatency returns the latency (cycles) assumed for a category.
func DefaultLatency(c Category) float64 {
	switch c.Class {
	case ClassCPU:
		return 4
	case ClassMemory:
		switch {
		case c.Has("sram"):
			return 2
		case c.Has("hbm"):
			return 40
		}
		return 50
	case ClassInterconnect:
		return 4
	case ClassBridge:
		return 8
	case ClassDMA:
		return 6
	case ClassAccelerator:
		return 10
	case ClassPeripheral:
		return 20
	case ClassConnectivity:
		return 30
	case ClassStorage:
		return 100
	default:
		return FallbackLatencyCycles
	}
}

// capacity is the estimated bandwidth (Mbit/s) of a shared component when
// no per-flow record or explicit figure is available.
var capacity = map[Class]float64{
	ClassInterconnect: 8000,
	ClassCPU:          12000,
	ClassMemory:       25600,
	ClassBridge:       3200,
	ClassDMA:          6400,
	ClassAccelerator:  12800,
	ClassConnectivity: 400,
	ClassPeripheral:   200,
	ClassStorage:      3200,
}

// DefaultCapacity returns the estimated bandwidth (Mbit/s) of a category.
func DefaultCapacity(c Category) (float64, bool) {
	v, ok := capacity[c.Class]
	return v, ok
}
