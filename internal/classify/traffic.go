package classify

import "github.com/roach88/socperf/internal/model"

// Traffic classifies a flow from its classified endpoints.
//
// Precedence:
//  1. Memory sink: dma from a DMA source, accelerator from an accelerator
//     source, memory_access otherwise
//  2. Peripheral, storage or connectivity sink: dma from a DMA source,
//     peripheral_access otherwise
//  3. DMA source: dma
//  4. Accelerator source: accelerator
//  5. Both endpoints outside CPU/Interconnect/Memory: p2p
//  6. unknown
func Traffic(source, sink Component) model.TrafficType {
	src, dst := source.Category.Class, sink.Category.Class

	switch dst {
	case ClassMemory:
		switch src {
		case ClassDMA:
			return model.TrafficDMA
		case ClassAccelerator:
			return model.TrafficAccelerator
		}
		return model.TrafficMemoryAccess
	case ClassPeripheral, ClassStorage, ClassConnectivity:
		if src == ClassDMA {
			return model.TrafficDMA
		}
		return model.TrafficPeripheralAccess
	}

	switch src {
	case ClassDMA:
		return model.TrafficDMA
	case ClassAccelerator:
		return model.TrafficAccelerator
	}

	if !coreClass(src) && !coreClass(dst) {
		return model.TrafficP2P
	}
	return model.TrafficUnknown
}

func coreClass(c Class) bool {
	return c == ClassCPU || c == ClassInterconnect || c == ClassMemory
}
