// Package loader reads diagrams and analysis configuration from disk.
//
// Diagrams may be JSON, YAML or CUE. YAML and CUE input is lowered to JSON
// and decoded through the same model types, so every format accepts the
// same field names. CUE diagrams are unified with the embedded #Diagram
// schema before decoding.
//
// Configuration is CUE only. The user file is unified with #Config from
// the embedded schema.cue, which supplies defaults (clock_mhz 1000,
// max_depth 10, distribution "fair") and rejects unknown fields:
//
//	clock_mhz:    1200
//	distribution: "weighted"
//	components: [{
//		id:        "lpddr5"
//		category:  "Memory"
//		dataWidth: 128
//		frequency: "3200 MHz"
//	}]
//
// All failures are *LoadError values carrying an E0xx code.
package loader
