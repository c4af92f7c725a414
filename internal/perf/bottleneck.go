package perf

import (
	"strconv"
	"strings"

	"github.com/roach88/socperf/internal/model"
)

// FindBottleneck returns the index of the component with the lowest
// bandwidth, or -1 when every component has the same bandwidth.
func FindBottleneck(components []model.ComponentPerformance) (int, error) {
	if len(components) == 0 {
		return -1, ErrEmptyPath
	}

	idx := 0
	distinct := false
	for i, c := range components[1:] {
		if c.BandwidthMbps != components[0].BandwidthMbps {
			distinct = true
		}
		if c.BandwidthMbps < components[idx].BandwidthMbps {
			idx = i + 1
		}
	}
	if !distinct {
		return -1, nil
	}
	return idx, nil
}

// Reason explains why a component limits its flow.
func Reason(c model.ComponentPerformance) string {
	var parts []string
	if c.DataWidth < 64 {
		parts = append(parts, "narrow "+formatFloat(c.DataWidth)+"-bit data path")
	}
	if c.FrequencyMHz < 200 {
		parts = append(parts, "low clock frequency ("+formatFloat(c.FrequencyMHz)+" MHz)")
	}
	if c.BandwidthMbps < 100 {
		parts = append(parts, "very low bandwidth ("+formatFloat(c.BandwidthMbps)+" Mbit/s)")
	}
	if len(parts) == 0 {
		return "lowest bandwidth on path: " + formatFloat(c.BandwidthMbps) + " Mbit/s"
	}
	return strings.Join(parts, "; ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
