// Package units normalizes the textual measurements found on diagram nodes
// and interfaces into the engine's base units: MHz for clocks, cycles for
// latency and Mbit/s for bandwidth.
//
// Every parser reports whether the input was understood. Callers treat a
// false result as "field absent" and continue down their fallback chain.
package units

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	dunits "github.com/docker/go-units"
)

// DefaultNsPerCycle converts nanoseconds to cycles when no clock is known.
const DefaultNsPerCycle = 10.0

var (
	frequencyPattern = regexp.MustCompile(`^([0-9]*\.?[0-9]+)\s*(ghz|mhz|khz|hz)?$`)
	latencyPattern   = regexp.MustCompile(`^([0-9]*\.?[0-9]+)\s*(ns|us|µs|ms|cycles?|clks?|clocks?)?$`)
	bandwidthPattern = regexp.MustCompile(`^([0-9]*\.?[0-9]+)\s*([kKmMgGtT]?)(i?)(B/s|Bps|Bytes/s|bytes/s|b/s|bps|bit/s|bits/s)?$`)
)

// FrequencyMHz parses "1500", "1500 MHz", "1.5GHz" or "800 kHz".
// A bare number is taken as MHz.
func FrequencyMHz(s string) (float64, bool) {
	m := frequencyPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v <= 0 {
		return 0, false
	}

	switch m[2] {
	case "ghz":
		v *= 1000
	case "khz":
		v /= 1000
	case "hz":
		v /= 1e6
	}
	return v, true
}

// LatencyCycles parses "12 ns", "0.5 us", "8 cycles" or a bare cycle count.
//
// Time values are converted with clockMHz when it is positive, otherwise at
// DefaultNsPerCycle.
func LatencyCycles(s string, clockMHz float64) (float64, bool) {
	m := latencyPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v < 0 {
		return 0, false
	}

	var ns float64
	switch m[2] {
	case "ns":
		ns = v
	case "us", "µs":
		ns = v * 1e3
	case "ms":
		ns = v * 1e6
	default:
		return v, true
	}

	if clockMHz > 0 {
		return ns * clockMHz / 1000, true
	}
	return ns / DefaultNsPerCycle, true
}

// BandwidthMbps parses a bandwidth into megabits per second.
//
// Byte rates ("25.6 GB/s", "512MiB/s") go through go-units size parsing
// (decimal for GB, binary for GiB). Bit rates ("8 Gbps", "400 Mbit/s")
// scale by their SI prefix. A bare number is taken as Mbit/s.
func BandwidthMbps(s string) (float64, bool) {
	m := bandwidthPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	num, prefix, binary, unit := m[1], m[2], m[3], m[4]

	switch unit {
	case "":
		if prefix != "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		return v, true

	case "B/s", "Bps", "Bytes/s", "bytes/s":
		var bytes int64
		var err error
		if binary != "" {
			bytes, err = dunits.RAMInBytes(num + prefix + "iB")
		} else {
			bytes, err = dunits.FromHumanSize(num + prefix + "B")
		}
		if err != nil {
			return 0, false
		}
		return float64(bytes) * 8 / 1e6, true

	default:
		if binary != "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		return v * bitPrefix(prefix), true
	}
}

// bitPrefix returns the multiplier from a prefixed bit rate to Mbit/s.
func bitPrefix(p string) float64 {
	switch strings.ToLower(p) {
	case "k":
		return 1e-3
	case "g":
		return 1e3
	case "t":
		return 1e6
	case "m":
		return 1
	default:
		return 1e-6
	}
}

// Bandwidth returns width (bits) × clock (MHz) in Mbit/s.
func Bandwidth(widthBits, clockMHz float64) float64 {
	return widthBits * clockMHz
}

// CycleTimeNs returns the period of a clock in nanoseconds.
func CycleTimeNs(clockMHz float64) float64 {
	if clockMHz <= 0 {
		return 0
	}
	return 1000 / clockMHz
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// HumanByteRate renders a Mbit/s figure as a byte rate, e.g. "8GB/s".
func HumanByteRate(mbps float64) string {
	return dunits.HumanSizeWithPrecision(mbps*1e6/8, 4) + "/s"
}
