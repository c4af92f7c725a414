package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrequencyMHz(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1500", 1500, true},
		{"1500 MHz", 1500, true},
		{"1500mhz", 1500, true},
		{"1.5 GHz", 1500, true},
		{"800 kHz", 0.8, true},
		{"2400MHz", 2400, true},
		{"", 0, false},
		{"fast", 0, false},
		{"0 MHz", 0, false},
		{"12 ns", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := FrequencyMHz(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLatencyCycles(t *testing.T) {
	tests := []struct {
		name  string
		input string
		clock float64
		want  float64
		ok    bool
	}{
		{"bare count", "8", 0, 8, true},
		{"cycles", "12 cycles", 0, 12, true},
		{"single cycle", "1 cycle", 500, 1, true},
		{"ns without clock", "50 ns", 0, 5, true},
		{"ns with clock", "50 ns", 1000, 50, true},
		{"us with clock", "0.1 us", 2000, 200, true},
		{"empty", "", 0, 0, false},
		{"junk", "slow", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LatencyCycles(tt.input, tt.clock)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBandwidthMbps(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"25.6 GB/s", 204800, true},
		{"25.6GB/s", 204800, true},
		{"100 MB/s", 800, true},
		{"1 GiB/s", 8589.934592, true},
		{"8 Gbps", 8000, true},
		{"400 Mbit/s", 400, true},
		{"400 Mbps", 400, true},
		{"64000", 64000, true},
		{"12 G", 0, false},
		{"fast", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := BandwidthMbps(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestBandwidthAndCycleTime(t *testing.T) {
	assert.Equal(t, 96000.0, Bandwidth(64, 1500))
	assert.Equal(t, 2.0, CycleTimeNs(500))
	assert.Equal(t, 0.0, CycleTimeNs(0))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 41.7, Round(41.6666, 1))
	assert.Equal(t, 41.67, Round(41.6666, 2))
	assert.Equal(t, 100.0, Round(99.96, 1))
}

func TestHumanByteRate(t *testing.T) {
	assert.Equal(t, "8GB/s", HumanByteRate(64000))
}
