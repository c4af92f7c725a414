package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Class is the closed set of component kinds the engine understands.
type Class int

const (
	ClassUnknown Class = iota
	ClassCPU
	ClassMemory
	ClassInterconnect
	ClassBridge
	ClassDMA
	ClassAccelerator
	ClassPeripheral
	ClassStorage
	ClassConnectivity
)

var classNames = map[Class]string{
	ClassUnknown:      "Unknown",
	ClassCPU:          "CPU",
	ClassMemory:       "Memory",
	ClassInterconnect: "Interconnect",
	ClassBridge:       "Bridge",
	ClassDMA:          "DMA",
	ClassAccelerator:  "Accelerator",
	ClassPeripheral:   "Peripheral",
	ClassStorage:      "Storage",
	ClassConnectivity: "Connectivity",
}

func (c Class) String() string {
	return classNames[c]
}

// Fabric reports whether the class relays traffic rather than
// originating or terminating it.
func (c Class) Fabric() bool {
	return c == ClassInterconnect || c == ClassBridge || c == ClassDMA
}

// Initiator reports whether the class is a known traffic originator.
func (c Class) Initiator() bool {
	switch c {
	case ClassCPU, ClassAccelerator, ClassMemory, ClassPeripheral:
		return true
	}
	return false
}

// Category is a parsed category tag: its class plus the folded tag, which
// default tables use to tell subtypes (DDR vs HBM, GPU vs DSP) apart.
type Category struct {
	Class Class
	Tag   string
}

// Has reports whether the folded tag contains any of the keywords.
func (c Category) Has(keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(c.Tag, k) {
			return true
		}
	}
	return false
}

// rule maps keywords to a class. Substring keywords match anywhere in the
// folded tag; word keywords must equal a whole token. Rules are checked in
// order, so fabric kinds win over the endpoints they connect.
type rule struct {
	class     Class
	substring []string
	words     []string
}

var rules = []rule{
	{ClassDMA, []string{"dma"}, nil},
	{ClassBridge, []string{"bridge"}, nil},
	{ClassInterconnect, []string{"interconnect", "crossbar", "fabric", "router", "switch"}, []string{"noc", "bus", "xbar"}},
	{ClassAccelerator, []string{"accelerator"}, []string{"npu", "gpu", "dsp", "tpu", "vpu", "isp"}},
	{ClassCPU, []string{"cpu", "processor"}, []string{"core", "mcu", "cluster"}},
	{ClassStorage, []string{"storage", "flash", "emmc", "ssd", "ufs"}, []string{"nand", "sd"}},
	{ClassMemory, []string{"memory", "ddr", "dram", "sram", "hbm"}, []string{"ram", "rom", "cache", "mem"}},
	{ClassConnectivity, []string{"connectivity", "ethernet", "usb", "pcie", "wifi", "bluetooth", "serdes", "mipi"}, []string{"phy", "can"}},
	{ClassPeripheral, []string{"peripheral", "uart", "gpio", "i2c", "timer", "display", "camera", "sensor"}, []string{"spi", "i2s", "pwm", "adc", "dac"}},
}

// Parse classifies a category tag or label.
func Parse(tag string) Category {
	folded := cases.Fold().String(strings.TrimSpace(tag))
	cat := Category{Tag: folded}
	if folded == "" {
		return cat
	}

	tokens := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, r := range rules {
		if cat.Has(r.substring...) || hasToken(tokens, r.words) {
			cat.Class = r.class
			return cat
		}
	}
	return cat
}

// hasToken matches whole tokens, ignoring instance suffixes ("npu0").
func hasToken(tokens, words []string) bool {
	for _, t := range tokens {
		base := strings.TrimRightFunc(t, unicode.IsDigit)
		for _, w := range words {
			if t == w || base == w {
				return true
			}
		}
	}
	return false
}
