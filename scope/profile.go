// Package scope holds sigscope's display state and the transitions that
// move it forward: sampling ticks, source selection and device toggles.
// All transitions are pure functions of the current state and an event.
package scope

import (
	"fmt"
	"strings"
)

// Profile describes how one signal source is charted.
type Profile struct {
	// Source is the registry name of the source to read.
	Source string
	// Label is the button caption.
	Label string
	// Capacity is the sliding window length for this source.
	Capacity int
	// YMin and YMax are the fixed Y-axis bounds.
	YMin float64
	YMax float64
	// YStep is the spacing between Y-axis ticks.
	YStep float64
}

// Built-in profiles.
var (
	GPIOProfile = Profile{Source: "gpio", Label: "SIG", Capacity: 30, YMin: 0, YMax: 16, YStep: 1}
	CPUProfile  = Profile{Source: "cpu", Label: "CPU", Capacity: 10, YMin: 0, YMax: 100, YStep: 10}
	RAMProfile  = Profile{Source: "ram", Label: "RAM", Capacity: 10, YMin: 0, YMax: 100, YStep: 10}
)

// Variant is the set of profiles a session can switch between.
type Variant struct {
	// Name identifies the variant on the command line and in config.
	Name string
	// Profiles lists the selectable profiles; the first one is active at start.
	Profiles []Profile
	// Toggle reports whether the variant exposes a device toggle button.
	Toggle bool
}

// Built-in variants.
var (
	// GPIOVariant charts the GPIO device and offers a button that asks the
	// driver to switch input lines.
	GPIOVariant = Variant{Name: "gpio", Profiles: []Profile{GPIOProfile}, Toggle: true}

	// SysmonVariant charts CPU or RAM utilization.
	SysmonVariant = Variant{Name: "sysmon", Profiles: []Profile{CPUProfile, RAMProfile}}
)

// Variants returns the built-in variants in display order.
func Variants() []Variant {
	return []Variant{GPIOVariant, SysmonVariant}
}

// VariantByName looks up a built-in variant, case-insensitively.
func VariantByName(name string) (Variant, error) {
	var names []string
	for _, v := range Variants() {
		if strings.EqualFold(v.Name, name) {
			return v, nil
		}
		names = append(names, v.Name)
	}
	return Variant{}, fmt.Errorf("unknown variant %q (supported: %s)", name, strings.Join(names, ", "))
}

// Profile returns the variant's profile for the given source name.
func (v Variant) Profile(source string) (Profile, bool) {
	for _, p := range v.Profiles {
		if p.Source == source {
			return p, true
		}
	}
	return Profile{}, false
}

// Sources returns the source names the variant needs, in profile order.
func (v Variant) Sources() []string {
	names := make([]string, len(v.Profiles))
	for i, p := range v.Profiles {
		names[i] = p.Source
	}
	return names
}
