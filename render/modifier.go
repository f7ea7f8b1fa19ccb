package render

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// ErrUnknownModifier is returned when parsing an unrecognized modifier name
var ErrUnknownModifier = errors.New("unknown render modifier")

// RenderModifier is a global toggle that alters how regions are built
type RenderModifier uint8

const (
	ModifierGravityInverse RenderModifier = iota

	modifierCount
)

var modifierNames = [modifierCount]string{
	ModifierGravityInverse: "gravity_inverse",
}

func (m RenderModifier) String() string {
	if m < modifierCount {
		return modifierNames[m]
	}
	return fmt.Sprintf("modifier(%d)", uint8(m))
}

// ParseModifier resolves a modifier by name, case-insensitive
func ParseModifier(name string) (RenderModifier, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range modifierNames {
		if n == name {
			return RenderModifier(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModifier, name)
}

// AllModifiers returns every known modifier in declaration order
func AllModifiers() []RenderModifier {
	out := make([]RenderModifier, 0, modifierCount)
	for m := RenderModifier(0); m < modifierCount; m++ {
		out = append(out, m)
	}
	return out
}

// ModifierSet is an immutable set of render modifiers, zero value is empty
type ModifierSet struct {
	bits uint64
}

// NewModifierSet creates a set holding mods
func NewModifierSet(mods ...RenderModifier) ModifierSet {
	var s ModifierSet
	for _, m := range mods {
		s = s.With(m)
	}
	return s
}

// ParseModifierSet builds a set from modifier names
func ParseModifierSet(names []string) (ModifierSet, error) {
	var s ModifierSet
	for _, n := range names {
		m, err := ParseModifier(n)
		if err != nil {
			return ModifierSet{}, err
		}
		s = s.With(m)
	}
	return s, nil
}

// Has reports membership
func (s ModifierSet) Has(m RenderModifier) bool {
	return s.bits&(1<<m) != 0
}

// With returns s plus m
func (s ModifierSet) With(m RenderModifier) ModifierSet {
	return ModifierSet{bits: s.bits | 1<<m}
}

// Without returns s minus m
func (s ModifierSet) Without(m RenderModifier) ModifierSet {
	return ModifierSet{bits: s.bits &^ (1 << m)}
}

// Len returns the number of modifiers in the set
func (s ModifierSet) Len() int {
	return bits.OnesCount64(s.bits)
}

// List returns members in ascending order
func (s ModifierSet) List() []RenderModifier {
	out := make([]RenderModifier, 0, s.Len())
	for m := RenderModifier(0); m < 64; m++ {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

func (s ModifierSet) String() string {
	if s.bits == 0 {
		return ""
	}
	names := make([]string, 0, s.Len())
	for _, m := range s.List() {
		names = append(names, m.String())
	}
	return strings.Join(names, ",")
}
