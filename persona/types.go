// Package persona defines the catalogue records the fusion engine works on:
// a persona (Entity), its closed Kind and Affinity tag sets, and the unordered
// ingredient Pair.
//
// Values are built once by a dataset loader and never mutated afterwards.
// Accessors elsewhere hand out copies (Entity.Clone), so a caller holding an
// Entity cannot reach back into engine state.
package persona

import (
	"errors"
	"fmt"
)

// Sentinel errors for persona validation and tag parsing.
var (
	// ErrEmptyName indicates a persona without a name.
	ErrEmptyName = errors.New("persona: name is empty")

	// ErrEmptyArcana indicates a persona without an arcana.
	ErrEmptyArcana = errors.New("persona: arcana is empty")

	// ErrIngredients indicates Ingredients is set on a non-guillotine persona
	// or missing on a guillotine one.
	ErrIngredients = errors.New("persona: ingredients must be set iff kind is guillotine")

	// ErrUnknownKind indicates an unrecognised Kind tag.
	ErrUnknownKind = errors.New("persona: unknown kind")

	// ErrUnknownAffinity indicates an unrecognised Affinity tag.
	ErrUnknownAffinity = errors.New("persona: unknown affinity")
)

// Kind classifies how a persona participates in fusion.
type Kind int

const (
	// KindRegular personas are ordinary fusion inputs and results.
	KindRegular Kind = iota
	// KindDLC personas behave exactly like regular ones; the tag is descriptive.
	KindDLC
	// KindTreasure personas fuse through a per-arcana level shift table and are
	// never a fusion result.
	KindTreasure
	// KindGuillotine personas are reachable only through their fixed
	// ingredient list, never through a two-persona fusion.
	KindGuillotine
)

var kindNames = [...]string{
	KindRegular:    "regular",
	KindDLC:        "dlc",
	KindTreasure:   "treasure",
	KindGuillotine: "guillotine",
}

// String returns the lowercase tag used by the dataset formats.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// IsSpecialResult reports whether personas of this kind are excluded as
// results of a two-persona fusion.
func (k Kind) IsSpecialResult() bool {
	return k == KindTreasure || k == KindGuillotine
}

// ParseKind maps a tag produced by Kind.String back to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}

	return KindRegular, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v

	return nil
}

// Affinity is a persona's reaction to one damage element.
type Affinity int

const (
	Neutral Affinity = iota
	Weak
	Resist
	Null
	Absorb
	Repel
)

// affinityCodes are the abbreviations used in the dataset files.
var affinityCodes = [...]string{
	Neutral: "-",
	Weak:    "wk",
	Resist:  "rs",
	Null:    "nu",
	Absorb:  "ab",
	Repel:   "rp",
}

var affinityNames = [...]string{
	Neutral: "neutral",
	Weak:    "weak",
	Resist:  "resist",
	Null:    "null",
	Absorb:  "absorb",
	Repel:   "repel",
}

// Code returns the short dataset abbreviation ("-", "wk", ...).
func (a Affinity) Code() string {
	if a < 0 || int(a) >= len(affinityCodes) {
		return "?"
	}

	return affinityCodes[a]
}

// String returns the long name ("neutral", "weak", ...).
func (a Affinity) String() string {
	if a < 0 || int(a) >= len(affinityNames) {
		return fmt.Sprintf("Affinity(%d)", int(a))
	}

	return affinityNames[a]
}

// ParseAffinity accepts either the short code or the long name.
func ParseAffinity(s string) (Affinity, error) {
	for a := range affinityCodes {
		if affinityCodes[a] == s || affinityNames[a] == s {
			return Affinity(a), nil
		}
	}

	return Neutral, fmt.Errorf("%w: %q", ErrUnknownAffinity, s)
}

// MarshalText implements encoding.TextMarshaler using the short code.
func (a Affinity) MarshalText() ([]byte, error) {
	return []byte(a.Code()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Affinity) UnmarshalText(b []byte) error {
	v, err := ParseAffinity(string(b))
	if err != nil {
		return err
	}
	*a = v

	return nil
}

// NumStats and NumElements size the fixed attribute and affinity vectors.
const (
	NumStats    = 5
	NumElements = 10
)

// StatNames lists the Stats slots in order.
var StatNames = [NumStats]string{"strength", "magic", "endurance", "agility", "luck"}

// ElementNames lists the Affinities slots in order, abbreviated as in the
// affinity table header.
var ElementNames = [NumElements]string{"phys", "gun", "fire", "ice", "elec", "wind", "psych", "nucl", "bless", "curse"}

// Stats holds base strength, magic, endurance, agility and luck.
type Stats [NumStats]int

// Affinities holds one Affinity per element, in ElementNames order.
type Affinities [NumElements]Affinity
