// Package landmark defines the eight incisor landmarks and the fixed order
// in which they are placed.
package landmark

import (
	"fmt"
	"strings"
)

// ID identifies one of the eight incisor landmarks
type ID int

// Landmarks in placement order
const (
	UpperLeftCentral ID = iota
	UpperLeftLateral
	UpperRightCentral
	UpperRightLateral
	LowerLeftCentral
	LowerLeftLateral
	LowerRightCentral
	LowerRightLateral
)

// Count is the number of landmarks in the sequence
const Count = 8

// Arch is the dental arch a landmark belongs to
type Arch int

const (
	Upper Arch = iota
	Lower
)

// Group colors used for markers and arch lines
const (
	UpperColor = "#3B82F6"
	LowerColor = "#10B981"
)

type info struct {
	key  string
	name string
	arch Arch
}

var catalogue = [Count]info{
	{"upper_left_central", "Upper Left Central Incisor", Upper},
	{"upper_left_lateral", "Upper Left Lateral Incisor", Upper},
	{"upper_right_central", "Upper Right Central Incisor", Upper},
	{"upper_right_lateral", "Upper Right Lateral Incisor", Upper},
	{"lower_left_central", "Lower Left Central Incisor", Lower},
	{"lower_left_lateral", "Lower Left Lateral Incisor", Lower},
	{"lower_right_central", "Lower Right Central Incisor", Lower},
	{"lower_right_lateral", "Lower Right Lateral Incisor", Lower},
}

// Sequence returns all landmarks in placement order
func Sequence() []ID {
	ids := make([]ID, Count)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// First returns the first landmark of the sequence
func First() ID {
	return UpperLeftCentral
}

// Next returns the landmark following id, or false if id is the last one
func (id ID) Next() (ID, bool) {
	if !id.Valid() || id == LowerRightLateral {
		return 0, false
	}
	return id + 1, true
}

// Valid reports whether id names one of the eight landmarks
func (id ID) Valid() bool {
	return id >= UpperLeftCentral && id <= LowerRightLateral
}

// Key returns the snake_case identifier, e.g. "upper_left_central"
func (id ID) Key() string {
	if !id.Valid() {
		return fmt.Sprintf("landmark(%d)", int(id))
	}
	return catalogue[id].key
}

// String implements fmt.Stringer
func (id ID) String() string {
	return id.Key()
}

// Name returns the human readable name
func (id ID) Name() string {
	if !id.Valid() {
		return ""
	}
	return catalogue[id].name
}

// Arch returns the arch the landmark belongs to
func (id ID) Arch() Arch {
	return catalogue[id].arch
}

// Color returns the arch color for the landmark
func (id ID) Color() string {
	if id.Valid() && id.Arch() == Lower {
		return LowerColor
	}
	return UpperColor
}

// Abbrev returns the initials of the key, e.g. "ULC"
func (id ID) Abbrev() string {
	var b strings.Builder
	for _, word := range strings.Split(id.Key(), "_") {
		if word != "" {
			b.WriteString(strings.ToUpper(word[:1]))
		}
	}
	return b.String()
}

// Central reports whether the landmark is a central incisor
func (id ID) Central() bool {
	return strings.HasSuffix(id.Key(), "_central")
}

// Parse resolves a snake_case key to its landmark
func Parse(key string) (ID, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, entry := range catalogue {
		if entry.key == key {
			return ID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown landmark %q", key)
}

// Required returns the four central incisors the midline measurement needs
func Required() []ID {
	return []ID{UpperLeftCentral, UpperRightCentral, LowerLeftCentral, LowerRightCentral}
}
